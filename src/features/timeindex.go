package features

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the shift applied when a window crosses midnight.
const MinutesPerDay = 1440

// -----------------------------------------------------------------------------

// ParseTimeToMinutes converts a sample time string into fractional minutes
// since midnight of whatever day the string encodes. Accepts bare clock
// strings ("HH:mm", "HH:mm:ss") and full ISO-8601 timestamps with a 'T'
// separated clock portion. Returns NaN for unparseable input; callers skip
// such samples.
func ParseTimeToMinutes(raw string) float64 {
	s := strings.TrimSpace(raw)

	// Full timestamp: "YYYY-MM-DDTHH:mm:ss..."
	if len(s) >= 19 && s[10] == 'T' {
		s = s[11:19]
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return math.NaN()
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return math.NaN()
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return math.NaN()
	}

	sec := 0
	if len(parts) > 2 {
		// Tolerate fractional or zoned second fields by taking leading digits.
		digits := parts[2]
		for i, r := range digits {
			if r < '0' || r > '9' {
				digits = digits[:i]
				break
			}
		}
		if v, err := strconv.Atoi(digits); err == nil {
			sec = v
		}
	}

	return float64(h)*60 + float64(m) + float64(sec)/60
}

// -----------------------------------------------------------------------------

// MinutesSinceMidnight applies the same formula to the anchor's local clock.
func MinutesSinceMidnight(anchor time.Time) float64 {
	return float64(anchor.Hour())*60 + float64(anchor.Minute()) + float64(anchor.Second())/60
}

// -----------------------------------------------------------------------------

// NormalizeMinutesForWindow shifts a sample's minute offset into the anchor's
// frame. A sample whose clock time is later in the day than the anchor can
// only belong to the previous calendar day, so it is shifted back by one day;
// this is what makes "last 60 minutes" windows correct shortly after local
// midnight. The second return is false for non-finite input.
func NormalizeMinutesForWindow(sampleMinutes, anchorMinutes float64) (float64, bool) {
	if math.IsNaN(sampleMinutes) || math.IsInf(sampleMinutes, 0) {
		return 0, false
	}
	if sampleMinutes > anchorMinutes {
		return sampleMinutes - MinutesPerDay, true
	}
	return sampleMinutes, true
}
