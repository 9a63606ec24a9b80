package features

import (
	"math"
	"time"

	"wellness-observer/src/models"
)

// -----------------------------------------------------------------------------
// Window engine shared by every intraday extractor. A window is the
// half-open interval (end-length, end] of normalized minute offsets, where
// end = anchorMinutes - offset. Left-exclusive, right-inclusive: the sample
// exactly at the anchor is in, the sample exactly at anchor-length is out.
// Samples with unparseable times are skipped, not errored.
// -----------------------------------------------------------------------------

type windowPoint struct {
	x float64 // normalized minutes since the anchor's midnight
	y float64
}

// -----------------------------------------------------------------------------

// windowPoints selects the samples falling inside the window, preserving
// series order.
func windowPoints(series []models.MIntradaySample, anchor time.Time, windowMin, offsetMin float64) []windowPoint {
	anchorM := MinutesSinceMidnight(anchor)
	end := anchorM - offsetMin
	start := end - windowMin

	var pts []windowPoint
	for _, p := range series {
		tM, ok := NormalizeMinutesForWindow(ParseTimeToMinutes(p.Time), anchorM)
		if !ok {
			continue
		}
		if tM > start && tM <= end {
			pts = append(pts, windowPoint{x: tM, y: p.Value})
		}
	}
	return pts
}

// -----------------------------------------------------------------------------

// sumWindow sums sample values over the window.
func sumWindow(series []models.MIntradaySample, anchor time.Time, windowMin float64) float64 {
	return sumWindowAt(series, anchor, windowMin, 0)
}

// sumWindowAt is sumWindow shifted back by offsetMin, for "prior window"
// comparisons.
func sumWindowAt(series []models.MIntradaySample, anchor time.Time, windowMin, offsetMin float64) float64 {
	total := 0.0
	for _, p := range windowPoints(series, anchor, windowMin, offsetMin) {
		total += p.y
	}
	return total
}

// -----------------------------------------------------------------------------

// maxWindow returns the largest single sample value in the window, 0 when
// the window is empty.
func maxWindow(series []models.MIntradaySample, anchor time.Time, windowMin float64) float64 {
	best := 0.0
	for _, p := range windowPoints(series, anchor, windowMin, 0) {
		if p.y > best {
			best = p.y
		}
	}
	return best
}

// -----------------------------------------------------------------------------

// meanWindow averages sample values over the window, shifted back by
// offsetMin for "prior window" comparisons. Returns nil when the window
// holds no samples.
func meanWindow(series []models.MIntradaySample, anchor time.Time, windowMin, offsetMin float64) *float64 {
	pts := windowPoints(series, anchor, windowMin, offsetMin)
	if len(pts) == 0 {
		return nil
	}
	sum := 0.0
	for _, p := range pts {
		sum += p.y
	}
	v := sum / float64(len(pts))
	return &v
}

// -----------------------------------------------------------------------------

// minMaxWindow scans for the smallest and largest values in the window.
// Returns nils when the window holds no samples.
func minMaxWindow(series []models.MIntradaySample, anchor time.Time, windowMin float64) (*float64, *float64) {
	pts := windowPoints(series, anchor, windowMin, 0)
	if len(pts) == 0 {
		return nil, nil
	}
	lo, hi := pts[0].y, pts[0].y
	for _, p := range pts[1:] {
		if p.y < lo {
			lo = p.y
		}
		if p.y > hi {
			hi = p.y
		}
	}
	return &lo, &hi
}

// -----------------------------------------------------------------------------

// stdDevWindow computes the sample standard deviation (n-1 denominator) of
// values in the window; 0 when fewer than two samples.
func stdDevWindow(series []models.MIntradaySample, anchor time.Time, windowMin float64) float64 {
	pts := windowPoints(series, anchor, windowMin, 0)
	if len(pts) < 2 {
		return 0
	}
	sum := 0.0
	for _, p := range pts {
		sum += p.y
	}
	mean := sum / float64(len(pts))

	varianceSum := 0.0
	for _, p := range pts {
		varianceSum += (p.y - mean) * (p.y - mean)
	}
	return math.Sqrt(varianceSum / float64(len(pts)-1))
}

// -----------------------------------------------------------------------------

// slopeWindow fits ordinary least squares of value against minute offset
// over the window. Returns 0 (not nil) with fewer than two points, and 0
// when the time axis has zero variance.
func slopeWindow(series []models.MIntradaySample, anchor time.Time, windowMin float64) float64 {
	pts := windowPoints(series, anchor, windowMin, 0)
	return olsSlope(pts)
}

func olsSlope(pts []windowPoint) float64 {
	if len(pts) < 2 {
		return 0
	}

	n := float64(len(pts))
	meanX, meanY := 0.0, 0.0
	for _, p := range pts {
		meanX += p.x
		meanY += p.y
	}
	meanX /= n
	meanY /= n

	num, den := 0.0, 0.0
	for _, p := range pts {
		dx := p.x - meanX
		num += dx * (p.y - meanY)
		den += dx * dx
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// -----------------------------------------------------------------------------

// zeroStreakWindow finds the longest run of consecutive in-order samples in
// the window whose value is 0. Any nonzero sample resets the run; samples
// outside the window neither extend nor reset it.
func zeroStreakWindow(series []models.MIntradaySample, anchor time.Time, windowMin float64) float64 {
	run, best := 0, 0
	for _, p := range windowPoints(series, anchor, windowMin, 0) {
		if p.y == 0 {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
	}
	return float64(best)
}

// -----------------------------------------------------------------------------

// countWindow counts samples in the window satisfying pred.
func countWindow(series []models.MIntradaySample, anchor time.Time, windowMin, offsetMin float64, pred func(v float64) bool) float64 {
	c := 0
	for _, p := range windowPoints(series, anchor, windowMin, offsetMin) {
		if pred(p.y) {
			c++
		}
	}
	return float64(c)
}
