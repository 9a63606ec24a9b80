package wearable

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"wellness-observer/src/models"
)

// -----------------------------------------------------------------------------
// Normalizers shape raw provider JSON into the models types the feature
// pipeline consumes. Missing fields become nil pointers or empty slices,
// never zero values pretending to be measurements. Each function tolerates
// an empty or truncated payload and returns what it could read.
// -----------------------------------------------------------------------------

type rawDatasetPoint struct {
	Time  string      `json:"time"`
	Value json.Number `json:"value"`
}

type rawIntraday struct {
	Dataset []rawDatasetPoint `json:"dataset"`
}

// -----------------------------------------------------------------------------

func numOrZero(n json.Number) float64 {
	f, err := n.Float64()
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// -----------------------------------------------------------------------------

// normalizeDataset converts a 1-minute dataset into intraday samples,
// stamping each bare clock time with its calendar date.
func normalizeDataset(ds rawIntraday, dateISO string) []models.MIntradaySample {
	out := make([]models.MIntradaySample, 0, len(ds.Dataset))
	for _, p := range ds.Dataset {
		if p.Time == "" {
			continue
		}
		out = append(out, models.MIntradaySample{
			Time:  fmt.Sprintf("%sT%s", dateISO, p.Time),
			Value: numOrZero(p.Value),
		})
	}
	return out
}

// -----------------------------------------------------------------------------

// NormalizeStepsIntraday reads the steps 1-minute series for a date.
func NormalizeStepsIntraday(raw []byte, dateISO string) []models.MIntradaySample {
	var body struct {
		Intraday rawIntraday `json:"activities-steps-intraday"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil
	}
	return normalizeDataset(body.Intraday, dateISO)
}

// -----------------------------------------------------------------------------

// NormalizeHeartIntraday reads the heart rate 1-minute series for a date.
func NormalizeHeartIntraday(raw []byte, dateISO string) []models.MIntradaySample {
	var body struct {
		Intraday rawIntraday `json:"activities-heart-intraday"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil
	}
	return normalizeDataset(body.Intraday, dateISO)
}

// -----------------------------------------------------------------------------

// NormalizeCaloriesIntraday reads the calories-burned 1-minute series.
func NormalizeCaloriesIntraday(raw []byte, dateISO string) []models.MIntradaySample {
	var body struct {
		Intraday rawIntraday `json:"activities-calories-intraday"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil
	}
	return normalizeDataset(body.Intraday, dateISO)
}

// -----------------------------------------------------------------------------

// NormalizeAzmIntraday reads the active-zone-minutes 1-minute series with
// per-zone splits.
func NormalizeAzmIntraday(raw []byte, dateISO string) []models.MAzmSample {
	var body struct {
		Days []struct {
			DateTime string `json:"dateTime"`
			Minutes  []struct {
				Minute string `json:"minute"`
				Value  struct {
					ActiveZoneMinutes  *float64 `json:"activeZoneMinutes"`
					FatBurnZoneMinutes *float64 `json:"fatBurnActiveZoneMinutes"`
					CardioZoneMinutes  *float64 `json:"cardioActiveZoneMinutes"`
					PeakZoneMinutes    *float64 `json:"peakActiveZoneMinutes"`
				} `json:"value"`
			} `json:"minutes"`
		} `json:"activities-active-zone-minutes-intraday"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil
	}

	var out []models.MAzmSample
	for _, day := range body.Days {
		if day.DateTime != "" && day.DateTime != dateISO {
			continue
		}
		for _, m := range day.Minutes {
			if m.Minute == "" {
				continue
			}
			s := models.MAzmSample{Time: m.Minute}
			if m.Value.ActiveZoneMinutes != nil {
				s.Active = *m.Value.ActiveZoneMinutes
			}
			if m.Value.FatBurnZoneMinutes != nil {
				s.FatBurn = *m.Value.FatBurnZoneMinutes
			}
			if m.Value.CardioZoneMinutes != nil {
				s.Cardio = *m.Value.CardioZoneMinutes
			}
			if m.Value.PeakZoneMinutes != nil {
				s.Peak = *m.Value.PeakZoneMinutes
			}
			out = append(out, s)
		}
	}
	return out
}

// -----------------------------------------------------------------------------

// NormalizeSteps7d reads the 7-day daily step totals, oldest first.
func NormalizeSteps7d(raw []byte) []models.MDailyValue {
	var body struct {
		Days []struct {
			DateTime string `json:"dateTime"`
			Value    string `json:"value"`
		} `json:"activities-steps"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil
	}

	out := make([]models.MDailyValue, 0, len(body.Days))
	for _, d := range body.Days {
		v, err := strconv.ParseFloat(d.Value, 64)
		if err != nil {
			continue
		}
		out = append(out, models.MDailyValue{Date: d.DateTime, Value: v})
	}
	return out
}

// -----------------------------------------------------------------------------

// NormalizeRestingHr7d reads the 7-day resting heart rate series. Days
// without a resting value are skipped.
func NormalizeRestingHr7d(raw []byte) []models.MDailyValue {
	var body struct {
		Days []struct {
			DateTime string `json:"dateTime"`
			Value    struct {
				RestingHeartRate *float64 `json:"restingHeartRate"`
			} `json:"value"`
		} `json:"activities-heart"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil
	}

	var out []models.MDailyValue
	for _, d := range body.Days {
		if d.Value.RestingHeartRate == nil {
			continue
		}
		out = append(out, models.MDailyValue{Date: d.DateTime, Value: *d.Value.RestingHeartRate})
	}
	return out
}

// -----------------------------------------------------------------------------

type rawStageSummary struct {
	Minutes float64 `json:"minutes"`
}

// NormalizeSleepRange reads sleep logs over a date range. Segments keep their
// dateOfSleep grouping; the feature pipeline folds them into nights. Naive
// segment times are interpreted in loc.
func NormalizeSleepRange(raw []byte, loc *time.Location) []models.MSleepLog {
	var body struct {
		Sleep []struct {
			DateOfSleep   string   `json:"dateOfSleep"`
			IsMainSleep   *bool    `json:"isMainSleep"`
			StartTime     string   `json:"startTime"`
			EndTime       string   `json:"endTime"`
			Duration      *float64 `json:"duration"`
			MinutesAsleep *float64 `json:"minutesAsleep"`
			MinutesAwake  *float64 `json:"minutesAwake"`
			Efficiency    *float64 `json:"efficiency"`
			Levels        *struct {
				Summary struct {
					Deep  rawStageSummary `json:"deep"`
					Light rawStageSummary `json:"light"`
					Rem   rawStageSummary `json:"rem"`
				} `json:"summary"`
			} `json:"levels"`
		} `json:"sleep"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil
	}

	out := make([]models.MSleepLog, 0, len(body.Sleep))
	for _, s := range body.Sleep {
		start, okStart := parseProviderTime(s.StartTime, loc)
		end, okEnd := parseProviderTime(s.EndTime, loc)
		if s.DateOfSleep == "" || !okStart || !okEnd {
			continue
		}
		log := models.MSleepLog{
			DateOfSleep:   s.DateOfSleep,
			IsMainSleep:   s.IsMainSleep,
			StartTime:     start,
			EndTime:       end,
			DurationMs:    s.Duration,
			MinutesAsleep: s.MinutesAsleep,
			MinutesAwake:  s.MinutesAwake,
			Efficiency:    s.Efficiency,
		}
		if s.Levels != nil {
			deep := s.Levels.Summary.Deep.Minutes
			light := s.Levels.Summary.Light.Minutes
			rem := s.Levels.Summary.Rem.Minutes
			log.DeepMinutes = &deep
			log.LightMinutes = &light
			log.RemMinutes = &rem
		}
		out = append(out, log)
	}
	return out
}

// -----------------------------------------------------------------------------

// NormalizeDailySummary reads the day-level activity summary.
func NormalizeDailySummary(raw []byte) *models.MDailySummary {
	var body struct {
		Summary *struct {
			CaloriesOut         *float64 `json:"caloriesOut"`
			FairlyActiveMinutes *float64 `json:"fairlyActiveMinutes"`
			VeryActiveMinutes   *float64 `json:"veryActiveMinutes"`
			RestingHeartRate    *float64 `json:"restingHeartRate"`
			ActiveZoneMinutes   *struct {
				TotalMinutes *float64 `json:"totalMinutes"`
			} `json:"activeZoneMinutes"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || body.Summary == nil {
		return nil
	}

	out := &models.MDailySummary{
		CaloriesOut:         body.Summary.CaloriesOut,
		FairlyActiveMinutes: body.Summary.FairlyActiveMinutes,
		VeryActiveMinutes:   body.Summary.VeryActiveMinutes,
		RestingHeartRate:    body.Summary.RestingHeartRate,
	}
	if body.Summary.ActiveZoneMinutes != nil {
		out.AzmTotal = body.Summary.ActiveZoneMinutes.TotalMinutes
	}
	return out
}

// -----------------------------------------------------------------------------

type rawHrvEntry struct {
	DateTime string `json:"dateTime"`
	Value    struct {
		DailyRmssd *float64 `json:"dailyRmssd"`
		DeepRmssd  *float64 `json:"deepRmssd"`
	} `json:"value"`
	Minutes []struct {
		Minute string `json:"minute"`
		Value  struct {
			Rmssd    *float64 `json:"rmssd"`
			Coverage *float64 `json:"coverage"`
			Hf       *float64 `json:"hf"`
			Lf       *float64 `json:"lf"`
		} `json:"value"`
	} `json:"minutes"`
}

type rawHrvBody struct {
	Hrv []rawHrvEntry `json:"hrv"`
}

// NormalizeHrvDaily reads the nightly HRV summary for one date.
func NormalizeHrvDaily(raw []byte, dateISO string) *models.MHrvDaily {
	var body rawHrvBody
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Hrv) == 0 {
		return nil
	}

	entry := body.Hrv[0]
	for _, e := range body.Hrv {
		if e.DateTime == dateISO {
			entry = e
			break
		}
	}
	return &models.MHrvDaily{
		Date:       entry.DateTime,
		DailyRmssd: entry.Value.DailyRmssd,
		DeepRmssd:  entry.Value.DeepRmssd,
	}
}

// -----------------------------------------------------------------------------

// NormalizeHrvRange reads the HRV summaries over a date range.
func NormalizeHrvRange(raw []byte) []models.MHrvDaily {
	var body rawHrvBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil
	}

	out := make([]models.MHrvDaily, 0, len(body.Hrv))
	for _, e := range body.Hrv {
		out = append(out, models.MHrvDaily{
			Date:       e.DateTime,
			DailyRmssd: e.Value.DailyRmssd,
			DeepRmssd:  e.Value.DeepRmssd,
		})
	}
	return out
}

// -----------------------------------------------------------------------------

// NormalizeHrvIntraday reads the per-window HRV measurements for one date.
func NormalizeHrvIntraday(raw []byte, dateISO string) []models.MHrvIntradaySample {
	var body rawHrvBody
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Hrv) == 0 {
		return nil
	}

	entry := body.Hrv[0]
	for _, e := range body.Hrv {
		if e.DateTime == dateISO {
			entry = e
			break
		}
	}

	out := make([]models.MHrvIntradaySample, 0, len(entry.Minutes))
	for _, m := range entry.Minutes {
		if m.Minute == "" {
			continue
		}
		out = append(out, models.MHrvIntradaySample{
			Time:     m.Minute,
			Rmssd:    m.Value.Rmssd,
			Coverage: m.Value.Coverage,
			Hf:       m.Value.Hf,
			Lf:       m.Value.Lf,
		})
	}
	return out
}

// -----------------------------------------------------------------------------

type rawSpo2Entry struct {
	DateTime string `json:"dateTime"`
	Value    struct {
		Avg *float64 `json:"avg"`
		Min *float64 `json:"min"`
		Max *float64 `json:"max"`
	} `json:"value"`
}

// NormalizeSpo2Daily reads the nightly oxygen saturation summary for one date.
func NormalizeSpo2Daily(raw []byte, dateISO string) *models.MSpo2Daily {
	var entry rawSpo2Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil
	}
	if entry.Value.Avg == nil && entry.Value.Min == nil && entry.Value.Max == nil {
		return nil
	}

	date := entry.DateTime
	if date == "" {
		date = dateISO
	}
	return &models.MSpo2Daily{
		Date: date,
		Avg:  entry.Value.Avg,
		Min:  entry.Value.Min,
		Max:  entry.Value.Max,
	}
}

// -----------------------------------------------------------------------------

// NormalizeSpo2Range reads the oxygen saturation summaries over a date range.
// The provider returns a bare JSON array here.
func NormalizeSpo2Range(raw []byte) []models.MSpo2Daily {
	var entries []rawSpo2Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}

	out := make([]models.MSpo2Daily, 0, len(entries))
	for _, e := range entries {
		out = append(out, models.MSpo2Daily{
			Date: e.DateTime,
			Avg:  e.Value.Avg,
			Min:  e.Value.Min,
			Max:  e.Value.Max,
		})
	}
	return out
}

// -----------------------------------------------------------------------------

type rawBrSummary struct {
	BreathingRate *float64 `json:"breathingRate"`
}

type rawBrEntry struct {
	DateTime string `json:"dateTime"`
	Value    struct {
		BreathingRate     *float64     `json:"breathingRate"`
		FullSleepSummary  rawBrSummary `json:"fullSleepSummary"`
		DeepSleepSummary  rawBrSummary `json:"deepSleepSummary"`
		RemSleepSummary   rawBrSummary `json:"remSleepSummary"`
		LightSleepSummary rawBrSummary `json:"lightSleepSummary"`
	} `json:"value"`
}

type rawBrBody struct {
	Br []rawBrEntry `json:"br"`
}

// NormalizeBreathingDaily reads the per-stage breathing rate for one date.
func NormalizeBreathingDaily(raw []byte, dateISO string) *models.MBreathingDaily {
	var body rawBrBody
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Br) == 0 {
		return nil
	}

	entry := body.Br[0]
	for _, e := range body.Br {
		if e.DateTime == dateISO {
			entry = e
			break
		}
	}
	return &models.MBreathingDaily{
		Date:  dateISO,
		Full:  entry.Value.FullSleepSummary.BreathingRate,
		Deep:  entry.Value.DeepSleepSummary.BreathingRate,
		Rem:   entry.Value.RemSleepSummary.BreathingRate,
		Light: entry.Value.LightSleepSummary.BreathingRate,
	}
}

// -----------------------------------------------------------------------------

// NormalizeBreathingRange reads the breathing rate summaries over a date
// range. The range endpoint flattens the full-night rate into value.
func NormalizeBreathingRange(raw []byte) []models.MBreathingDaily {
	var body rawBrBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil
	}

	out := make([]models.MBreathingDaily, 0, len(body.Br))
	for _, e := range body.Br {
		full := e.Value.BreathingRate
		if full == nil {
			full = e.Value.FullSleepSummary.BreathingRate
		}
		out = append(out, models.MBreathingDaily{
			Date:  e.DateTime,
			Full:  full,
			Deep:  e.Value.DeepSleepSummary.BreathingRate,
			Rem:   e.Value.RemSleepSummary.BreathingRate,
			Light: e.Value.LightSleepSummary.BreathingRate,
		})
	}
	return out
}

// -----------------------------------------------------------------------------

type rawTempEntry struct {
	DateTime string `json:"dateTime"`
	Value    struct {
		NightlyRelative *float64 `json:"nightlyRelative"`
	} `json:"value"`
}

type rawTempBody struct {
	TempSkin []rawTempEntry `json:"tempSkin"`
}

// NormalizeTempSkinDaily reads the nightly relative skin temperature for one
// date.
func NormalizeTempSkinDaily(raw []byte, dateISO string) *models.MTempSkinDaily {
	var body rawTempBody
	if err := json.Unmarshal(raw, &body); err != nil || len(body.TempSkin) == 0 {
		return nil
	}

	entry := body.TempSkin[0]
	for _, e := range body.TempSkin {
		if e.DateTime == dateISO {
			entry = e
			break
		}
	}
	return &models.MTempSkinDaily{
		Date:            dateISO,
		NightlyRelative: entry.Value.NightlyRelative,
	}
}

// -----------------------------------------------------------------------------

// NormalizeTempSkinRange reads relative skin temperatures over a date range.
func NormalizeTempSkinRange(raw []byte) []models.MTempSkinDaily {
	var body rawTempBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil
	}

	out := make([]models.MTempSkinDaily, 0, len(body.TempSkin))
	for _, e := range body.TempSkin {
		out = append(out, models.MTempSkinDaily{
			Date:            e.DateTime,
			NightlyRelative: e.Value.NightlyRelative,
		})
	}
	return out
}

// -----------------------------------------------------------------------------

// NormalizeNutritionDaily reads the food log and nutrient totals for a date.
func NormalizeNutritionDaily(raw []byte, dateISO string) *models.MNutritionDaily {
	var body struct {
		Foods []struct {
			LogID      int64  `json:"logId"`
			LogDate    string `json:"logDate"`
			LoggedFood struct {
				Name       string `json:"name"`
				MealTypeID *int   `json:"mealTypeId"`
			} `json:"loggedFood"`
			NutritionalValues struct {
				Calories *float64 `json:"calories"`
			} `json:"nutritionalValues"`
		} `json:"foods"`
		Summary models.MNutritionSummary `json:"summary"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil
	}

	out := &models.MNutritionDaily{
		Date:    dateISO,
		Foods:   make([]models.MFoodLog, 0, len(body.Foods)),
		Summary: body.Summary,
	}
	for _, f := range body.Foods {
		logTime := f.LogDate
		if logTime == "" {
			logTime = dateISO
		}
		out.Foods = append(out.Foods, models.MFoodLog{
			LogID:      f.LogID,
			Name:       f.LoggedFood.Name,
			Calories:   f.NutritionalValues.Calories,
			MealTypeID: f.LoggedFood.MealTypeID,
			LogTime:    logTime,
		})
	}
	return out
}

// -----------------------------------------------------------------------------

// NormalizeWaterDaily reads the hydration total for a date.
func NormalizeWaterDaily(raw []byte, dateISO string) *models.MWaterDaily {
	var body struct {
		Summary struct {
			Water *float64 `json:"water"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil
	}
	return &models.MWaterDaily{Date: dateISO, Total: body.Summary.Water}
}

// -----------------------------------------------------------------------------

// NormalizeExercise reads the most recent entry of an activity list. Naive
// start times are interpreted in loc. Returns nil when the list is empty.
func NormalizeExercise(raw []byte, loc *time.Location) *models.MExercise {
	var body struct {
		Activities []struct {
			ActivityName      string   `json:"activityName"`
			StartTime         string   `json:"startTime"`
			Duration          int64    `json:"duration"`
			ActiveDuration    int64    `json:"activeDuration"`
			Steps             *float64 `json:"steps"`
			Calories          *float64 `json:"calories"`
			AvgHeartRate      *float64 `json:"averageHeartRate"`
			ActiveZoneMinutes *struct {
				TotalMinutes            *float64 `json:"totalMinutes"`
				MinutesInHeartRateZones []struct {
					ZoneName string  `json:"zoneName"`
					Minutes  float64 `json:"minutes"`
				} `json:"minutesInHeartRateZones"`
			} `json:"activeZoneMinutes"`
			HeartRateZones []struct {
				Name    string  `json:"name"`
				Minutes float64 `json:"minutes"`
			} `json:"heartRateZones"`
		} `json:"activities"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Activities) == 0 {
		return nil
	}

	a := body.Activities[0]
	start, ok := parseProviderTime(a.StartTime, loc)
	if !ok {
		return nil
	}

	duration := a.Duration
	if duration == 0 {
		duration = a.ActiveDuration
	}

	out := &models.MExercise{
		ActivityName: a.ActivityName,
		StartTime:    start,
		DurationMs:   duration,
		Steps:        a.Steps,
		Calories:     a.Calories,
		AvgHeartRate: a.AvgHeartRate,
	}
	if a.ActiveZoneMinutes != nil {
		out.AzmTotal = a.ActiveZoneMinutes.TotalMinutes
		for _, z := range a.ActiveZoneMinutes.MinutesInHeartRateZones {
			out.Zones = append(out.Zones, models.MZoneMinutes{Name: z.ZoneName, Minutes: z.Minutes})
		}
	}
	if len(out.Zones) == 0 {
		for _, z := range a.HeartRateZones {
			if z.Minutes <= 0 {
				continue
			}
			out.Zones = append(out.Zones, models.MZoneMinutes{Name: z.Name, Minutes: z.Minutes})
		}
	}
	return out
}

// -----------------------------------------------------------------------------

var providerZonedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000-07:00",
}

var providerNaiveLayouts = []string{
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
}

// parseProviderTime parses provider timestamps, which come with or without
// fractional seconds and zone offsets. Naive timestamps are wall-clock times
// in the user's zone and are interpreted in loc; recency math downstream
// subtracts them from the localized anchor, so the frame must match.
func parseProviderTime(s string, loc *time.Location) (time.Time, bool) {
	for _, layout := range providerZonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range providerNaiveLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
