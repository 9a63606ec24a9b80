package models

import "time"

// -----------------------------------------------------------------------------
// Raw normalized inputs. These structures are the contract between the
// data-fetching collaborator (src/wearable) and the feature pipeline: the
// collaborator shapes upstream API responses into exactly these types before
// the assembler runs. Samples are roughly 1-minute resolution but gaps are
// possible and tolerated.
// -----------------------------------------------------------------------------

// MIntradaySample is one point of a single-day intraday series
// (steps, heart rate, calories). Time is a bare clock string
// ("HH:mm" / "HH:mm:ss") or a full ISO-8601 timestamp.
type MIntradaySample struct {
	Time  string  `json:"time"`
	Value float64 `json:"value"`
}

// MAzmSample is one minute of active-zone-minute data with per-zone splits.
type MAzmSample struct {
	Time    string  `json:"time"`
	Active  float64 `json:"activeZoneMinutes"`
	FatBurn float64 `json:"fatBurnActiveZoneMinutes"`
	Cardio  float64 `json:"cardioActiveZoneMinutes"`
	Peak    float64 `json:"peakActiveZoneMinutes"`
}

// MHrvIntradaySample is one HRV measurement window during sleep.
type MHrvIntradaySample struct {
	Time     string   `json:"time"`
	Rmssd    *float64 `json:"rmssd"`
	Coverage *float64 `json:"coverage"`
	Hf       *float64 `json:"hf"`
	Lf       *float64 `json:"lf"`
}

// MDailyValue is one day of a range summary series (daily step totals,
// resting heart rate). Ordered oldest first, ending at the anchor's date.
type MDailyValue struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// MSleepLog is one sleep segment as reported upstream. Several segments may
// share a DateOfSleep; they belong to the same night.
type MSleepLog struct {
	DateOfSleep   string    `json:"dateOfSleep"`
	IsMainSleep   *bool     `json:"isMainSleep"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	DurationMs    *float64  `json:"duration"`
	MinutesAsleep *float64  `json:"minutesAsleep"`
	MinutesAwake  *float64  `json:"minutesAwake"`
	DeepMinutes   *float64  `json:"deepMinutes"`
	LightMinutes  *float64  `json:"lightMinutes"`
	RemMinutes    *float64  `json:"remMinutes"`
	Efficiency    *float64  `json:"efficiency"`
}
