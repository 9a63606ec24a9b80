package wearable

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"wellness-observer/src/interfaces"
	"wellness-observer/src/logger"
	"wellness-observer/src/models"
)

// -----------------------------------------------------------------------------
// StubSource produces synthetic but physiologically plausible data for local
// development and demos, without vendor credentials. Output is deterministic
// per (user, day) so repeated runs yield identical feature records.
// -----------------------------------------------------------------------------

type StubSource struct {
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewStubSource() *StubSource {
	return &StubSource{Logger: logger.NewLogger("StubSource")}
}

// -----------------------------------------------------------------------------

func (s *StubSource) Name() string {
	return "stub"
}

// -----------------------------------------------------------------------------

func seededRand(userID, dayDate string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(userID))
	h.Write([]byte(dayDate))
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

// -----------------------------------------------------------------------------

// diurnalSteps returns a plausible per-minute step count for a clock minute.
// Nights are still, mornings and evenings carry walking bouts.
func diurnalSteps(rng *rand.Rand, minuteOfDay int) float64 {
	hour := minuteOfDay / 60
	switch {
	case hour < 7:
		return 0
	case hour < 9, hour >= 17 && hour < 19:
		if rng.Float64() < 0.4 {
			return float64(rng.Intn(90))
		}
		return 0
	case hour < 22:
		if rng.Float64() < 0.2 {
			return float64(rng.Intn(60))
		}
		return 0
	default:
		return 0
	}
}

// -----------------------------------------------------------------------------

// FetchDay synthesizes a full user-day of data.
func (s *StubSource) FetchDay(ctx context.Context, userID, dayDate, nightDate string, loc *time.Location) (*interfaces.RawDayData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.UTC
	}
	rng := seededRand(userID, dayDate)
	data := &interfaces.RawDayData{}

	var stepsTotal float64
	for m := 0; m < 1440; m++ {
		clock := fmt.Sprintf("%sT%02d:%02d:00", dayDate, m/60, m%60)

		steps := diurnalSteps(rng, m)
		stepsTotal += steps
		data.Steps = append(data.Steps, models.MIntradaySample{Time: clock, Value: steps})

		hr := 58 + 0.25*steps + 6*math.Sin(float64(m)/1440*2*math.Pi) + rng.Float64()*4
		data.Heart = append(data.Heart, models.MIntradaySample{Time: clock, Value: math.Round(hr)})

		cal := 1.1 + steps*0.04
		data.CaloriesIntraday = append(data.CaloriesIntraday, models.MIntradaySample{Time: clock, Value: cal})

		azm := 0.0
		if steps > 60 {
			azm = 1
		}
		data.Azm = append(data.Azm, models.MAzmSample{Time: clock, Active: azm, FatBurn: azm})
	}

	day, err := time.Parse("2006-01-02", dayDate)
	if err != nil {
		day = time.Now().UTC()
	}
	for i := 6; i >= 0; i-- {
		d := day.AddDate(0, 0, -i).Format("2006-01-02")
		data.Steps7d = append(data.Steps7d, models.MDailyValue{Date: d, Value: 6000 + float64(rng.Intn(5000))})
		data.RestingHr7d = append(data.RestingHr7d, models.MDailyValue{Date: d, Value: 58 + float64(rng.Intn(5))})
	}

	night, err := time.Parse("2006-01-02", nightDate)
	if err != nil {
		night = day
	}
	for i := 6; i >= 0; i-- {
		d := night.AddDate(0, 0, -i)
		start := time.Date(d.Year(), d.Month(), d.Day(), 23, 10+rng.Intn(40), 0, 0, loc).AddDate(0, 0, -1)
		durMin := 400 + rng.Intn(90)
		end := start.Add(time.Duration(durMin) * time.Minute)
		data.Sleep = append(data.Sleep, models.MSleepLog{
			DateOfSleep:   d.Format("2006-01-02"),
			StartTime:     start,
			EndTime:       end,
			DurationMs:    ptrF(float64(durMin) * 60_000),
			MinutesAsleep: ptrF(float64(durMin) * 0.9),
			MinutesAwake:  ptrF(float64(durMin) * 0.1),
			DeepMinutes:   ptrF(float64(durMin) * 0.18),
			LightMinutes:  ptrF(float64(durMin) * 0.52),
			RemMinutes:    ptrF(float64(durMin) * 0.2),
			Efficiency:    ptrF(88 + float64(rng.Intn(8))),
		})
	}

	data.Daily = &models.MDailySummary{
		AzmTotal:            ptrF(20 + float64(rng.Intn(40))),
		FairlyActiveMinutes: ptrF(float64(rng.Intn(30))),
		VeryActiveMinutes:   ptrF(float64(rng.Intn(20))),
		CaloriesOut:         ptrF(1900 + float64(rng.Intn(600))),
		RestingHeartRate:    ptrF(data.RestingHr7d[6].Value),
	}

	rmssd := 25 + rng.Float64()*20
	data.HrvDaily = &models.MHrvDaily{Date: nightDate, DailyRmssd: ptrF(rmssd), DeepRmssd: ptrF(rmssd * 0.95)}
	for i := 6; i >= 0; i-- {
		d := night.AddDate(0, 0, -i).Format("2006-01-02")
		data.HrvRange = append(data.HrvRange, models.MHrvDaily{Date: d, DailyRmssd: ptrF(25 + rng.Float64()*20)})
	}

	data.Spo2Daily = &models.MSpo2Daily{
		Date: nightDate,
		Avg:  ptrF(94 + rng.Float64()*3),
		Min:  ptrF(90 + rng.Float64()*2),
		Max:  ptrF(98 + rng.Float64()),
	}
	data.Breathing = &models.MBreathingDaily{
		Date: nightDate,
		Full: ptrF(13 + rng.Float64()*3),
		Deep: ptrF(12 + rng.Float64()*3),
	}
	data.TempSkin = &models.MTempSkinDaily{Date: nightDate, NightlyRelative: ptrF(rng.Float64()*1.6 - 0.8)}

	data.Nutrition = &models.MNutritionDaily{
		Date: dayDate,
		Foods: []models.MFoodLog{
			{LogID: 1, Name: "Oatmeal", Calories: ptrF(320), MealTypeID: ptrI(1), LogTime: dayDate},
			{LogID: 2, Name: "Sandwich", Calories: ptrF(540), MealTypeID: ptrI(3), LogTime: dayDate},
		},
		Summary: models.MNutritionSummary{Calories: ptrF(860), Protein: ptrF(38), Carbs: ptrF(110)},
	}
	data.Water = &models.MWaterDaily{Date: dayDate, Total: ptrF(700 + float64(rng.Intn(1200)))}

	s.Logger.Debug("Synthesized day %s for user %s (%.0f steps)", dayDate, userID, stepsTotal)
	return data, nil
}

// -----------------------------------------------------------------------------

// FetchMostRecentExercise synthesizes yesterday evening's workout.
func (s *StubSource) FetchMostRecentExercise(ctx context.Context, userID string, beforeISO string, loc *time.Location) (*models.MExercise, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.UTC
	}

	before, ok := parseProviderTime(beforeISO, loc)
	if !ok {
		if d, err := time.ParseInLocation("2006-01-02", beforeISO, loc); err == nil {
			before = d
		} else {
			before = time.Now().In(loc)
		}
	}
	day := before.AddDate(0, 0, -1)
	start := time.Date(day.Year(), day.Month(), day.Day(), 18, 5, 0, 0, loc)

	return &models.MExercise{
		ActivityName: "Run",
		StartTime:    start,
		DurationMs:   35 * 60_000,
		Steps:        ptrF(4200),
		Calories:     ptrF(310),
		AvgHeartRate: ptrF(142),
		AzmTotal:     ptrF(31),
		Zones: []models.MZoneMinutes{
			{Name: "Fat Burn", Minutes: 12},
			{Name: "Cardio", Minutes: 19},
		},
	}, nil
}

// -----------------------------------------------------------------------------

func ptrF(v float64) *float64 { return &v }
func ptrI(v int) *int         { return &v }

// Interface guard
var _ interfaces.IDataSource = (*StubSource)(nil)
