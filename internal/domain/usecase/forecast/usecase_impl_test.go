package forecast

import (
	"math/rand/v2"
	"reflect"
	"testing"
	"time"

	"weather-relay/internal/domain/entity"
)

func TestGenerateForecastsShape(t *testing.T) {
	now := time.Date(2024, 1, 30, 17, 45, 12, 0, time.UTC)
	uc := NewForecastUseCase(WithClock(func() time.Time { return now }))

	for run := 0; run < 200; run++ {
		forecasts := uc.GenerateForecasts()
		if len(forecasts) != ForecastDays {
			t.Fatalf("expected %d forecasts, got %d", ForecastDays, len(forecasts))
		}

		for i, forecast := range forecasts {
			if forecast.TemperatureC < -20 || forecast.TemperatureC > 54 {
				t.Fatalf("temperature %d out of range", forecast.TemperatureC)
			}
			if !entity.IsSummary(forecast.Summary) {
				t.Fatalf("unknown summary %q", forecast.Summary)
			}

			want := time.Date(2024, 1, 31+i, 0, 0, 0, 0, time.UTC)
			if !forecast.Date.Equal(want) {
				t.Fatalf("forecast %d: got date %s, want %s", i, forecast.Date, want)
			}
		}
	}
}

func TestGenerateForecastsDatesIncreaseByOneDay(t *testing.T) {
	forecasts := NewForecastUseCase().GenerateForecasts()

	tomorrow := entity.NewForecastDate(time.Now()).AddDays(1)
	if !forecasts[0].Date.Equal(tomorrow.Time) {
		t.Fatalf("first forecast should be tomorrow (%s), got %s", tomorrow, forecasts[0].Date)
	}
	for i := 1; i < len(forecasts); i++ {
		if !forecasts[i].Date.Equal(forecasts[i-1].Date.AddDays(1).Time) {
			t.Fatalf("forecast %d is not one day after forecast %d", i, i-1)
		}
	}
}

func TestGenerateForecastsCoversRangeBounds(t *testing.T) {
	uc := NewForecastUseCase(WithRand(rand.New(rand.NewPCG(1, 2))))

	seenMin, seenMax := false, false
	for run := 0; run < 2000 && !(seenMin && seenMax); run++ {
		for _, forecast := range uc.GenerateForecasts() {
			seenMin = seenMin || forecast.TemperatureC == -20
			seenMax = seenMax || forecast.TemperatureC == 54
		}
	}
	if !seenMin || !seenMax {
		t.Fatalf("expected both bounds to be drawn, min=%v max=%v", seenMin, seenMax)
	}
}

func TestGenerateForecastsIsFreshOnEveryCall(t *testing.T) {
	uc := NewForecastUseCase(WithRand(rand.New(rand.NewPCG(7, 11))))

	first := uc.GenerateForecasts()
	second := uc.GenerateForecasts()

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	if reflect.DeepEqual(first, second) {
		t.Fatal("two consecutive generations should not be identical")
	}
}

func TestGenerateForecastsDeterministicWithSeed(t *testing.T) {
	now := func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }

	a := NewForecastUseCase(WithClock(now), WithRand(rand.New(rand.NewPCG(3, 4)))).GenerateForecasts()
	b := NewForecastUseCase(WithClock(now), WithRand(rand.New(rand.NewPCG(3, 4)))).GenerateForecasts()

	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same seed should give same forecasts:\n%v\n%v", a, b)
	}
}
