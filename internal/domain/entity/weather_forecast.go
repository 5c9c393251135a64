package entity

import (
	"encoding/json"
	"math"
)

// Summaries is the fixed set of labels a forecast can carry.
var Summaries = []string{
	"Freezing", "Bracing", "Chilly", "Cool", "Mild", "Warm", "Balmy", "Hot", "Sweltering", "Scorching",
}

// IsSummary reports whether s is one of the known summaries.
func IsSummary(s string) bool {
	for _, summary := range Summaries {
		if summary == s {
			return true
		}
	}
	return false
}

// WeatherForecast is a single synthetic forecast for one day. TemperatureF is derived from
// TemperatureC on every read and is never stored.
type WeatherForecast struct {
	Date         ForecastDate `json:"date" swaggertype:"string" example:"2024-01-02T00:00:00"`
	TemperatureC int          `json:"temperatureC" example:"10"`
	Summary      string       `json:"summary" example:"Mild"`
}

// TemperatureF converts TemperatureC to Fahrenheit, rounded to the nearest degree.
func (f WeatherForecast) TemperatureF() int {
	return 32 + int(math.Round(float64(f.TemperatureC)/(5.0/9.0)))
}

type weatherForecastJSON struct {
	Date         ForecastDate `json:"date"`
	TemperatureC int          `json:"temperatureC"`
	TemperatureF int          `json:"temperatureF"`
	Summary      string       `json:"summary"`
}

func (f WeatherForecast) MarshalJSON() ([]byte, error) {
	return json.Marshal(weatherForecastJSON{
		Date:         f.Date,
		TemperatureC: f.TemperatureC,
		TemperatureF: f.TemperatureF(),
		Summary:      f.Summary,
	})
}

// UnmarshalJSON ignores temperatureF; it is recomputed from temperatureC.
func (f *WeatherForecast) UnmarshalJSON(data []byte) error {
	var raw weatherForecastJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*f = WeatherForecast{
		Date:         raw.Date,
		TemperatureC: raw.TemperatureC,
		Summary:      raw.Summary,
	}
	return nil
}
