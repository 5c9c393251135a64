package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// ForecastDateLayout is the wire layout of a forecast date: an ISO-8601 date-time without offset.
const ForecastDateLayout = "2006-01-02T15:04:05"

var forecastDateLayouts = []string{
	ForecastDateLayout,
	"2006-01-02T15:04:05.9999999",
	time.RFC3339Nano,
	"2006-01-02",
}

// ForecastDate is a calendar date serialized as an ISO-8601 date-time.
type ForecastDate struct {
	time.Time
}

// NewForecastDate returns the date of t at midnight, keeping t's location.
func NewForecastDate(t time.Time) ForecastDate {
	year, month, day := t.Date()
	return ForecastDate{Time: time.Date(year, month, day, 0, 0, 0, 0, t.Location())}
}

// ParseForecastDate accepts the wire layout, fractional seconds, RFC 3339 or a bare date.
func ParseForecastDate(value string) (ForecastDate, error) {
	for _, layout := range forecastDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return ForecastDate{Time: parsed}, nil
		}
	}
	return ForecastDate{}, fmt.Errorf("invalid forecast date %q", value)
}

// AddDays returns the date n calendar days later.
func (d ForecastDate) AddDays(n int) ForecastDate {
	return ForecastDate{Time: d.Time.AddDate(0, 0, n)}
}

func (d ForecastDate) String() string {
	return d.Format(ForecastDateLayout)
}

func (d ForecastDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *ForecastDate) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = ForecastDate{}
		return nil
	}

	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("forecast date must be a string: %w", err)
	}

	parsed, err := ParseForecastDate(value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
