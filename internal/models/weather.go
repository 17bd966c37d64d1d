package models

import "time"

type WeatherCondition string

const (
	ConditionSunny  WeatherCondition = "sunny"
	ConditionCloudy WeatherCondition = "cloudy"
	ConditionRainy  WeatherCondition = "rainy"
	ConditionStormy WeatherCondition = "stormy"
)

type TemperatureRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type DailyForecast struct {
	Date        time.Time        `json:"date"`
	Temperature TemperatureRange `json:"temperature"`
	Condition   WeatherCondition `json:"condition"`
	Humidity    float64          `json:"humidity"`
	Rainfall    float64          `json:"rainfall"`
}

// WeatherSnapshot is regenerated on each refresh.
type WeatherSnapshot struct {
	Date        time.Time        `json:"date"`
	Location    string           `json:"location,omitempty"`
	Description string           `json:"description,omitempty"`
	Temperature TemperatureRange `json:"temperature"`
	Humidity    float64          `json:"humidity"`
	Rainfall    float64          `json:"rainfall"`
	WindSpeed   float64          `json:"wind_speed"`
	Condition   WeatherCondition `json:"condition"`
	UVIndex     *int             `json:"uv_index,omitempty"`
	Forecast    []DailyForecast  `json:"forecast"`
}
