// Package weather provides the farm weather panel: a seasonal mock
// provider and weather-driven farming advice.
package weather

import (
	"context"
	"math"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/xaenox/mudhumeni/internal/models"
)

const forecastDays = 5

// Provider returns current conditions for a location.
type Provider interface {
	Current(ctx context.Context, location string) (models.WeatherSnapshot, error)
}

// MockProvider synthesises plausible Zimbabwean weather from the month.
// It is safe for concurrent use.
type MockProvider struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewMockProvider seeds from src, or from the clock when src is nil.
func NewMockProvider(src rand.Source) *MockProvider {
	if src == nil {
		seed := uint64(time.Now().UnixNano())
		src = rand.NewPCG(seed, seed>>1)
	}
	return &MockProvider{
		rng: rand.New(src),
		now: time.Now,
	}
}

type band struct {
	temp     models.TemperatureRange
	rainfall func(r *rand.Rand) float64
	humidity func(r *rand.Rand) float64
	cond     func(r *rand.Rand) models.WeatherCondition
}

func seasonalBand(month time.Month) band {
	switch {
	case month >= time.November || month <= time.March:
		return band{
			temp:     models.TemperatureRange{Min: 18, Max: 28},
			rainfall: func(r *rand.Rand) float64 { return r.Float64()*15 + 5 },
			humidity: func(r *rand.Rand) float64 { return r.Float64()*20 + 70 },
			cond: func(r *rand.Rand) models.WeatherCondition {
				if r.Float64() > 0.4 {
					return models.ConditionRainy
				}
				return models.ConditionCloudy
			},
		}
	case month <= time.June:
		return band{
			temp:     models.TemperatureRange{Min: 12, Max: 25},
			rainfall: func(r *rand.Rand) float64 { return r.Float64() * 3 },
			humidity: func(r *rand.Rand) float64 { return r.Float64()*15 + 50 },
			cond: func(r *rand.Rand) models.WeatherCondition {
				if r.Float64() > 0.7 {
					return models.ConditionCloudy
				}
				return models.ConditionSunny
			},
		}
	default:
		return band{
			temp:     models.TemperatureRange{Min: 8, Max: 26},
			rainfall: func(*rand.Rand) float64 { return 0 },
			humidity: func(r *rand.Rand) float64 { return r.Float64()*10 + 35 },
			cond:     func(*rand.Rand) models.WeatherCondition { return models.ConditionSunny },
		}
	}
}

func (p *MockProvider) Current(ctx context.Context, location string) (models.WeatherSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return models.WeatherSnapshot{}, err
	}
	if strings.TrimSpace(location) == "" {
		location = "Harare, Zimbabwe"
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	b := seasonalBand(now.Month())

	temp := b.temp
	// Harare sits on the highveld.
	if strings.Contains(strings.ToLower(location), "harare") {
		temp.Min -= 2
		temp.Max -= 2
	}

	cond := b.cond(p.rng)
	var uv int
	if cond == models.ConditionSunny {
		uv = int(math.Round(p.rng.Float64()*4 + 7))
	} else {
		uv = int(math.Round(p.rng.Float64()*3 + 3))
	}

	return models.WeatherSnapshot{
		Date:        now,
		Location:    location,
		Description: describe(cond, temp.Max),
		Temperature: temp,
		Humidity:    math.Round(b.humidity(p.rng)),
		Rainfall:    round1(b.rainfall(p.rng)),
		WindSpeed:   round1(p.rng.Float64()*15 + 5),
		Condition:   cond,
		UVIndex:     &uv,
		Forecast:    p.forecast(now),
	}, nil
}

var forecastConditions = []models.WeatherCondition{
	models.ConditionSunny,
	models.ConditionCloudy,
	models.ConditionRainy,
}

func (p *MockProvider) forecast(from time.Time) []models.DailyForecast {
	days := make([]models.DailyForecast, 0, forecastDays)
	for i := 1; i <= forecastDays; i++ {
		days = append(days, models.DailyForecast{
			Date: from.AddDate(0, 0, i),
			Temperature: models.TemperatureRange{
				Min: math.Round(p.rng.Float64()*8 + 15),
				Max: math.Round(p.rng.Float64()*10 + 25),
			},
			Condition: forecastConditions[p.rng.IntN(len(forecastConditions))],
			Humidity:  math.Round(p.rng.Float64()*30 + 50),
			Rainfall:  round1(p.rng.Float64() * 10),
		})
	}
	return days
}

func describe(cond models.WeatherCondition, maxTemp float64) string {
	switch {
	case cond == models.ConditionRainy:
		return "Light to moderate rainfall expected"
	case cond == models.ConditionCloudy:
		return "Partly cloudy with scattered clouds"
	case maxTemp > 30:
		return "Clear skies with high temperatures"
	default:
		return "Clear skies with pleasant temperatures"
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
