package weather

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xaenox/mudhumeni/internal/models"
)

func newTestProvider(at time.Time) *MockProvider {
	p := NewMockProvider(rand.NewPCG(1, 2))
	p.now = func() time.Time { return at }
	return p
}

func TestMockProvider_Invariants(t *testing.T) {
	for m := time.January; m <= time.December; m++ {
		at := time.Date(2025, m, 15, 9, 0, 0, 0, time.UTC)
		p := newTestProvider(at)

		for i := 0; i < 20; i++ {
			s, err := p.Current(context.Background(), "Mutare")
			require.NoError(t, err)

			assert.GreaterOrEqual(t, s.Humidity, 0.0)
			assert.LessOrEqual(t, s.Humidity, 100.0)
			assert.GreaterOrEqual(t, s.Rainfall, 0.0)
			assert.GreaterOrEqual(t, s.WindSpeed, 5.0)
			assert.LessOrEqual(t, s.WindSpeed, 20.0)
			assert.Less(t, s.Temperature.Min, s.Temperature.Max)
			require.NotNil(t, s.UVIndex)
			assert.Contains(t, []models.WeatherCondition{
				models.ConditionSunny, models.ConditionCloudy, models.ConditionRainy,
			}, s.Condition)

			require.Len(t, s.Forecast, 5)
			for d, f := range s.Forecast {
				assert.Equal(t, at.AddDate(0, 0, d+1), f.Date)
				assert.GreaterOrEqual(t, f.Rainfall, 0.0)
				assert.LessOrEqual(t, f.Humidity, 100.0)
			}
		}
	}
}

func TestMockProvider_SeasonalBands(t *testing.T) {
	wet, err := newTestProvider(time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)).Current(context.Background(), "Masvingo")
	require.NoError(t, err)
	assert.Equal(t, models.TemperatureRange{Min: 18, Max: 28}, wet.Temperature)
	assert.GreaterOrEqual(t, wet.Rainfall, 5.0)
	assert.GreaterOrEqual(t, wet.Humidity, 70.0)
	assert.NotEqual(t, models.ConditionSunny, wet.Condition)

	dry, err := newTestProvider(time.Date(2025, time.September, 10, 0, 0, 0, 0, time.UTC)).Current(context.Background(), "Masvingo")
	require.NoError(t, err)
	assert.Equal(t, models.TemperatureRange{Min: 8, Max: 26}, dry.Temperature)
	assert.Zero(t, dry.Rainfall)
	assert.Equal(t, models.ConditionSunny, dry.Condition)
	assert.GreaterOrEqual(t, *dry.UVIndex, 7)
	assert.Equal(t, "Clear skies with pleasant temperatures", dry.Description)
}

func TestMockProvider_HarareAltitude(t *testing.T) {
	at := time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC)

	s, err := newTestProvider(at).Current(context.Background(), "Harare, Zimbabwe")
	require.NoError(t, err)
	assert.Equal(t, models.TemperatureRange{Min: 10, Max: 23}, s.Temperature)

	s, err = newTestProvider(at).Current(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "Harare, Zimbabwe", s.Location)
}

func TestMockProvider_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMockProvider(nil).Current(ctx, "Gweru")
	assert.ErrorIs(t, err, context.Canceled)
}
