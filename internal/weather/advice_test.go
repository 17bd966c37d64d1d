package weather

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xaenox/mudhumeni/internal/models"
	"github.com/xaenox/mudhumeni/internal/season"
)

type stubCompleter struct {
	text   string
	err    error
	prompt string
	cc     models.ConversationContext
}

func (s *stubCompleter) Complete(_ context.Context, msg string, cc models.ConversationContext, _ season.Info) (string, error) {
	s.prompt = msg
	s.cc = cc
	return s.text, s.err
}

func snapshot() models.WeatherSnapshot {
	uv := 8
	return models.WeatherSnapshot{
		Date:        time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC),
		Location:    "Chinhoyi",
		Temperature: models.TemperatureRange{Min: 19, Max: 31},
		Humidity:    85,
		Rainfall:    12.5,
		WindSpeed:   9.4,
		Condition:   models.ConditionRainy,
		UVIndex:     &uv,
	}
}

func TestAdvicePrompt(t *testing.T) {
	p := AdvicePrompt(snapshot())

	assert.Contains(t, p, "weather forecast for Chinhoyi")
	assert.Contains(t, p, "- Temperature: 19°C - 31°C\n")
	assert.Contains(t, p, "- Humidity: 85%\n")
	assert.Contains(t, p, "- Rainfall: 12.5mm\n")
	assert.Contains(t, p, "- UV Index: 8\n")
	assert.Contains(t, p, "- Date: 20 January 2025\n")
}

func TestDefaultAdvice(t *testing.T) {
	got := DefaultAdvice(snapshot())
	assert.Contains(t, got, "Heavy rainfall expected")
	assert.Contains(t, got, "High temperatures")
	assert.Contains(t, got, "High humidity")
	assert.Contains(t, got, "Wet season activities")

	dry := snapshot()
	dry.Date = time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)
	dry.Rainfall = 0
	dry.Temperature.Max = 25
	dry.Humidity = 40
	got = DefaultAdvice(dry)
	assert.Equal(t, "No rainfall expected - maintain irrigation schedules. Dry season activities: harvest remaining crops and prepare land for next season.", got)
}

func TestAdvisor_Advise(t *testing.T) {
	c := &stubCompleter{text: "Rain this season means you should delay top-dressing until the soil drains."}
	a := NewAdvisor(c, zap.NewNop())

	resp := a.Advise(context.Background(), snapshot())

	assert.Equal(t, AdvicePrompt(snapshot()), c.prompt)
	assert.Equal(t, []string{"weather", "farming_advice"}, c.cc.TopicsDiscussed)
	assert.Equal(t, models.Intermediate, c.cc.UserExperienceLevel)
	assert.Contains(t, resp.ResponseText, "delay top-dressing")
	assert.Greater(t, resp.Confidence, 0.0)
}

func TestAdvisor_AdviseFallsBack(t *testing.T) {
	a := NewAdvisor(&stubCompleter{err: errors.New("network timeout")}, zap.NewNop())

	resp := a.Advise(context.Background(), snapshot())

	assert.Equal(t, DefaultAdvice(snapshot()), resp.ResponseText)
	assert.Equal(t, 0.5, resp.Confidence)
	require.Len(t, resp.FollowUpQuestions, 5)
	assert.NotEmpty(t, resp.TeachingElements.Explanation)
}
