package weather

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xaenox/mudhumeni/internal/advisor"
	"github.com/xaenox/mudhumeni/internal/completion"
	"github.com/xaenox/mudhumeni/internal/models"
	"github.com/xaenox/mudhumeni/internal/season"
)

const defaultAdviceConfidence = 0.5

// AdvicePrompt asks for farming advice suited to the snapshot.
func AdvicePrompt(s models.WeatherSnapshot) string {
	uv := "unknown"
	if s.UVIndex != nil {
		uv = strconv.Itoa(*s.UVIndex)
	}

	return fmt.Sprintf(`Based on this weather forecast for %s, provide specific farming advice for Zimbabwe farmers:

CURRENT WEATHER:
- Temperature: %s°C - %s°C
- Humidity: %s%%
- Rainfall: %smm
- Wind Speed: %s km/h
- Condition: %s
- UV Index: %s
- Date: %s

Please provide:
1. Immediate farming activities recommended for today/this week
2. Crop protection advice based on current conditions
3. Irrigation recommendations
4. Pest and disease risks to watch for
5. Harvesting guidance if applicable
6. Soil management tasks suitable for these conditions

Consider Zimbabwe's agricultural calendar and current season. Be specific and actionable.`,
		s.Location,
		num(s.Temperature.Min), num(s.Temperature.Max),
		num(s.Humidity),
		num(s.Rainfall),
		num(s.WindSpeed),
		s.Condition,
		uv,
		s.Date.Format("2 January 2006"))
}

// DefaultAdvice is rule-based advice for when no completion is available.
func DefaultAdvice(s models.WeatherSnapshot) string {
	var b strings.Builder

	switch {
	case s.Rainfall > 10:
		b.WriteString("Heavy rainfall expected - avoid field operations and check drainage systems. ")
	case s.Rainfall > 0:
		b.WriteString("Light rainfall is good for crops - consider reducing irrigation. ")
	default:
		b.WriteString("No rainfall expected - maintain irrigation schedules. ")
	}

	if s.Temperature.Max > 30 {
		b.WriteString("High temperatures - provide shade for sensitive crops and increase watering frequency. ")
	}
	if s.Humidity > 80 {
		b.WriteString("High humidity increases disease risk - monitor crops for fungal infections. ")
	}

	if m := s.Date.Month(); m >= time.November || m <= time.March {
		b.WriteString("Wet season activities: focus on planting summer crops and weed management.")
	} else {
		b.WriteString("Dry season activities: harvest remaining crops and prepare land for next season.")
	}
	return b.String()
}

type Advisor struct {
	completer advisor.Completer
	logger    *zap.Logger
	now       func() time.Time
}

func NewAdvisor(completer advisor.Completer, logger *zap.Logger) *Advisor {
	return &Advisor{completer: completer, logger: logger, now: time.Now}
}

// Advise returns farming advice for the snapshot. Completion failures fall
// back to DefaultAdvice.
func (a *Advisor) Advise(ctx context.Context, s models.WeatherSnapshot) models.StructuredResponse {
	prompt := AdvicePrompt(s)
	cc := models.ConversationContext{
		QuestionCount:       1,
		TopicsDiscussed:     []string{"weather", "farming_advice"},
		UserExperienceLevel: models.Intermediate,
		LastTopics:          []string{"weather"},
	}
	info := season.For(a.now())

	raw, err := a.completer.Complete(ctx, prompt, cc, info)
	if err != nil {
		a.logger.Error("Weather advice request failed",
			zap.Error(err),
			zap.String("kind", completion.KindOf(err).String()),
			zap.String("location", s.Location))

		text := DefaultAdvice(s)
		return models.StructuredResponse{
			ResponseText:      text,
			Confidence:        defaultAdviceConfidence,
			FollowUpQuestions: advisor.FollowUpQuestions(prompt, text, cc.UserExperienceLevel),
			TeachingElements:  models.TeachingElements{Explanation: advisor.TeachingTip("weather")},
		}
	}

	return advisor.Enrich(raw, prompt, cc, info)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
