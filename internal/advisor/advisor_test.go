package advisor

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
	text  string
	err   error
	calls []models.ConversationContext
	infos []season.Info
}

func (s *stubCompleter) Complete(_ context.Context, _ string, cc models.ConversationContext, info season.Info) (string, error) {
	s.calls = append(s.calls, cc)
	s.infos = append(s.infos, info)
	return s.text, s.err
}

func newTestAdvisor(c Completer) *Advisor {
	a := New(c, nil, zap.NewNop())
	a.now = func() time.Time { return time.Date(2025, time.December, 5, 8, 0, 0, 0, time.UTC) }
	return a
}

func TestAdvisor_Ask_EnrichesCompletion(t *testing.T) {
	c := &stubCompleter{text: "In Zimbabwe, plant maize with the first rains because soil moisture is best then."}
	a := newTestAdvisor(c)

	history := []models.ChatTurn{
		{Sender: models.SenderAI, Content: "Tell me about your soil."},
		{Sender: models.SenderUser, Content: "It is sandy."},
		{Sender: models.SenderAI, Content: "Sandy soil suits groundnuts; maize needs manure."},
	}

	resp := a.Ask(context.Background(), "When should I plant maize?", history, models.Beginner)

	require.Len(t, c.calls, 1)
	assert.Equal(t, 1, c.calls[0].QuestionCount)
	assert.Equal(t, []string{"soil", "maize"}, c.calls[0].TopicsDiscussed)
	assert.Equal(t, []string{"soil", "maize", "soil"}, c.calls[0].LastTopics)
	assert.Equal(t, models.Beginner, c.calls[0].UserExperienceLevel)
	assert.Equal(t, "December", c.infos[0].Month)

	assert.InDelta(t, 0.85, resp.Confidence, 1e-9)
	assert.Equal(t, cultivationQuestions, resp.FollowUpQuestions)
	assert.Equal(t, "In Zimbabwe, plant maize with the first rains because soil moisture is best then", resp.TeachingElements.Explanation)
	assert.Contains(t, resp.ResponseText, "Beginner Tip")
	assert.Contains(t, resp.ResponseText, "Since it's December")
}

func TestAdvisor_Respond_FallsBackOnError(t *testing.T) {
	c := &stubCompleter{err: errors.New("Groq API error: 401 - Unauthorized")}
	a := newTestAdvisor(c)

	resp := a.Respond(context.Background(), "When should I plant maize in Mashonaland?", models.ConversationContext{})

	assert.Equal(t, 0.4, resp.Confidence)
	assert.Contains(t, resp.ResponseText, `"When should I plant maize in Mashonaland?"`)
	assert.Len(t, resp.FollowUpQuestions, 5)
}

func TestAdvisor_Season(t *testing.T) {
	a := newTestAdvisor(&stubCompleter{})
	assert.Equal(t, season.ActivityMainPlanting, a.Season().Activity)
}

func TestTeachingTip(t *testing.T) {
	assert.Contains(t, TeachingTip("soil"), "basalt clays")
	assert.Equal(t, TeachingTip("general"), TeachingTip("unknown"))
}

func TestOpeningQuestions(t *testing.T) {
	info := season.For(time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC))

	beginner := OpeningQuestions(models.Beginner, info)
	require.Len(t, beginner, 5)
	assert.Equal(t, "Given it's May, what farming activities are you planning?", beginner[4])

	assert.Len(t, OpeningQuestions(models.Advanced, info), 5)

	general := OpeningQuestions(models.Intermediate, info)
	require.Len(t, general, 5)
	assert.Contains(t, general[4], season.EarlyDrySeason)
}
