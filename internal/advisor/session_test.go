package advisor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xaenox/mudhumeni/internal/models"
)

type askFunc func(ctx context.Context, question string, history []models.ChatTurn, level models.ExperienceLevel) models.StructuredResponse

func (f askFunc) Ask(ctx context.Context, question string, history []models.ChatTurn, level models.ExperienceLevel) models.StructuredResponse {
	return f(ctx, question, history, level)
}

func cannedResponse(text string) models.StructuredResponse {
	return models.StructuredResponse{
		ResponseText:      text,
		Confidence:        0.8,
		FollowUpQuestions: generalQuestions,
		TeachingElements: models.TeachingElements{
			Explanation: "explanation",
			Example:     "example",
			CheckPoint:  "checkpoint",
		},
	}
}

func TestSession_StartsWithWelcome(t *testing.T) {
	s := NewSession(askFunc(nil), models.Beginner, zap.NewNop())

	turns := s.Turns()
	require.Len(t, turns, 1)
	assert.Equal(t, models.SenderAI, turns[0].Sender)
	require.NotNil(t, turns[0].Confidence)
	assert.Equal(t, 1.0, *turns[0].Confidence)
}

func TestSession_Submit(t *testing.T) {
	var gotHistory []models.ChatTurn
	var gotLevel models.ExperienceLevel
	s := NewSession(askFunc(func(_ context.Context, q string, history []models.ChatTurn, level models.ExperienceLevel) models.StructuredResponse {
		gotHistory = history
		gotLevel = level
		return cannedResponse("answer to " + q)
	}), models.Advanced, zap.NewNop())

	turn, resp, err := s.Submit(context.Background(), "  How deep do I plant beans?  ")
	require.NoError(t, err)

	// history excludes the message being asked
	require.Len(t, gotHistory, 1)
	assert.Equal(t, models.Advanced, gotLevel)

	assert.Equal(t, "answer to How deep do I plant beans?", turn.Content)
	assert.Equal(t, models.SenderAI, turn.Sender)
	require.NotNil(t, turn.Confidence)
	assert.Equal(t, 0.8, *turn.Confidence)
	assert.Equal(t, "explanation", turn.TeachingTip)
	assert.Equal(t, "checkpoint", turn.CheckPoint)
	require.NotNil(t, turn.VisualAid)
	assert.Equal(t, models.VisualAid{Type: "text", Content: "example"}, *turn.VisualAid)
	assert.Len(t, resp.FollowUpQuestions, 5)

	turns := s.Turns()
	require.Len(t, turns, 3)
	assert.Equal(t, models.SenderUser, turns[1].Sender)
	assert.Equal(t, "How deep do I plant beans?", turns[1].Content)
	assert.Equal(t, turn.ID, turns[2].ID)
}

func TestSession_SubmitEmpty(t *testing.T) {
	s := NewSession(askFunc(nil), models.Beginner, zap.NewNop())

	_, _, err := s.Submit(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Len(t, s.Turns(), 1)
}

func TestSession_DiscardsStaleResponse(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	s := NewSession(askFunc(func(_ context.Context, q string, _ []models.ChatTurn, _ models.ExperienceLevel) models.StructuredResponse {
		if q == "first" {
			close(started)
			<-release
		}
		return cannedResponse("re: " + q)
	}), models.Intermediate, zap.NewNop())

	type result struct {
		turn models.ChatTurn
		err  error
	}
	done := make(chan result)
	go func() {
		turn, _, err := s.Submit(context.Background(), "first")
		done <- result{turn, err}
	}()

	<-started
	second, _, err := s.Submit(context.Background(), "second")
	require.NoError(t, err)
	assert.Equal(t, "re: second", second.Content)

	close(release)
	select {
	case r := <-done:
		assert.ErrorIs(t, r.err, ErrStaleResponse)
	case <-time.After(5 * time.Second):
		t.Fatal("first submit did not return")
	}

	var contents []string
	for _, turn := range s.Turns()[1:] {
		contents = append(contents, turn.Content)
	}
	assert.Equal(t, []string{"first", "second", "re: second"}, contents)
}

func TestSession_Rate(t *testing.T) {
	s := NewSession(askFunc(func(context.Context, string, []models.ChatTurn, models.ExperienceLevel) models.StructuredResponse {
		return cannedResponse("ok")
	}), models.Beginner, zap.NewNop())

	turn, _, err := s.Submit(context.Background(), "hi")
	require.NoError(t, err)

	require.NoError(t, s.Rate(turn.ID, models.RatingUp))
	require.NoError(t, s.Rate(turn.ID, models.RatingDown))
	turns := s.Turns()
	assert.Equal(t, models.RatingDown, turns[len(turns)-1].Rating)

	assert.ErrorIs(t, s.Rate(turn.ID, "meh"), ErrInvalidRating)
	assert.ErrorIs(t, s.Rate("missing", models.RatingUp), ErrTurnNotFound)
}

func TestSession_SetLevel(t *testing.T) {
	s := NewSession(askFunc(nil), models.Beginner, zap.NewNop())
	s.SetLevel(models.Advanced)
	assert.Equal(t, models.Advanced, s.Level())
}
