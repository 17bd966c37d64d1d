// Package advisor turns farmer questions into shaped, confidence-scored
// chat responses.
package advisor

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xaenox/mudhumeni/internal/classifier"
	"github.com/xaenox/mudhumeni/internal/completion"
	"github.com/xaenox/mudhumeni/internal/models"
	"github.com/xaenox/mudhumeni/internal/season"
)

// Completer is the completion boundary. *completion.Client implements it.
type Completer interface {
	Complete(ctx context.Context, userMessage string, cc models.ConversationContext, info season.Info) (string, error)
}

type Advisor struct {
	completer Completer
	tracker   *classifier.Tracker
	logger    *zap.Logger
	now       func() time.Time
}

func New(completer Completer, tracker *classifier.Tracker, logger *zap.Logger) *Advisor {
	if tracker == nil {
		tracker = classifier.NewTracker(nil)
	}
	return &Advisor{
		completer: completer,
		tracker:   tracker,
		logger:    logger,
		now:       time.Now,
	}
}

// Ask answers question given the turns that preceded it.
func (a *Advisor) Ask(ctx context.Context, question string, history []models.ChatTurn, level models.ExperienceLevel) models.StructuredResponse {
	return a.Respond(ctx, question, a.tracker.Build(history, level))
}

// Respond answers question with an explicit context. Completion failures
// are turned into a fallback response and never returned.
func (a *Advisor) Respond(ctx context.Context, question string, cc models.ConversationContext) models.StructuredResponse {
	info := season.For(a.now())

	raw, err := a.completer.Complete(ctx, question, cc, info)
	if err != nil {
		a.logger.Error("Falling back after completion failure",
			zap.Error(err),
			zap.String("kind", completion.KindOf(err).String()),
			zap.Int("question_count", cc.QuestionCount))
		return Fallback(err, question)
	}

	return Enrich(raw, question, cc, info)
}

// Season reports the season info the advisor is currently using.
func (a *Advisor) Season() season.Info {
	return season.For(a.now())
}
