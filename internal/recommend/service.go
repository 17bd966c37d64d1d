// Package recommend turns a soil analysis into a bounded list of crop
// recommendations.
package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/xaenox/mudhumeni/internal/advisor"
	"github.com/xaenox/mudhumeni/internal/completion"
	"github.com/xaenox/mudhumeni/internal/models"
	"github.com/xaenox/mudhumeni/internal/season"
)

type Completer interface {
	Complete(ctx context.Context, userMessage string, cc models.ConversationContext, info season.Info) (string, error)
	CompleteJSON(ctx context.Context, userMessage string, cc models.ConversationContext, info season.Info, schema *completion.Schema) (json.RawMessage, error)
}

// Source says which path produced a Result.
type Source string

const (
	SourceStructured Source = "structured"
	SourceParsed     Source = "parsed"
	SourceDefault    Source = "default"
)

type Result struct {
	Recommendations []models.CropRecommendation `json:"recommendations"`
	Source          Source                      `json:"source"`
}

type Service struct {
	completer  Completer
	structured bool
	logger     *zap.Logger
	now        func() time.Time
}

// NewService returns a Service. With structured set, a schema-constrained
// completion is tried before the free-text one.
func NewService(completer Completer, structured bool, logger *zap.Logger) *Service {
	return &Service{
		completer:  completer,
		structured: structured,
		logger:     logger,
		now:        time.Now,
	}
}

// Recommend always returns between 3 and 5 recommendations.
func (s *Service) Recommend(ctx context.Context, soil models.SoilData) Result {
	prompt := SoilPrompt(soil)
	cc := soilContext()
	info := season.For(s.now())

	if s.structured {
		recs, err := s.recommendStructured(ctx, prompt, cc, info)
		if err == nil {
			return Result{Recommendations: recs, Source: SourceStructured}
		}
		s.logger.Warn("Structured recommendations unavailable, falling back to text",
			zap.Error(err))
		if kind := completion.KindOf(err); kind != completion.KindUpstream {
			// The plain request would fail the same way.
			return Result{Recommendations: Defaults(DefaultConfidence), Source: SourceDefault}
		}
	}

	raw, err := s.completer.Complete(ctx, prompt, cc, info)
	if err != nil {
		s.logger.Error("Crop recommendation request failed",
			zap.Error(err),
			zap.String("kind", completion.KindOf(err).String()))
		return Result{Recommendations: Defaults(DefaultConfidence), Source: SourceDefault}
	}

	recs, err := Parse(raw, advisor.Confidence(raw, info))
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			s.logger.Warn("Recommendation text could not be parsed",
				zap.Int("line", perr.Line),
				zap.Error(perr.Err))
		}
		return Result{Recommendations: recs, Source: SourceDefault}
	}
	return Result{Recommendations: recs, Source: SourceParsed}
}

func (s *Service) recommendStructured(ctx context.Context, prompt string, cc models.ConversationContext, info season.Info) ([]models.CropRecommendation, error) {
	raw, err := s.completer.CompleteJSON(ctx, prompt, cc, info, recommendationSchema)
	if err != nil {
		return nil, err
	}

	var doc structuredRecommendations
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &completion.Error{Kind: completion.KindUpstream, Err: err}
	}

	recs := make([]models.CropRecommendation, 0, MaxRecommendations)
	for i, r := range doc.Recommendations {
		if i == MaxRecommendations {
			break
		}
		recs = append(recs, r.toModel(i))
	}
	return pad(recs, advisor.Confidence(string(raw), info)), nil
}
