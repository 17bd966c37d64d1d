package advisor

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xaenox/mudhumeni/internal/models"
)

var (
	ErrEmptyMessage  = errors.New("message is empty")
	ErrTurnNotFound  = errors.New("chat turn not found")
	ErrInvalidRating = errors.New("rating must be up or down")
	// ErrStaleResponse is returned when a newer Submit started before this
	// one finished. The stale answer is not appended.
	ErrStaleResponse = errors.New("response superseded by a newer request")
)

const welcomeMessage = `Mhoroi! Welcome to Mudhumeni AI, your farming advisor for Zimbabwe.

I can help with:
• **Crop planning** - what to plant and when, for your region
• **Pest & disease management** - identify and treat farming problems
• **Soil & fertilizer advice** - improve soil health and nutrition
• **Seasonal planning** - what to do throughout the farming calendar
• **Market guidance** - crop profitability and selling strategies

Try asking: *"When should I plant maize in Mashonaland?"* or *"How do I control fall armyworm?"*`

// Asker answers a question given the preceding turns. *Advisor implements it.
type Asker interface {
	Ask(ctx context.Context, question string, history []models.ChatTurn, level models.ExperienceLevel) models.StructuredResponse
}

// Session holds one chat panel's turns. Each Submit is tagged with a
// sequence number; only the latest in-flight request may append its answer.
type Session struct {
	mu     sync.Mutex
	asker  Asker
	turns  []models.ChatTurn
	seq    uint64
	level  models.ExperienceLevel
	logger *zap.Logger
	now    func() time.Time
}

func NewSession(asker Asker, level models.ExperienceLevel, logger *zap.Logger) *Session {
	s := &Session{
		asker:  asker,
		level:  level,
		logger: logger,
		now:    time.Now,
	}

	full := 1.0
	s.turns = append(s.turns, models.ChatTurn{
		ID:         uuid.New().String(),
		Content:    welcomeMessage,
		Sender:     models.SenderAI,
		Timestamp:  s.now(),
		Confidence: &full,
	})
	return s
}

// Submit records the user's message, asks for an answer and appends it.
func (s *Session) Submit(ctx context.Context, text string) (models.ChatTurn, models.StructuredResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.ChatTurn{}, models.StructuredResponse{}, ErrEmptyMessage
	}

	s.mu.Lock()
	history := append([]models.ChatTurn(nil), s.turns...)
	s.turns = append(s.turns, models.ChatTurn{
		ID:        uuid.New().String(),
		Content:   text,
		Sender:    models.SenderUser,
		Timestamp: s.now(),
	})
	s.seq++
	seq := s.seq
	level := s.level
	s.mu.Unlock()

	resp := s.asker.Ask(ctx, text, history, level)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		s.logger.Warn("Discarding stale response",
			zap.Uint64("seq", seq),
			zap.Uint64("latest_seq", s.seq))
		return models.ChatTurn{}, resp, ErrStaleResponse
	}

	turn := turnFromResponse(resp, s.now())
	s.turns = append(s.turns, turn)
	return turn, resp, nil
}

func turnFromResponse(resp models.StructuredResponse, at time.Time) models.ChatTurn {
	confidence := resp.Confidence
	turn := models.ChatTurn{
		ID:          uuid.New().String(),
		Content:     resp.ResponseText,
		Sender:      models.SenderAI,
		Timestamp:   at,
		Confidence:  &confidence,
		TeachingTip: resp.TeachingElements.Explanation,
		CheckPoint:  resp.TeachingElements.CheckPoint,
	}
	if resp.TeachingElements.Example != "" {
		turn.VisualAid = &models.VisualAid{Type: "text", Content: resp.TeachingElements.Example}
	}
	return turn
}

// Rate sets the rating of turn id in place.
func (s *Session) Rate(id string, rating models.Rating) error {
	if rating != models.RatingUp && rating != models.RatingDown {
		return ErrInvalidRating
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.turns {
		if s.turns[i].ID == id {
			s.turns[i].Rating = rating
			s.logger.Info("Turn rated", zap.String("turn_id", id), zap.String("rating", string(rating)))
			return nil
		}
	}
	return ErrTurnNotFound
}

// Turns returns a copy of the session's turns, oldest first.
func (s *Session) Turns() []models.ChatTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ChatTurn(nil), s.turns...)
}

func (s *Session) Level() models.ExperienceLevel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

func (s *Session) SetLevel(level models.ExperienceLevel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.level = level
}
