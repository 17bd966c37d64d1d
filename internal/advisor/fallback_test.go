package advisor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xaenox/mudhumeni/internal/completion"
)

func TestFallback(t *testing.T) {
	question := `How do I "cure" tobacco?`

	tests := []struct {
		name       string
		err        error
		confidence float64
		phrase     string
	}{
		{"401 in message", errors.New("Groq API error: 401 - invalid key"), 0.4, "valid completion API key"},
		{"typed auth", &completion.Error{Kind: completion.KindAuth, Err: errors.New("x")}, 0.4, "valid completion API key"},
		{"429 in message", errors.New("Groq API error: 429"), 0.7, "rate limit"},
		{"typed rate limit", &completion.Error{Kind: completion.KindRateLimit, Err: errors.New("x")}, 0.7, "rate limit"},
		{"timeout", errors.New("request timeout"), 0.6, "network issues"},
		{"fetch before 429", errors.New("fetch failed after 429 from proxy"), 0.6, "network issues"},
		{"typed network", &completion.Error{Kind: completion.KindNetwork, Err: errors.New("x")}, 0.6, "network issues"},
		{"other", errors.New("boom"), 0.5, "technical difficulties"},
		{"nil", nil, 0.5, "technical difficulties"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := Fallback(tt.err, question)

			assert.Equal(t, tt.confidence, resp.Confidence)
			assert.Contains(t, resp.ResponseText, tt.phrase)
			assert.Contains(t, resp.ResponseText, `"How do I "cure" tobacco?"`)
			assert.Contains(t, resp.ResponseText, "• Your location in Zimbabwe")
			assert.Equal(t, fallbackQuestions, resp.FollowUpQuestions)
			assert.Equal(t, fallbackTeaching, resp.TeachingElements)
		})
	}
}
