package completion

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf_Messages(t *testing.T) {
	tests := []struct {
		msg  string
		want Kind
	}{
		{"Groq API error: 401 - invalid", KindAuth},
		{"API key not configured", KindAuth},
		{"Unauthorized", KindAuth},
		{"Groq API error: 429 - Too many", KindRateLimit},
		{"rate limit reached", KindRateLimit},
		{"failed to fetch", KindNetwork},
		{"network unreachable", KindNetwork},
		{"request timeout", KindNetwork},
		{"fetch failed after 429 from proxy", KindNetwork},
		{"network timeout, rate limit unknown", KindNetwork},
		{"Groq API error: 500", KindUpstream},
		{"", KindUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(errors.New(tt.msg)))
		})
	}
}

func TestKindOf_TypedErrorWins(t *testing.T) {
	// message mentions 401 but the transport said rate limit
	err := fmt.Errorf("wrapped: %w", &Error{Kind: KindRateLimit, Err: errors.New("401")})
	assert.Equal(t, KindRateLimit, KindOf(err))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "auth", KindAuth.String())
	assert.Equal(t, "rate_limit", KindRateLimit.String())
	assert.Equal(t, "network", KindNetwork.String())
	assert.Equal(t, "upstream", KindUpstream.String())
}
