package completion

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Kind classifies a failed completion call.
type Kind int

const (
	KindUpstream Kind = iota
	KindAuth
	KindRateLimit
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindRateLimit:
		return "rate_limit"
	case KindNetwork:
		return "network"
	default:
		return "upstream"
	}
}

// ErrInvalidResponse marks a 2xx reply without usable content.
var ErrInvalidResponse = errors.New("invalid completion response")

// Error is returned by every failing Client call.
type Error struct {
	Kind       Kind
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("completion %s error (status %d): %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("completion %s error: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the kind of err. Errors that did not come from this package
// are classified by their message text.
func KindOf(err error) Kind {
	var cErr *Error
	if errors.As(err, &cErr) {
		return cErr.Kind
	}
	return kindFromMessage(err.Error())
}

var messageKinds = []struct {
	kind    Kind
	markers []string
}{
	{KindAuth, []string{"api key", "401", "unauthorized"}},
	{KindNetwork, []string{"fetch", "network", "timeout"}},
	{KindRateLimit, []string{"429", "rate limit"}},
}

func kindFromMessage(msg string) Kind {
	msg = strings.ToLower(msg)
	for _, mk := range messageKinds {
		for _, marker := range mk.markers {
			if strings.Contains(msg, marker) {
				return mk.kind
			}
		}
	}
	return KindUpstream
}

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuth
	case http.StatusTooManyRequests:
		return KindRateLimit
	default:
		return KindUpstream
	}
}

func mapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &Error{Kind: kindForStatus(apiErr.HTTPStatusCode), StatusCode: apiErr.HTTPStatusCode, Err: err}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &Error{Kind: kindForStatus(reqErr.HTTPStatusCode), StatusCode: reqErr.HTTPStatusCode, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &Error{Kind: KindNetwork, Err: err}
	}

	return &Error{Kind: KindUpstream, Err: err}
}
