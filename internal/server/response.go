package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	codeInvalidRequest = "invalid_request"
	codeNotFound       = "not_found"
	codeNotLoggedIn    = "not_logged_in"
	codeStale          = "stale_response"
	codeInternal       = "internal"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func respondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func respondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
