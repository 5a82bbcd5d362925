package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nikogura/portfolio/pkg/graph"
	"github.com/pkg/errors"
)

// Error codes.
const (
	CodeNotFound    = "not_found"
	CodeBadRequest  = "bad_request"
	CodeInvalid     = "invalid_input"
	CodeInternal    = "internal"
	CodeUnavailable = "unavailable"
)

// APIError is the body of an error response.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Field   string `json:"field,omitempty"`
}

// ErrorEnvelope wraps APIError.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondError writes the error envelope and records err on the context.
func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondOK writes payload as JSON with status 200.
func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// respondGraphError maps graph lookup failures to 404 and the rest to 500.
func respondGraphError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, graph.ErrUnknownKind), errors.Is(err, graph.ErrUnknownNode):
		RespondError(c, http.StatusNotFound, CodeNotFound, err)
	case errors.Is(err, graph.ErrUnknownLayout):
		RespondError(c, http.StatusBadRequest, CodeBadRequest, err)
	default:
		RespondError(c, http.StatusInternalServerError, CodeInternal, err)
	}
}
