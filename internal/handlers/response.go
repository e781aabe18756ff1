package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docukit/docgraph-backend/internal/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(apierr.StatusOf(err), ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    apierr.CodeOf(err),
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondMutated reports a committed mutation. When the follow-up publish
// failed, the result still goes out as a 200 with a distinct notify_error
// field; the mutation is the contract, notification is best-effort.
func RespondMutated(c *gin.Context, payload any, notifyErr error) {
	if notifyErr == nil {
		c.JSON(http.StatusOK, gin.H{"result": payload})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"result":       payload,
		"notify_error": notifyErr.Error(),
	})
}
