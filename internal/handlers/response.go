package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/contractdesk/contractdesk-backend/internal/pkg/errors"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
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

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondDomainError maps the domain error taxonomy 1:1 onto HTTP statuses.
func RespondDomainError(c *gin.Context, err error) {
	var dependents *apperrors.DependentsError
	switch {
	case errors.As(err, &dependents):
		RespondError(c, http.StatusBadRequest, "has_dependents", err)
	case errors.Is(err, apperrors.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, apperrors.ErrConflict):
		RespondError(c, http.StatusConflict, "conflict", err)
	case errors.Is(err, apperrors.ErrInvalidReference):
		RespondError(c, http.StatusBadRequest, "invalid_reference", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal", err)
	}
}
