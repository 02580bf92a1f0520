package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Brownie44l1/doodle-api/internal/metrics"
	"github.com/Brownie44l1/doodle-api/internal/model"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// APIError is an error mapped to its HTTP representation.
type APIError struct {
	StatusCode int
	Outcome    string
	Detail     string
}

// MapError maps classifier errors to HTTP status codes and detail messages.
func MapError(err error) APIError {
	var inputErr *model.InputError
	switch {
	case errors.Is(err, model.ErrModelNotLoaded):
		return APIError{
			StatusCode: http.StatusInternalServerError,
			Outcome:    metrics.OutcomeModelNotLoaded,
			Detail:     "Model not loaded",
		}
	case errors.As(err, &inputErr):
		return APIError{
			StatusCode: http.StatusBadRequest,
			Outcome:    metrics.OutcomeInvalidInput,
			Detail:     inputErr.Reason,
		}
	case errors.Is(err, model.ErrInvalidInput):
		return APIError{
			StatusCode: http.StatusBadRequest,
			Outcome:    metrics.OutcomeInvalidInput,
			Detail:     "Invalid input",
		}
	default:
		return APIError{
			StatusCode: http.StatusInternalServerError,
			Outcome:    metrics.OutcomeFailure,
			Detail:     "Error processing image: " + err.Error(),
		}
	}
}

func respondError(c *gin.Context, status int, detail string) {
	c.JSON(status, ErrorResponse{Detail: detail})
}
