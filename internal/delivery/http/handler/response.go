package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gdugdh24/purposematch/internal/delivery/http/middleware"
	"github.com/gdugdh24/purposematch/internal/domain"
	"github.com/gdugdh24/purposematch/internal/usecase/matching"
)

// ErrorResponse represents error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// PersistenceErrorResponse carries the ranked matches that could not be stored.
type PersistenceErrorResponse struct {
	Error   string                  `json:"error"`
	Matches []matching.MatchSummary `json:"matches"`
}

func currentUserID(c *gin.Context) (int, bool) {
	v, exists := c.Get(middleware.UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok && id > 0
}

// writeError maps use case errors to status codes.
func writeError(c *gin.Context, err error, fallback string) {
	_ = c.Error(err)

	var perr *matching.PersistenceError
	switch {
	case errors.As(err, &perr):
		c.JSON(http.StatusServiceUnavailable, PersistenceErrorResponse{
			Error:   "failed to save matches",
			Matches: perr.Matches,
		})
	case errors.Is(err, domain.ErrPurposeProfileNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "purpose profile not found"})
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
	case errors.Is(err, domain.ErrMatchNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "match not found"})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	case errors.Is(err, domain.ErrGenerationInProgress):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "match generation already in progress"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}
