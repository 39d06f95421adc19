package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/ladle/backend/internal/types"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// StatusForScrapeError maps pipeline error codes onto HTTP statuses.
// Unknown errors are treated as internal.
func StatusForScrapeError(err error) int {
	switch types.CodeOf(err) {
	case types.ErrInvalidURL:
		return http.StatusBadRequest
	case types.ErrNetwork, types.ErrScrapeFailed:
		return http.StatusBadGateway
	case types.ErrRecipeNotFound:
		return http.StatusNotFound
	case types.ErrBlockedBySite:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// RespondScrapeError writes the JSON error body for a pipeline failure.
func RespondScrapeError(c *gin.Context, err error) {
	code := types.CodeOf(err)
	status := StatusForScrapeError(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, ErrorResponse{Error: err.Error(), Code: string(code)})
}

// ErrorHandler recovers panics into a JSON 500 so no handler can leak a
// stack trace to the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("panic recovered", "path", c.FullPath(), "panic", r)
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					ErrorResponse{Error: "internal server error"})
			}
		}()
		c.Next()
	}
}
