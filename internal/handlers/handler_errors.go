package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// respondError writes err as {"error": ...}. Client errors carry the error
// text; server errors carry only fallback.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status := apperrors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": fallback})
		return
	}
	logger.Warn(fallback, slog.String("error", err.Error()), slog.Int("status", status))
	c.JSON(status, gin.H{"error": err.Error()})
}
