package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "taskhub/internal/errors"
	"taskhub/internal/middleware"
	"taskhub/internal/services"
)

// StatsHandler serves dashboard statistics.
type StatsHandler struct {
	statsService *services.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// GetSummary returns aggregate counts for the caller's visible projects.
func (h *StatsHandler) GetSummary(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	summary, err := h.statsService.Summary(userID)
	if err != nil {
		apierrors.InternalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": summary})
}
