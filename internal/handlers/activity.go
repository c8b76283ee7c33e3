package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskhub/internal/constants"
	"taskhub/internal/dto"
	apierrors "taskhub/internal/errors"
	"taskhub/internal/middleware"
	"taskhub/internal/services"
	"taskhub/internal/utils"
)

// ActivityHandler serves the activity feed.
type ActivityHandler struct {
	activityService *services.ActivityService
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activityService *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
	}
}

// GetFeed returns recent activity entries, newest first. Accepts optional
// project_id and limit query parameters.
func (h *ActivityHandler) GetFeed(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	input := services.FeedInput{
		UserID: userID,
		Limit:  utils.ParseLimit(c, "limit", constants.DefaultActivityLimit),
	}

	projectID, ok, err := utils.ParseOptionalUint64(c, "project_id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid project_id")
		return
	}
	if ok {
		input.ProjectID = &projectID
	}

	activities, err := h.activityService.Feed(input)
	if err != nil {
		apierrors.InternalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"activities": dto.ToActivityDTOs(activities)})
}
