package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/buildly/construction-api/internal/dto"
	apierrors "github.com/buildly/construction-api/internal/errors"
	"github.com/buildly/construction-api/internal/middleware"
	"github.com/buildly/construction-api/internal/services"
)

// ActivityHandler coordinates activity log HTTP handlers.
type ActivityHandler struct {
	activityService *services.ActivityService
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activityService *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
	}
}

// ListActivities returns the authenticated user's recent activities.
func (h *ActivityHandler) ListActivities(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	activities, err := h.activityService.List(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch activities")
		return
	}

	c.JSON(http.StatusOK, dto.ToActivityDTOs(activities))
}

// ClearActivities deletes the authenticated user's entire activity log.
func (h *ActivityHandler) ClearActivities(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.activityService.Clear(userID); err != nil {
		apierrors.InternalError(c, "Failed to clear activities")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Activities cleared"})
}
