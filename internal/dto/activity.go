package dto

import (
	"time"

	"github.com/buildly/construction-api/internal/models"
)

// ActivityDTO represents an activity log entry in API responses
type ActivityDTO struct {
	ID          uint64              `json:"id"`
	UserID      uint64              `json:"user_id"`
	Type        models.ActivityType `json:"type"`
	Description string              `json:"description"`
	RelatedID   *uint64             `json:"related_id"`
	CreatedAt   time.Time           `json:"created_at"`
}

// ToActivityDTO converts an Activity model to ActivityDTO
func ToActivityDTO(activity models.Activity) ActivityDTO {
	return ActivityDTO{
		ID:          activity.ID,
		UserID:      activity.UserID,
		Type:        activity.Type,
		Description: activity.Description,
		RelatedID:   activity.RelatedID,
		CreatedAt:   activity.CreatedAt,
	}
}

// ToActivityDTOs converts a slice of Activity models
func ToActivityDTOs(activities []models.Activity) []ActivityDTO {
	dtos := make([]ActivityDTO, len(activities))
	for i, a := range activities {
		dtos[i] = ToActivityDTO(a)
	}
	return dtos
}
