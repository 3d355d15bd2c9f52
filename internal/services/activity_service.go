package services

import (
	"fmt"
	"log"

	"github.com/buildly/construction-api/internal/models"
	"github.com/buildly/construction-api/internal/repository"
)

// ActivityListLimit caps how many entries a listing returns.
const ActivityListLimit = 50

// ActivityService owns the append-only activity log.
type ActivityService struct {
	activityRepo repository.ActivityRepository
}

// NewActivityService creates a new ActivityService
func NewActivityService(activityRepo repository.ActivityRepository) *ActivityService {
	return &ActivityService{activityRepo: activityRepo}
}

// Record appends an audit entry. It never fails the caller: the log is
// best-effort auxiliary state and a write failure must not roll back the
// mutation it describes.
func (s *ActivityService) Record(userID uint64, activityType models.ActivityType, description string, relatedID *uint64) {
	activity := &models.Activity{
		UserID:      userID,
		Type:        activityType,
		Description: description,
		RelatedID:   relatedID,
	}
	if err := s.activityRepo.Create(activity); err != nil {
		log.Printf("failed to record activity for user %d: %v", userID, err)
	}
}

// List returns a user's most recent activities, newest first.
func (s *ActivityService) List(userID uint64) ([]models.Activity, error) {
	activities, err := s.activityRepo.ListByUser(userID, ActivityListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}

// Clear deletes all of a user's activities. Irreversible.
func (s *ActivityService) Clear(userID uint64) error {
	if err := s.activityRepo.DeleteByUser(userID); err != nil {
		return fmt.Errorf("failed to clear activities: %w", err)
	}
	return nil
}
