package repository

import (
	"github.com/buildly/construction-api/internal/models"
	"gorm.io/gorm"
)

// GormActivityRepository is a GORM implementation of ActivityRepository
type GormActivityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &GormActivityRepository{db: db}
}

// Create appends an activity entry
func (r *GormActivityRepository) Create(activity *models.Activity) error {
	return r.db.Create(activity).Error
}

// ListByUser lists a user's activities, most recent first, capped at limit
func (r *GormActivityRepository) ListByUser(userID uint64, limit int) ([]models.Activity, error) {
	var activities []models.Activity
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}

// DeleteByUser removes all of a user's activities
func (r *GormActivityRepository) DeleteByUser(userID uint64) error {
	return r.db.Where("user_id = ?", userID).
		Delete(&models.Activity{}).Error
}
