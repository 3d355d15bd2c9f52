package models

import "time"

type ActivityType string

const (
	ActivityTypeProject ActivityType = "project"
	ActivityTypeTask    ActivityType = "task"
	ActivityTypeEdit    ActivityType = "edit"
	ActivityTypeDelete  ActivityType = "delete"
)

// Activity is an append-only audit entry. Rows are never updated and are
// only deleted in bulk per user.
type Activity struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	UserID      uint64       `gorm:"not null;index" json:"user_id"`
	Type        ActivityType `gorm:"type:varchar(20);not null" json:"type"`
	Description string       `gorm:"type:text;not null" json:"description"`
	RelatedID   *uint64      `json:"related_id"`
	CreatedAt   time.Time    `json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
