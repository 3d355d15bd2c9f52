package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleBuilder    UserRole = "builder"
	RoleArchitect  UserRole = "architect"
	RoleContractor UserRole = "contractor"
	RoleSupervisor UserRole = "supervisor"
	RoleClient     UserRole = "client"
)

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Username     string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Role         UserRole       `gorm:"type:varchar(20);not null;default:'builder'" json:"role"`
	Company      string         `gorm:"type:varchar(255)" json:"company"`
	Phone        string         `gorm:"type:varchar(50)" json:"phone"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Projects     []Project `gorm:"foreignKey:OwnerID" json:"-"`
	CreatedTasks []Task    `gorm:"foreignKey:CreatorID" json:"-"`
}
