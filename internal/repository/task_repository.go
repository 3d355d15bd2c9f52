package repository

import (
	"github.com/buildly/construction-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindOwned finds a task by ID scoped to its creator
func (r *GormTaskRepository) FindOwned(creatorID, id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.Where("id = ? AND creator_id = ?", id, creatorID).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByCreator lists a user's tasks with the referenced project preloaded,
// most recent first
func (r *GormTaskRepository) ListByCreator(creatorID uint64) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Where("creator_id = ?", creatorID).
		Preload("Project").
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete removes a task scoped to its creator
func (r *GormTaskRepository) Delete(creatorID, id uint64) error {
	return r.db.Where("creator_id = ?", creatorID).
		Delete(&models.Task{}, id).Error
}

// DetachProject clears the project reference on tasks pointing at the project.
// Runs after the project row itself is deleted; the two steps are deliberately
// not one transaction.
func (r *GormTaskRepository) DetachProject(projectID uint64) error {
	return r.db.Model(&models.Task{}).
		Where("project_id = ?", projectID).
		Update("project_id", nil).Error
}
