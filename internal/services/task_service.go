package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/buildly/construction-api/internal/models"
	"github.com/buildly/construction-api/internal/repository"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrTitleRequired = errors.New("title is required")
)

// TaskService handles task business logic. Tasks are visible and mutable
// only by their creator.
type TaskService struct {
	taskRepo   repository.TaskRepository
	activities *ActivityService
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, activities *ActivityService) *TaskService {
	return &TaskService{
		taskRepo:   taskRepo,
		activities: activities,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	ProjectID   *uint64
	Status      models.TaskStatus
	Priority    models.TaskPriority
	AssigneeID  *uint64
	DueDate     *time.Time
}

// UpdateTaskInput represents input for updating a task. ClearProject takes
// precedence over ProjectID.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	Status       *models.TaskStatus
	Priority     *models.TaskPriority
	ProjectID    *uint64
	ClearProject bool
	AssigneeID   *uint64
	DueDate      *time.Time
}

// CreateTask creates a task for the given creator. A project reference, if
// given, is stored as-is without resolving it.
func (s *TaskService) CreateTask(creatorID uint64, input CreateTaskInput) (*models.Task, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}

	if input.Status == "" {
		input.Status = models.TaskStatusPending
	}
	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		ProjectID:   input.ProjectID,
		Status:      input.Status,
		Priority:    input.Priority,
		CreatorID:   creatorID,
		AssigneeID:  input.AssigneeID,
		DueDate:     input.DueDate,
	}

	if task.Status == models.TaskStatusCompleted {
		now := time.Now()
		task.CompletedAt = &now
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.activities.Record(creatorID, models.ActivityTypeTask,
		fmt.Sprintf("Created task %q", task.Title), &task.ID)

	return task, nil
}

// ListTasks returns the user's tasks, most recent first, with the referenced
// project preloaded so its name can be shown.
func (s *TaskService) ListTasks(creatorID uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByCreator(creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTask applies the given fields to a task owned by the creator.
// Moving the status to completed stamps CompletedAt; moving it away clears
// the stamp, so a non-completed task never carries one.
func (s *TaskService) UpdateTask(creatorID, id uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindOwned(creatorID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleRequired
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.ClearProject {
		task.ProjectID = nil
	} else if input.ProjectID != nil {
		task.ProjectID = input.ProjectID
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.AssigneeID != nil {
		task.AssigneeID = input.AssigneeID
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.Status != nil && *input.Status != task.Status {
		task.Status = *input.Status
		if task.Status == models.TaskStatusCompleted {
			now := time.Now()
			task.CompletedAt = &now
		} else {
			task.CompletedAt = nil
		}
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.activities.Record(creatorID, models.ActivityTypeEdit,
		fmt.Sprintf("Updated task %q", task.Title), &task.ID)

	return task, nil
}

// DeleteTask deletes a task owned by the creator.
func (s *TaskService) DeleteTask(creatorID, id uint64) error {
	task, err := s.taskRepo.FindOwned(creatorID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.Delete(creatorID, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.activities.Record(creatorID, models.ActivityTypeDelete,
		fmt.Sprintf("Deleted task %q", task.Title), nil)

	return nil
}
