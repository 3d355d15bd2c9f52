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
	ErrProjectNotFound = errors.New("project not found")
	ErrNameRequired    = errors.New("name is required")
)

// ProjectService handles project business logic. Every operation is scoped
// to the owning user; a project owned by someone else is indistinguishable
// from a missing one.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	activities  *ActivityService
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository, activities *ActivityService) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		activities:  activities,
	}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Name        string
	Description string
	Status      models.ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
	Budget      *float64
}

// UpdateProjectInput represents input for updating a project
type UpdateProjectInput struct {
	Name        *string
	Description *string
	Status      *models.ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
	Budget      *float64
}

// CreateProject creates a project owned by the given user.
func (s *ProjectService) CreateProject(ownerID uint64, input CreateProjectInput) (*models.Project, error) {
	if input.Name == "" {
		return nil, ErrNameRequired
	}

	if input.Status == "" {
		input.Status = models.ProjectStatusPlanning
	}

	project := &models.Project{
		Name:        input.Name,
		Description: input.Description,
		Status:      input.Status,
		OwnerID:     ownerID,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Budget:      input.Budget,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.activities.Record(ownerID, models.ActivityTypeProject,
		fmt.Sprintf("Created project %q", project.Name), &project.ID)

	return project, nil
}

// ListProjects returns the user's projects, most recent first.
func (s *ProjectService) ListProjects(ownerID uint64) ([]models.Project, error) {
	projects, err := s.projectRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// UpdateProject applies the given fields to an owned project.
func (s *ProjectService) UpdateProject(ownerID, id uint64, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.projectRepo.FindOwned(ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrNameRequired
		}
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Status != nil {
		project.Status = *input.Status
	}
	if input.StartDate != nil {
		project.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		project.EndDate = input.EndDate
	}
	if input.Budget != nil {
		project.Budget = input.Budget
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.activities.Record(ownerID, models.ActivityTypeEdit,
		fmt.Sprintf("Updated project %q", project.Name), &project.ID)

	return project, nil
}

// DeleteProject deletes an owned project, then clears the project reference
// on every task pointing at it. The tasks themselves survive. The two steps
// are sequential, not one transaction; a crash in between leaves dangling
// references rather than lost tasks.
func (s *ProjectService) DeleteProject(ownerID, id uint64) error {
	project, err := s.projectRepo.FindOwned(ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	if err := s.projectRepo.Delete(ownerID, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	if err := s.taskRepo.DetachProject(id); err != nil {
		return fmt.Errorf("failed to detach tasks from project: %w", err)
	}

	s.activities.Record(ownerID, models.ActivityTypeDelete,
		fmt.Sprintf("Deleted project %q", project.Name), nil)

	return nil
}
