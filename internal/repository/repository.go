package repository

import (
	"github.com/buildly/construction-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by (lowercased) email
	FindByEmail(email string) (*models.User, error)

	// ExistsByUsernameOrEmail reports whether any user already holds the
	// given username or email
	ExistsByUsernameOrEmail(username, email string) (bool, error)
}

// ProjectRepository defines the interface for project data access.
// Every lookup that takes an ownerID combines the existence and ownership
// checks: a project owned by someone else behaves like a missing one.
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindOwned finds a project by ID scoped to its owner
	FindOwned(ownerID, id uint64) (*models.Project, error)

	// ListByOwner lists a user's projects, most recent first
	ListByOwner(ownerID uint64) ([]models.Project, error)

	// Update updates a project
	Update(project *models.Project) error

	// Delete removes a project scoped to its owner
	Delete(ownerID, id uint64) error
}

// TaskRepository defines the interface for task data access, scoped to the
// task's creator under the same combined existence/ownership rule.
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindOwned finds a task by ID scoped to its creator
	FindOwned(creatorID, id uint64) (*models.Task, error)

	// ListByCreator lists a user's tasks with the referenced project
	// preloaded, most recent first
	ListByCreator(creatorID uint64) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete removes a task scoped to its creator
	Delete(creatorID, id uint64) error

	// DetachProject clears the project reference on every task pointing at
	// the given project
	DetachProject(projectID uint64) error
}

// ActivityRepository defines the interface for the append-only activity log
type ActivityRepository interface {
	// Create appends an activity entry
	Create(activity *models.Activity) error

	// ListByUser lists a user's activities, most recent first, capped at limit
	ListByUser(userID uint64, limit int) ([]models.Activity, error)

	// DeleteByUser removes all of a user's activities
	DeleteByUser(userID uint64) error
}
