package repository

import (
	"taskhub/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// ListVisible lists projects the user owns or is a member of,
	// most recently updated first
	ListVisible(userID uint64) ([]models.Project, error)

	// VisibleIDs returns the IDs of projects the user owns or is a member of
	VisibleIDs(userID uint64) ([]uint64, error)

	// Update updates a project
	Update(project *models.Project) error

	// Delete deletes a project, its tasks, and its member rows in a
	// single transaction. Activity rows referencing the project remain.
	Delete(id uint64) error

	// AddMember adds a member row
	AddMember(member *models.ProjectMember) error

	// RemoveMember removes a member row
	RemoveMember(projectID, userID uint64) error

	// IsMember reports whether a member row exists
	IsMember(projectID, userID uint64) (bool, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	ProjectIDs []uint64
	Status     *models.TaskStatus
	Priority   *models.TaskPriority
	AssigneeID *uint64
}

// TaskCounts groups task totals by status for one project
type TaskCounts struct {
	Todo       int64 `json:"todo"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks matching the filter, newest first
	List(filter TaskFilter) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete deletes a task
	Delete(id uint64) error

	// CountByStatus counts a project's tasks grouped by status
	CountByStatus(projectID uint64) (TaskCounts, error)

	// Stats aggregates task counts across the given projects
	Stats(projectIDs []uint64) (TaskStats, error)
}

// TaskStats holds aggregate counts for the dashboard
type TaskStats struct {
	Total      int64
	Completed  int64
	InProgress int64
	Todo       int64
	ByPriority map[models.TaskPriority]int64
	Upcoming   int64 // due within the next 7 days, not completed
	Overdue    int64 // due before now, not completed
}

// ActivityFilter selects activity feed entries
type ActivityFilter struct {
	// ProjectID, when set, restricts the feed to one project
	ProjectID *uint64

	// VisibleProjectIDs and ActorID form the default scope: entries tied
	// to any visible project, or authored by the actor
	VisibleProjectIDs []uint64
	ActorID           uint64

	Limit int
}

// ActivityRepository defines the interface for the append-only audit log
type ActivityRepository interface {
	// Create appends an activity record
	Create(activity *models.Activity) error

	// ListFeed returns the most recent entries matching the filter,
	// newest first
	ListFeed(filter ActivityFilter) ([]models.Activity, error)
}
