package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"taskhub/internal/constants"
	"taskhub/internal/models"
	"taskhub/internal/repository"
)

var (
	ErrTaskNotFound        = errors.New("Task not found")
	ErrTaskTitleTooShort   = errors.New("Task title must be at least 2 characters")
	ErrTaskTitleTooLong    = errors.New("Task title must be less than 200 characters")
	ErrTaskDescTooLong     = errors.New("Description must be less than 2000 characters")
	ErrInvalidPriority     = errors.New("Invalid priority")
	ErrInvalidStatus       = errors.New("Invalid status")
	ErrProjectAccessDenied = errors.New("Access denied")
)

// Relations loaded for task responses.
var taskPreloads = []string{"Project", "Assignee", "Creator"}

// TaskService owns task mutations, their access rules, and the activity
// classification for updates.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	activities  *ActivityService
	aiService   *AIService
}

// NewTaskService creates a new TaskService. aiService may be nil when no API
// key is configured.
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, activities *ActivityService, aiService *AIService) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		activities:  activities,
		aiService:   aiService,
	}
}

// ListTasksInput represents filters for listing tasks.
type ListTasksInput struct {
	UserID     uint64
	ProjectID  *uint64
	Status     *models.TaskStatus
	Priority   *models.TaskPriority
	AssigneeID *uint64
}

// List returns tasks across the caller's visible projects, newest first.
// A project filter outside the visible set is rejected.
func (s *TaskService) List(input ListTasksInput) ([]models.Task, error) {
	var projectIDs []uint64
	if input.ProjectID != nil {
		project, err := s.projectRepo.FindByID(*input.ProjectID, "Members")
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProjectNotFound
			}
			return nil, fmt.Errorf("failed to find project: %w", err)
		}
		if !project.IsMemberOrOwner(input.UserID) {
			return nil, ErrProjectAccessDenied
		}
		projectIDs = []uint64{project.ID}
	} else {
		visible, err := s.projectRepo.VisibleIDs(input.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve visible projects: %w", err)
		}
		if len(visible) == 0 {
			return []models.Task{}, nil
		}
		projectIDs = visible
	}

	tasks, err := s.taskRepo.List(repository.TaskFilter{
		ProjectIDs: projectIDs,
		Status:     input.Status,
		Priority:   input.Priority,
		AssigneeID: input.AssigneeID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	Title       string
	Description string
	ProjectID   uint64
	AssigneeID  *uint64
	Priority    models.TaskPriority
	Status      models.TaskStatus
	DueDate     *time.Time
	CreatorID   uint64
}

// Create creates a task after verifying the parent project exists and the
// caller is its owner or a member. The assignee is not required to be a
// project member; that gap is accepted behavior.
func (s *TaskService) Create(input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if err := validateTaskFields(title, input.Description); err != nil {
		return nil, err
	}

	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}
	if input.Status == "" {
		input.Status = models.TaskStatusTodo
	}
	if !models.ValidTaskPriority(input.Priority) {
		return nil, ErrInvalidPriority
	}
	if !models.ValidTaskStatus(input.Status) {
		return nil, ErrInvalidStatus
	}

	project, err := s.projectRepo.FindByID(input.ProjectID, "Members")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if !project.IsMemberOrOwner(input.CreatorID) {
		return nil, ErrProjectAccessDenied
	}

	task := &models.Task{
		Title:       title,
		Description: input.Description,
		ProjectID:   project.ID,
		AssigneeID:  input.AssigneeID,
		Priority:    input.Priority,
		Status:      input.Status,
		DueDate:     input.DueDate,
		CreatorID:   input.CreatorID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	err = s.activities.Log(LogInput{
		ActorID:   input.CreatorID,
		Action:    models.ActionTaskCreated,
		ProjectID: &project.ID,
		TaskID:    &task.ID,
		Details:   fmt.Sprintf("Created task %q", task.Title),
	})
	if err != nil {
		return nil, err
	}

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// UpdateTaskInput carries a partial task update.
type UpdateTaskInput struct {
	Title         *string
	Description   *string
	AssigneeID    *uint64
	ClearAssignee bool
	Priority      *models.TaskPriority
	Status        *models.TaskStatus
	DueDate       *time.Time
	ClearDueDate  bool
}

// Update applies a partial update and writes exactly one activity record,
// classified by fixed precedence: a status change wins over an assignment
// change, which wins over a generic update.
func (s *TaskService) Update(task *models.Task, actorID uint64, input UpdateTaskInput) (*models.Task, error) {
	oldStatus := task.Status
	oldTitle := task.Title

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if err := validateTaskFields(title, task.Description); err != nil {
			return nil, err
		}
		task.Title = title
	}
	if input.Description != nil {
		if len(*input.Description) > constants.MaxTaskDescription {
			return nil, ErrTaskDescTooLong
		}
		task.Description = *input.Description
	}
	if input.Priority != nil {
		if !models.ValidTaskPriority(*input.Priority) {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.Status != nil {
		if !models.ValidTaskStatus(*input.Status) {
			return nil, ErrInvalidStatus
		}
		// Any status may move to any other; no workflow ordering
		task.Status = *input.Status
	}
	if input.ClearAssignee {
		task.AssigneeID = nil
	} else if input.AssigneeID != nil {
		task.AssigneeID = input.AssigneeID
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	entry := LogInput{
		ActorID:   actorID,
		ProjectID: &task.ProjectID,
		TaskID:    &task.ID,
	}
	switch {
	case input.Status != nil && *input.Status != oldStatus:
		entry.Action = models.ActionTaskStatusChanged
		entry.Details = fmt.Sprintf("Changed task %q status from %s to %s", oldTitle, oldStatus, *input.Status)
		entry.Metadata = datatypes.JSONMap{
			"oldStatus": string(oldStatus),
			"newStatus": string(*input.Status),
		}
	case input.AssigneeID != nil:
		entry.Action = models.ActionTaskAssigned
		entry.Details = fmt.Sprintf("Assigned task %q", oldTitle)
	default:
		entry.Action = models.ActionTaskUpdated
		entry.Details = fmt.Sprintf("Updated task %q", oldTitle)
	}

	if err := s.activities.Log(entry); err != nil {
		return nil, err
	}

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// Delete removes a task. Only the project owner or the task's creator may
// delete; this is narrower than update access.
func (s *TaskService) Delete(task *models.Task, project *models.Project, actorID uint64) error {
	if project.OwnerID != actorID && task.CreatorID != actorID {
		return ErrProjectAccessDenied
	}

	title := task.Title
	projectID := task.ProjectID

	if err := s.taskRepo.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return s.activities.Log(LogInput{
		ActorID:   actorID,
		Action:    models.ActionTaskDeleted,
		ProjectID: &projectID,
		Details:   fmt.Sprintf("Deleted task %q", title),
	})
}

func validateTaskFields(title, description string) error {
	if len(title) < constants.MinTaskTitleLength {
		return ErrTaskTitleTooShort
	}
	if len(title) > constants.MaxTaskTitleLength {
		return ErrTaskTitleTooLong
	}
	if len(description) > constants.MaxTaskDescription {
		return ErrTaskDescTooLong
	}
	return nil
}
