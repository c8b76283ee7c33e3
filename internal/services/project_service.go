package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"taskhub/internal/constants"
	"taskhub/internal/models"
	"taskhub/internal/repository"
)

var (
	ErrProjectNotFound     = errors.New("Project not found")
	ErrProjectNameTooShort = errors.New("Project name must be at least 2 characters")
	ErrProjectNameTooLong  = errors.New("Project name must be less than 100 characters")
	ErrProjectDescTooLong  = errors.New("Description must be less than 500 characters")
	ErrMemberEmailRequired = errors.New("Email is required")
	ErrMemberExists        = errors.New("User is already a member")
	ErrOwnerAsMember       = errors.New("Owner is already part of the project")
	ErrMemberNotFound      = errors.New("Member not found")
)

// Relations loaded for project responses.
var projectPreloads = []string{"Owner", "Members.User"}

// ProjectService owns project mutations and their access rules. Every
// successful mutation appends one activity record.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	userRepo    repository.UserRepository
	activities  *ActivityService
}

// NewProjectService creates a new ProjectService.
func NewProjectService(
	projectRepo repository.ProjectRepository,
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	activities *ActivityService,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		userRepo:    userRepo,
		activities:  activities,
	}
}

// List returns the caller's visible projects, most recently updated first.
func (s *ProjectService) List(userID uint64) ([]models.Project, error) {
	projects, err := s.projectRepo.ListVisible(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	Name        string
	Description string
	OwnerID     uint64
}

// Create creates a project owned by the caller, with no members.
func (s *ProjectService) Create(input CreateProjectInput) (*models.Project, error) {
	name := strings.TrimSpace(input.Name)
	if err := validateProjectFields(name, input.Description); err != nil {
		return nil, err
	}

	project := &models.Project{
		Name:        name,
		Description: input.Description,
		OwnerID:     input.OwnerID,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	err := s.activities.Log(LogInput{
		ActorID:   input.OwnerID,
		Action:    models.ActionProjectCreated,
		ProjectID: &project.ID,
		Details:   fmt.Sprintf("Created project %q", project.Name),
	})
	if err != nil {
		return nil, err
	}

	return s.projectRepo.FindByID(project.ID, projectPreloads...)
}

// Get reloads a project with owner and members for a detail response.
func (s *ProjectService) Get(projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID, projectPreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// TaskCounts returns the project's task totals grouped by status.
func (s *ProjectService) TaskCounts(projectID uint64) (repository.TaskCounts, error) {
	counts, err := s.taskRepo.CountByStatus(projectID)
	if err != nil {
		return repository.TaskCounts{}, fmt.Errorf("failed to count tasks: %w", err)
	}
	return counts, nil
}

// UpdateProjectInput carries a partial project update.
type UpdateProjectInput struct {
	Name        *string
	Description *string
}

// Update applies a partial update to name and description. Caller must
// already be verified as the owner.
func (s *ProjectService) Update(project *models.Project, actorID uint64, input UpdateProjectInput) (*models.Project, error) {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if err := validateProjectFields(name, project.Description); err != nil {
			return nil, err
		}
		project.Name = name
	}
	if input.Description != nil {
		if len(*input.Description) > constants.MaxProjectDescription {
			return nil, ErrProjectDescTooLong
		}
		project.Description = *input.Description
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	err := s.activities.Log(LogInput{
		ActorID:   actorID,
		Action:    models.ActionProjectUpdated,
		ProjectID: &project.ID,
		Details:   fmt.Sprintf("Updated project %q", project.Name),
	})
	if err != nil {
		return nil, err
	}

	return s.projectRepo.FindByID(project.ID, projectPreloads...)
}

// Delete removes a project together with its tasks and member rows. The
// activity record deliberately carries no project reference; earlier records
// keep their now-dangling one as audit history.
func (s *ProjectService) Delete(project *models.Project, actorID uint64) error {
	name := project.Name

	if err := s.projectRepo.Delete(project.ID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return s.activities.Log(LogInput{
		ActorID: actorID,
		Action:  models.ActionProjectDeleted,
		Details: fmt.Sprintf("Deleted project %q", name),
	})
}

// AddMemberByEmail invites a user to the project. The target must exist,
// must not be the owner, and must not already be a member.
func (s *ProjectService) AddMemberByEmail(project *models.Project, actorID uint64, email string) (*models.Project, error) {
	if strings.TrimSpace(email) == "" {
		return nil, ErrMemberEmailRequired
	}

	target, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if target.ID == project.OwnerID {
		return nil, ErrOwnerAsMember
	}

	isMember, err := s.projectRepo.IsMember(project.ID, target.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}
	if isMember {
		return nil, ErrMemberExists
	}

	member := &models.ProjectMember{
		ProjectID: project.ID,
		UserID:    target.ID,
		AddedAt:   time.Now(),
	}
	if err := s.projectRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	err = s.activities.Log(LogInput{
		ActorID:   actorID,
		Action:    models.ActionMemberAdded,
		ProjectID: &project.ID,
		Details:   fmt.Sprintf("Added %q to project %q", target.Name, project.Name),
	})
	if err != nil {
		return nil, err
	}

	return s.projectRepo.FindByID(project.ID, projectPreloads...)
}

// RemoveMember removes a member row by user ID.
func (s *ProjectService) RemoveMember(project *models.Project, actorID, targetID uint64) (*models.Project, error) {
	isMember, err := s.projectRepo.IsMember(project.ID, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}
	if !isMember {
		return nil, ErrMemberNotFound
	}

	if err := s.projectRepo.RemoveMember(project.ID, targetID); err != nil {
		return nil, fmt.Errorf("failed to remove member: %w", err)
	}

	err = s.activities.Log(LogInput{
		ActorID:   actorID,
		Action:    models.ActionMemberRemoved,
		ProjectID: &project.ID,
		Details:   fmt.Sprintf("Removed a member from project %q", project.Name),
	})
	if err != nil {
		return nil, err
	}

	return s.projectRepo.FindByID(project.ID, projectPreloads...)
}

func validateProjectFields(name, description string) error {
	if len(name) < constants.MinProjectNameLength {
		return ErrProjectNameTooShort
	}
	if len(name) > constants.MaxProjectNameLength {
		return ErrProjectNameTooLong
	}
	if len(description) > constants.MaxProjectDescription {
		return ErrProjectDescTooLong
	}
	return nil
}
