package services

import (
	"fmt"

	"gorm.io/datatypes"

	"taskhub/internal/constants"
	"taskhub/internal/models"
	"taskhub/internal/repository"
)

// ActivityService appends audit records and serves the activity feed.
type ActivityService struct {
	activityRepo repository.ActivityRepository
	projectRepo  repository.ProjectRepository
}

// NewActivityService creates a new ActivityService.
func NewActivityService(activityRepo repository.ActivityRepository, projectRepo repository.ProjectRepository) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		projectRepo:  projectRepo,
	}
}

// LogInput describes one mutation for the audit log.
type LogInput struct {
	ActorID   uint64
	Action    models.ActivityAction
	ProjectID *uint64
	TaskID    *uint64
	Details   string
	Metadata  datatypes.JSONMap
}

// Log appends exactly one activity record. It runs synchronously after the
// mutation commits; a failure here fails the surrounding request.
func (s *ActivityService) Log(input LogInput) error {
	activity := &models.Activity{
		UserID:    input.ActorID,
		Action:    input.Action,
		ProjectID: input.ProjectID,
		TaskID:    input.TaskID,
		Details:   input.Details,
		Metadata:  input.Metadata,
	}

	if err := s.activityRepo.Create(activity); err != nil {
		return fmt.Errorf("failed to log activity: %w", err)
	}
	return nil
}

// FeedInput selects activity feed entries for one caller.
type FeedInput struct {
	UserID    uint64
	ProjectID *uint64
	Limit     int
}

// Feed returns the most recent activity entries. With a project filter the
// feed is that project's history; otherwise it is the union of entries tied
// to the caller's visible projects and entries the caller authored.
func (s *ActivityService) Feed(input FeedInput) ([]models.Activity, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = constants.DefaultActivityLimit
	}
	if limit > constants.MaxActivityLimit {
		limit = constants.MaxActivityLimit
	}

	filter := repository.ActivityFilter{
		ProjectID: input.ProjectID,
		ActorID:   input.UserID,
		Limit:     limit,
	}

	if input.ProjectID == nil {
		visible, err := s.projectRepo.VisibleIDs(input.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve visible projects: %w", err)
		}
		filter.VisibleProjectIDs = visible
	}

	activities, err := s.activityRepo.ListFeed(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	return activities, nil
}
