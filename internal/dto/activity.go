package dto

import (
	"time"

	"gorm.io/datatypes"

	"taskhub/internal/models"
)

// ActivityTaskDTO is the minimal task reference embedded in a feed entry.
type ActivityTaskDTO struct {
	ID    uint64 `json:"id"`
	Title string `json:"title"`
}

// ActivityDTO represents an audit log entry in the activity feed.
type ActivityDTO struct {
	ID        uint64                `json:"id"`
	User      *UserDTO              `json:"user,omitempty"`
	Action    models.ActivityAction `json:"action"`
	ProjectID *uint64               `json:"project_id"`
	Project   *TaskProjectDTO       `json:"project,omitempty"`
	TaskID    *uint64               `json:"task_id"`
	Task      *ActivityTaskDTO      `json:"task,omitempty"`
	Details   string                `json:"details"`
	Metadata  datatypes.JSONMap     `json:"metadata,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
}

// ToActivityDTO converts an Activity model to ActivityDTO. References to
// since-deleted projects or tasks keep their IDs but resolve to nothing.
func ToActivityDTO(activity models.Activity) ActivityDTO {
	dto := ActivityDTO{
		ID:        activity.ID,
		Action:    activity.Action,
		ProjectID: activity.ProjectID,
		TaskID:    activity.TaskID,
		Details:   activity.Details,
		Metadata:  activity.Metadata,
		CreatedAt: activity.CreatedAt,
	}

	if activity.User.ID != 0 {
		user := ToUserDTO(activity.User)
		dto.User = &user
	}
	if activity.Project != nil && activity.Project.ID != 0 {
		dto.Project = &TaskProjectDTO{ID: activity.Project.ID, Name: activity.Project.Name}
	}
	if activity.Task != nil && activity.Task.ID != 0 {
		dto.Task = &ActivityTaskDTO{ID: activity.Task.ID, Title: activity.Task.Title}
	}

	return dto
}

// ToActivityDTOs converts a slice of activities.
func ToActivityDTOs(activities []models.Activity) []ActivityDTO {
	dtos := make([]ActivityDTO, len(activities))
	for i, a := range activities {
		dtos[i] = ToActivityDTO(a)
	}
	return dtos
}
