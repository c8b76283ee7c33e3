package models

import (
	"time"

	"gorm.io/datatypes"
)

type ActivityAction string

const (
	ActionProjectCreated    ActivityAction = "project_created"
	ActionProjectUpdated    ActivityAction = "project_updated"
	ActionProjectDeleted    ActivityAction = "project_deleted"
	ActionTaskCreated       ActivityAction = "task_created"
	ActionTaskUpdated       ActivityAction = "task_updated"
	ActionTaskDeleted       ActivityAction = "task_deleted"
	ActionTaskStatusChanged ActivityAction = "task_status_changed"
	ActionTaskAssigned      ActivityAction = "task_assigned"
	ActionMemberAdded       ActivityAction = "member_added"
	ActionMemberRemoved     ActivityAction = "member_removed"
)

// Activity is an append-only audit record. Rows are never updated or deleted,
// and they outlive the project or task they reference.
type Activity struct {
	ID        uint64            `gorm:"primarykey" json:"id"`
	UserID    uint64            `gorm:"not null" json:"user_id"`
	Action    ActivityAction    `gorm:"type:varchar(32);not null" json:"action"`
	ProjectID *uint64           `json:"project_id"`
	TaskID    *uint64           `json:"task_id"`
	Details   string            `gorm:"type:varchar(500);not null" json:"details"`
	Metadata  datatypes.JSONMap `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`

	// Relations (references only, no ownership: a deleted project leaves
	// its activity rows behind with a dangling project id)
	User    User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Task    *Task    `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}
