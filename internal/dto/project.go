package dto

import (
	"time"

	"taskhub/internal/models"
	"taskhub/internal/repository"
)

// ProjectDTO represents a project in API responses.
type ProjectDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     uint64    `json:"owner_id"`
	Owner       *UserDTO  `json:"owner,omitempty"`
	Members     []UserDTO `json:"members"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProjectDetailDTO is the fetch-by-id response: the project plus computed
// task counts and whether the caller owns it.
type ProjectDetailDTO struct {
	Project    ProjectDTO            `json:"project"`
	TaskCounts repository.TaskCounts `json:"task_counts"`
	IsOwner    bool                  `json:"is_owner"`
}

// ToProjectDTO converts a Project model to ProjectDTO.
func ToProjectDTO(project models.Project) ProjectDTO {
	dto := ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		OwnerID:     project.OwnerID,
		Members:     make([]UserDTO, 0, len(project.Members)),
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}

	// Include owner if preloaded
	if project.Owner.ID != 0 {
		owner := ToUserDTO(project.Owner)
		dto.Owner = &owner
	}

	for _, m := range project.Members {
		if m.User.ID != 0 {
			dto.Members = append(dto.Members, ToUserDTO(m.User))
		}
	}

	return dto
}

// ToProjectDTOs converts a slice of projects.
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		dtos[i] = ToProjectDTO(p)
	}
	return dtos
}
