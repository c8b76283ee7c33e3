package dto

import (
	"time"

	"taskhub/internal/models"
)

// UserDTO represents a user in API responses. Password hashes never leave
// the model layer.
type UserDTO struct {
	ID        uint64     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// ToUserDTO converts a User model to UserDTO.
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

// ToCurrentUserDTO is the richer projection for the /me endpoint.
func ToCurrentUserDTO(user models.User) UserDTO {
	dto := ToUserDTO(user)
	createdAt := user.CreatedAt
	dto.CreatedAt = &createdAt
	return dto
}
