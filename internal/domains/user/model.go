package user

import (
	"time"

	"github.com/google/uuid"

	"marketplace-backend/internal/attachment"
)

// User entity
type User struct {
	ID           uuid.UUID            `json:"id"`
	Name         string               `json:"name"`
	Email        string               `json:"email"`
	PasswordHash string               `json:"-"`
	ProfilePic   *attachment.ImageRef `json:"profilePic,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// UserDTO is the wire representation; password hash never leaves the service
type UserDTO struct {
	ID         uuid.UUID            `json:"id"`
	Name       string               `json:"name"`
	Email      string               `json:"email"`
	ProfilePic *attachment.ImageRef `json:"profilePic,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

func (u *User) ToDTO() UserDTO {
	return UserDTO{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		ProfilePic: u.ProfilePic,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
