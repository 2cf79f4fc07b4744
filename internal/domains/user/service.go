package user

import (
	"context"

	"github.com/google/uuid"

	"marketplace-backend/internal/attachment"
)

// Service is the user business logic contract
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*UserDTO, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	UpdateUser(ctx context.Context, req UpdateUserRequest) (*UserDTO, error)
	PatchUser(ctx context.Context, userID uuid.UUID, req PatchUserRequest) (*UserDTO, error)
	UpdatePassword(ctx context.Context, req PasswordUpdateRequest) error
	UpdateProfilePicture(ctx context.Context, userID uuid.UUID, file attachment.File) (*UserDTO, error)
}
