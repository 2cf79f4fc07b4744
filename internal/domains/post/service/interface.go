package service

import (
	"context"

	"github.com/google/uuid"

	"marketplace-backend/internal/attachment"
	"marketplace-backend/internal/domains/post/model"
)

// ServiceInterface is the post business logic contract.
// Mutations take the caller's user id and enforce ownership.
type ServiceInterface interface {
	Create(ctx context.Context, userID uuid.UUID, req model.CreatePostRequest, files []attachment.File) (*model.Post, error)
	GetAll(ctx context.Context) ([]model.Post, error)
	GetByUser(ctx context.Context, userID uuid.UUID) ([]model.Post, error)
	Update(ctx context.Context, id, userID uuid.UUID, req model.UpdatePostRequest) (*model.Post, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	AddImages(ctx context.Context, id, userID uuid.UUID, files []attachment.File) (*model.Post, error)
	RemoveImage(ctx context.Context, id, userID uuid.UUID, publicID string) (*model.Post, error)
}
