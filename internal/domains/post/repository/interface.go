package repository

import (
	"context"

	"github.com/google/uuid"

	"marketplace-backend/internal/attachment"
	"marketplace-backend/internal/domains/post/model"
)

// PostRepository is the post data access contract
type PostRepository interface {
	Create(ctx context.Context, p *model.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	GetAll(ctx context.Context) ([]model.Post, error)
	GetByUser(ctx context.Context, userID uuid.UUID) ([]model.Post, error)
	Update(ctx context.Context, p *model.Post) error
	UpdateImages(ctx context.Context, id uuid.UUID, images []attachment.ImageRef) error
	Delete(ctx context.Context, id uuid.UUID) error
}
