package service

import (
	"context"

	"github.com/google/uuid"

	"marketplace-backend/internal/attachment"
	"marketplace-backend/internal/domains/product/model"
)

// ServiceInterface is the product business logic contract
type ServiceInterface interface {
	Create(ctx context.Context, req model.CreateProductRequest, files []attachment.File) (*model.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context, keyword, categoryID string) ([]model.Product, error)
	Top(ctx context.Context) ([]model.Product, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateProductRequest) (*model.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AddImages(ctx context.Context, id uuid.UUID, files []attachment.File) (*model.Product, error)
	RemoveImageByID(ctx context.Context, id uuid.UUID, publicID string) (*model.Product, error)
	RemoveImageByIndex(ctx context.Context, id uuid.UUID, index int) (*model.Product, error)

	AddReview(ctx context.Context, productID, userID uuid.UUID, req model.ReviewRequest) error
	Approve(ctx context.Context, id uuid.UUID) (*model.Product, error)
	Boost(ctx context.Context, req model.BoostRequest) (*model.Product, error)
}
