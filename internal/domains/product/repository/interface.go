package repository

import (
	"context"

	"github.com/google/uuid"

	"marketplace-backend/internal/attachment"
	"marketplace-backend/internal/domains/product/model"
)

// ProductRepository is the product data access contract
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context, keyword string, categoryID *uuid.UUID) ([]model.Product, error)
	Top(ctx context.Context, limit int) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	UpdateImages(ctx context.Context, id uuid.UUID, images []attachment.ImageRef) error
	Delete(ctx context.Context, id uuid.UUID) error
	Approve(ctx context.Context, id uuid.UUID) error
	Boost(ctx context.Context, id uuid.UUID, amount int) (*model.Product, error)

	// Reviews: owned sub-collection of products
	GetReviews(ctx context.Context, productID uuid.UUID) ([]model.Review, error)
	// AddReviewWithAggregate appends the review and writes the recomputed
	// aggregate in a single transaction, serialized per product.
	AddReviewWithAggregate(ctx context.Context, review *model.Review) error
}
