package category

import (
	"context"
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Category names a product grouping; products reference it by id
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
)

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

func (r CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error("category name is required")),
	)
}

// Repository is the category data access contract
type Repository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	GetAll(ctx context.Context) ([]Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service is the category business logic contract
type Service interface {
	Create(ctx context.Context, req CreateCategoryRequest) (*Category, error)
	Get(ctx context.Context, id uuid.UUID) (*Category, error)
	GetAll(ctx context.Context) ([]Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
