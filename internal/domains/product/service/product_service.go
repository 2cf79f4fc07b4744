package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"marketplace-backend/internal/attachment"
	"marketplace-backend/internal/domains/product/model"
	"marketplace-backend/internal/domains/product/repository"
	"marketplace-backend/internal/domains/user"
	"marketplace-backend/pkg/cache"
	"marketplace-backend/pkg/logger"
)

const (
	topProductsLimit    = 4
	topProductsCacheKey = "products:top"
	topProductsCacheTTL = 5 * time.Minute
)

type productService struct {
	repo        repository.ProductRepository
	userRepo    user.Repository
	attachments *attachment.Manager
	cache       cache.Cache
}

func NewProductService(
	repo repository.ProductRepository,
	userRepo user.Repository,
	attachments *attachment.Manager,
	cache cache.Cache,
) ServiceInterface {
	return &productService{
		repo:        repo,
		userRepo:    userRepo,
		attachments: attachments,
		cache:       cache,
	}
}

func (s *productService) Create(ctx context.Context, req model.CreateProductRequest, files []attachment.File) (*model.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, attachment.ErrNoFiles
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return nil, model.ErrInvalidPrice
	}
	if price.IsNegative() {
		return nil, model.ErrInvalidPrice
	}
	if *req.Stock < 0 {
		return nil, model.ErrInvalidStock
	}

	var categoryID *uuid.UUID
	if req.CategoryID != "" {
		id, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return nil, model.ErrInvalidCategory
		}
		categoryID = &id
	}

	id := uuid.New()

	// Upload first, persist once with the full list. A mid-batch upload
	// failure aborts the create and can orphan earlier objects in the
	// store; there is no compensating rollback.
	refs, err := s.attachments.AttachMany(ctx, fmt.Sprintf("products/%s", id), files)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	p := &model.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Stock:       *req.Stock,
		CategoryID:  categoryID,
		Images:      refs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.invalidateTop(ctx)
	return p, nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *productService) List(ctx context.Context, keyword, categoryID string) ([]model.Product, error) {
	var catID *uuid.UUID
	if categoryID != "" {
		id, err := uuid.Parse(categoryID)
		if err != nil {
			return nil, model.ErrInvalidCategory
		}
		catID = &id
	}

	return s.repo.List(ctx, keyword, catID)
}

// Top serves the 4 highest rated products, cached briefly in Redis.
// Cache failures fall through to Postgres.
func (s *productService) Top(ctx context.Context) ([]model.Product, error) {
	var cached []model.Product
	found, err := s.cache.Get(ctx, topProductsCacheKey, &cached)
	if err != nil {
		logger.Warn("top products cache read failed", map[string]interface{}{"error": err.Error()})
	}
	if found {
		return cached, nil
	}

	products, err := s.repo.Top(ctx, topProductsLimit)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, topProductsCacheKey, products, topProductsCacheTTL); err != nil {
		logger.Warn("top products cache write failed", map[string]interface{}{"error": err.Error()})
	}

	return products, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req model.UpdateProductRequest) (*model.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		price, err := decimal.NewFromString(*req.Price)
		if err != nil || price.IsNegative() {
			return nil, model.ErrInvalidPrice
		}
		p.Price = price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, model.ErrInvalidStock
		}
		p.Stock = *req.Stock
	}
	if req.CategoryID != nil {
		catID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, model.ErrInvalidCategory
		}
		p.CategoryID = &catID
	}
	p.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.invalidateTop(ctx)
	return p, nil
}

// Delete purges every remote image best-effort, then removes the row.
// Deletion always proceeds past destroy failures.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	s.attachments.PurgeAll(ctx, p.Images)

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateTop(ctx)
	return nil
}

func (s *productService) AddImages(ctx context.Context, id uuid.UUID, files []attachment.File) (*model.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	refs, err := s.attachments.AttachMany(ctx, fmt.Sprintf("products/%s", p.ID), files)
	if err != nil {
		return nil, err
	}

	p.Images = append(p.Images, refs...)
	if err := s.repo.UpdateImages(ctx, p.ID, p.Images); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *productService) RemoveImageByID(ctx context.Context, id uuid.UUID, publicID string) (*model.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	images, err := s.attachments.RemoveByID(ctx, p.Images, publicID)
	if err != nil {
		return nil, err
	}

	p.Images = images
	if err := s.repo.UpdateImages(ctx, p.ID, p.Images); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *productService) RemoveImageByIndex(ctx context.Context, id uuid.UUID, index int) (*model.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	images, err := s.attachments.RemoveByIndex(ctx, p.Images, index)
	if err != nil {
		return nil, err
	}

	p.Images = images
	if err := s.repo.UpdateImages(ctx, p.ID, p.Images); err != nil {
		return nil, err
	}

	return p, nil
}

// AddReview appends one review per user; the append and the recomputed
// aggregate land in one transaction keyed on the product row, so a missing
// product and a duplicate reviewer both surface from the same call.
func (s *productService) AddReview(ctx context.Context, productID, userID uuid.UUID, req model.ReviewRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	reviewer, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	review := model.Review{
		ID:        uuid.New(),
		ProductID: productID,
		UserID:    reviewer.ID,
		Name:      reviewer.Name,
		Rating:    *req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
	}

	if err := s.repo.AddReviewWithAggregate(ctx, &review); err != nil {
		return err
	}

	s.invalidateTop(ctx)
	return nil
}

func (s *productService) Approve(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.IsApproved {
		return nil, model.ErrAlreadyApproved
	}

	if err := s.repo.Approve(ctx, id); err != nil {
		return nil, err
	}

	p.IsApproved = true
	return p, nil
}

func (s *productService) Boost(ctx context.Context, req model.BoostRequest) (*model.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("invalid product id: %w", err)
	}

	return s.repo.Boost(ctx, id, req.BoostAmount)
}

func (s *productService) invalidateTop(ctx context.Context) {
	if err := s.cache.Delete(ctx, topProductsCacheKey); err != nil {
		logger.Warn("top products cache invalidation failed", map[string]interface{}{"error": err.Error()})
	}
}
