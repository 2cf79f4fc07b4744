package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"marketplace-backend/internal/attachment"
	"marketplace-backend/internal/domains/post/model"
	"marketplace-backend/internal/domains/post/repository"
)

type postService struct {
	repo        repository.PostRepository
	attachments *attachment.Manager
}

func NewPostService(repo repository.PostRepository, attachments *attachment.Manager) ServiceInterface {
	return &postService{
		repo:        repo,
		attachments: attachments,
	}
}

func (s *postService) Create(ctx context.Context, userID uuid.UUID, req model.CreatePostRequest, files []attachment.File) (*model.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, attachment.ErrNoFiles
	}

	id := uuid.New()

	refs, err := s.attachments.AttachMany(ctx, fmt.Sprintf("posts/%s", id), files)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	p := &model.Post{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		PostedBy:    userID,
		Images:      refs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

func (s *postService) GetAll(ctx context.Context) ([]model.Post, error) {
	return s.repo.GetAll(ctx)
}

func (s *postService) GetByUser(ctx context.Context, userID uuid.UUID) ([]model.Post, error) {
	return s.repo.GetByUser(ctx, userID)
}

func (s *postService) Update(ctx context.Context, id, userID uuid.UUID, req model.UpdatePostRequest) (*model.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.ownedPost(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	p.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// Delete purges every remote image best-effort, then removes the row
func (s *postService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	p, err := s.ownedPost(ctx, id, userID)
	if err != nil {
		return err
	}

	s.attachments.PurgeAll(ctx, p.Images)

	return s.repo.Delete(ctx, id)
}

func (s *postService) AddImages(ctx context.Context, id, userID uuid.UUID, files []attachment.File) (*model.Post, error) {
	p, err := s.ownedPost(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	refs, err := s.attachments.AttachMany(ctx, fmt.Sprintf("posts/%s", p.ID), files)
	if err != nil {
		return nil, err
	}

	p.Images = append(p.Images, refs...)
	if err := s.repo.UpdateImages(ctx, p.ID, p.Images); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *postService) RemoveImage(ctx context.Context, id, userID uuid.UUID, publicID string) (*model.Post, error) {
	p, err := s.ownedPost(ctx, id, userID)
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

func (s *postService) ownedPost(ctx context.Context, id, userID uuid.UUID) (*model.Post, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.PostedBy != userID {
		return nil, model.ErrNotPostOwner
	}
	return p, nil
}
