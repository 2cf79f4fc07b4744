package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"marketplace-backend/internal/attachment"
	"marketplace-backend/internal/domains/user"
	"marketplace-backend/pkg/jwt"
)

// profilePicMaxDim bounds the longest side of a stored profile picture
const profilePicMaxDim = 512

// Normalizer resizes oversized images before upload
type Normalizer interface {
	Normalize(data []byte, maxDim int) ([]byte, error)
}

type userService struct {
	repo        user.Repository
	jwtManager  *jwt.Manager
	attachments *attachment.Manager
	normalizer  Normalizer
}

func NewUserService(repo user.Repository, jwtManager *jwt.Manager, attachments *attachment.Manager, normalizer Normalizer) user.Service {
	return &userService{
		repo:        repo,
		jwtManager:  jwtManager,
		attachments: attachments,
		normalizer:  normalizer,
	}
}

func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, user.ErrEmailAlreadyExists
	}

	// bcrypt cost 12
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	newUser := &user.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	dto := newUser.ToDTO()
	return &dto, nil
}

func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		// Do not reveal whether the email exists
		return nil, user.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateToken(u.ID.String(), u.Email)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &user.LoginResponse{
		Token: token,
		User:  u.ToDTO(),
	}, nil
}

func (s *userService) UpdateUser(ctx context.Context, req user.UpdateUserRequest) (*user.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		u.Name = req.Name
	}
	if req.Password != "" {
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = string(passwordHash)
	}
	u.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	dto := u.ToDTO()
	return &dto, nil
}

func (s *userService) PatchUser(ctx context.Context, userID uuid.UUID, req user.PatchUserRequest) (*user.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != u.Email {
		exists, err := s.repo.ExistsByEmail(ctx, *req.Email)
		if err != nil {
			return nil, fmt.Errorf("check email exists: %w", err)
		}
		if exists {
			return nil, user.ErrEmailAlreadyExists
		}
		u.Email = *req.Email
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.ProfilePic != nil {
		if u.ProfilePic != nil && u.ProfilePic.PublicID != req.ProfilePic.PublicID {
			s.attachments.PurgeAll(ctx, []attachment.ImageRef{*u.ProfilePic})
		}
		u.ProfilePic = req.ProfilePic
	}
	u.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	dto := u.ToDTO()
	return &dto, nil
}

func (s *userService) UpdatePassword(ctx context.Context, req user.PasswordUpdateRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return err
	}

	// Reject a reset to the current password
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.NewPassword)) == nil {
		return user.ErrSamePassword
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), 12)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = string(passwordHash)
	u.UpdatedAt = time.Now()

	return s.repo.Update(ctx, u)
}

func (s *userService) UpdateProfilePicture(ctx context.Context, userID uuid.UUID, file attachment.File) (*user.UserDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	normalized, err := s.normalizer.Normalize(file.Data, profilePicMaxDim)
	if err != nil {
		return nil, fmt.Errorf("normalize profile picture: %w", err)
	}
	file.Data = normalized

	prefix := fmt.Sprintf("users/%s", u.ID)
	ref, err := s.attachments.AttachOne(ctx, prefix, file, u.ProfilePic)
	if err != nil {
		return nil, fmt.Errorf("upload profile picture: %w", err)
	}

	u.ProfilePic = &ref
	u.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	dto := u.ToDTO()
	return &dto, nil
}
