package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"marketplace-backend/internal/attachment"
	"marketplace-backend/internal/domains/user"
	"marketplace-backend/internal/shared/middleware"
	"marketplace-backend/internal/shared/response"
	"marketplace-backend/pkg/logger"
)

// UserHandler handles HTTP requests for the user domain
type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// Register handles POST /auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	dto, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Registration successful, please login", gin.H{
		"user": dto,
	})
}

// Login handles POST /auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", gin.H{
		"token": resp.Token,
		"user":  resp.User,
	})
}

// UpdateUser handles PUT /auth/update-user
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req user.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	dto, err := h.service.UpdateUser(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated, please login", gin.H{
		"updatedUser": dto,
	})
}

// PatchUser handles PATCH /auth/patch-user
func (h *UserHandler) PatchUser(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req user.PatchUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	dto, err := h.service.PatchUser(c.Request.Context(), userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User details updated", gin.H{
		"user": dto,
	})
}

// UpdatePassword handles PUT /auth/password-update
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	var req user.PasswordUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := h.service.UpdatePassword(c.Request.Context(), req); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Password reset successfully", nil)
}

// UpdateProfilePicture handles PUT /auth/profile-picture-update/:id
func (h *UserHandler) UpdateProfilePicture(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user ID format")
		return
	}

	file, err := readSingleFile(c)
	if err != nil {
		response.BadRequest(c, "please upload a profile picture")
		return
	}

	dto, err := h.service.UpdateProfilePicture(c.Request.Context(), userID, file)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Profile picture updated successfully", gin.H{
		"user": dto,
	})
}

func readSingleFile(c *gin.Context) (attachment.File, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return attachment.File{}, err
	}

	f, err := fh.Open()
	if err != nil {
		return attachment.File{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return attachment.File{}, err
	}

	return attachment.File{Name: fh.Filename, Data: data}, nil
}

// handleError maps domain errors to HTTP status codes
func (h *UserHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	switch {
	case errors.As(err, &vErrs):
		response.BadRequest(c, err.Error())
	case errors.Is(err, user.ErrEmailAlreadyExists):
		response.Conflict(c, err.Error())
	case errors.Is(err, user.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, user.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, user.ErrSamePassword):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("user handler error", err)
		response.InternalServerError(c, "something went wrong", err)
	}
}
