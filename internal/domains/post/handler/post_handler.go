package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"marketplace-backend/internal/attachment"
	"marketplace-backend/internal/domains/post/model"
	"marketplace-backend/internal/domains/post/service"
	"marketplace-backend/internal/shared/middleware"
	"marketplace-backend/internal/shared/response"
	"marketplace-backend/pkg/logger"
)

// PostHandler handles HTTP requests for the post domain
type PostHandler struct {
	service service.ServiceInterface
}

func NewPostHandler(service service.ServiceInterface) *PostHandler {
	return &PostHandler{service: service}
}

// Create handles POST /post/create-post
func (h *PostHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req model.CreatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	files, err := readFiles(c)
	if err != nil || len(files) == 0 {
		response.BadRequest(c, "please upload at least one image")
		return
	}

	p, err := h.service.Create(c.Request.Context(), userID, req, files)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Post created successfully", gin.H{
		"post": p,
	})
}

// GetAll handles GET /post/get-all-post
func (h *PostHandler) GetAll(c *gin.Context) {
	posts, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Posts fetched successfully", gin.H{
		"posts": posts,
	})
}

// GetUserPosts handles GET /post/get-user-post
func (h *PostHandler) GetUserPosts(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	posts, err := h.service.GetByUser(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User posts fetched successfully", gin.H{
		"posts": posts,
	})
}

// Update handles PUT /post/update-post/:id
func (h *PostHandler) Update(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post ID format")
		return
	}

	var req model.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	p, err := h.service.Update(c.Request.Context(), id, userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Post updated successfully", gin.H{
		"post": p,
	})
}

// Delete handles DELETE /post/delete-post/:id
func (h *PostHandler) Delete(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post ID format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, userID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Post deleted successfully", nil)
}

// AddImages handles PATCH /post/add-post-images/:id
func (h *PostHandler) AddImages(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post ID format")
		return
	}

	files, err := readFiles(c)
	if err != nil || len(files) == 0 {
		response.BadRequest(c, "please upload at least one image")
		return
	}

	p, err := h.service.AddImages(c.Request.Context(), id, userID, files)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Images added successfully", gin.H{
		"post": p,
	})
}

// RemoveImage handles DELETE /post/delete-post-image/:id/*imageId.
// The image id is the storage key and contains slashes, hence the
// wildcard segment.
func (h *PostHandler) RemoveImage(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post ID format")
		return
	}

	publicID := strings.TrimPrefix(c.Param("imageId"), "/")
	if publicID == "" {
		response.BadRequest(c, "image id is required")
		return
	}

	p, err := h.service.RemoveImage(c.Request.Context(), id, userID, publicID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Image removed successfully", gin.H{
		"post": p,
	})
}

// readFiles decodes every part under the "files" multipart field
func readFiles(c *gin.Context) ([]attachment.File, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}

	headers := form.File["files"]
	files := make([]attachment.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}

		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}

		files = append(files, attachment.File{Name: fh.Filename, Data: data})
	}

	return files, nil
}

// handleError maps domain errors to HTTP status codes
func (h *PostHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	switch {
	case errors.As(err, &vErrs):
		response.BadRequest(c, err.Error())
	case errors.Is(err, model.ErrPostNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, model.ErrNotPostOwner):
		response.Error(c, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, attachment.ErrNoFiles):
		response.BadRequest(c, err.Error())
	case errors.Is(err, attachment.ErrImageNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("post handler error", err)
		response.InternalServerError(c, "something went wrong", err)
	}
}
