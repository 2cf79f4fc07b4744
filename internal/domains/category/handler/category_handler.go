package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"marketplace-backend/internal/domains/category"
	"marketplace-backend/internal/shared/response"
	"marketplace-backend/pkg/logger"
)

// CategoryHandler handles HTTP requests for the category domain
type CategoryHandler struct {
	service category.Service
}

func NewCategoryHandler(service category.Service) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// Create handles POST /category/create
func (h *CategoryHandler) Create(c *gin.Context) {
	var req category.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	cat, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Category created successfully", gin.H{
		"category": cat,
	})
}

// GetAll handles GET /category/get-all
func (h *CategoryHandler) GetAll(c *gin.Context) {
	categories, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Categories fetched successfully", gin.H{
		"categories": categories,
	})
}

// Get handles GET /category/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid category ID format")
		return
	}

	cat, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Category fetched successfully", gin.H{
		"category": cat,
	})
}

// Delete handles DELETE /category/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid category ID format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Category deleted successfully", nil)
}

func (h *CategoryHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	switch {
	case errors.As(err, &vErrs):
		response.BadRequest(c, err.Error())
	case errors.Is(err, category.ErrCategoryNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, category.ErrCategoryExists):
		response.Conflict(c, err.Error())
	default:
		logger.Error("category handler error", err)
		response.InternalServerError(c, "something went wrong", err)
	}
}
