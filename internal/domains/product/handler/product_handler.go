package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"marketplace-backend/internal/attachment"
	"marketplace-backend/internal/domains/product/model"
	"marketplace-backend/internal/domains/product/service"
	"marketplace-backend/internal/shared/middleware"
	"marketplace-backend/internal/shared/response"
	"marketplace-backend/pkg/logger"
)

// ProductHandler handles HTTP requests for the product domain
type ProductHandler struct {
	service service.ServiceInterface
}

func NewProductHandler(service service.ServiceInterface) *ProductHandler {
	return &ProductHandler{service: service}
}

// Create handles POST /product/create
func (h *ProductHandler) Create(c *gin.Context) {
	var req model.CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	files, err := readFiles(c)
	if err != nil || len(files) == 0 {
		response.BadRequest(c, "please upload at least one product image")
		return
	}

	p, err := h.service.Create(c.Request.Context(), req, files)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Product created successfully", gin.H{
		"product": p,
	})
}

// GetAll handles GET /product/get-all
func (h *ProductHandler) GetAll(c *gin.Context) {
	keyword := c.Query("keyword")
	category := c.Query("category")

	products, err := h.service.List(c.Request.Context(), keyword, category)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Products fetched successfully", gin.H{
		"products":      products,
		"totalProducts": len(products),
	})
}

// Get handles GET /product/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid product ID format")
		return
	}

	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Product fetched successfully", gin.H{
		"product": p,
	})
}

// Top handles GET /product/list/top-products
func (h *ProductHandler) Top(c *gin.Context) {
	products, err := h.service.Top(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Top products fetched successfully", gin.H{
		"products": products,
	})
}

// Update handles PUT /product/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid product ID format")
		return
	}

	var req model.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	p, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Product updated successfully", gin.H{
		"product": p,
	})
}

// Delete handles DELETE /product/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid product ID format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Product deleted successfully", nil)
}

// AddImages handles PUT /product/:id/image
func (h *ProductHandler) AddImages(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid product ID format")
		return
	}

	files, err := readFiles(c)
	if err != nil || len(files) == 0 {
		response.BadRequest(c, "please upload at least one image")
		return
	}

	p, err := h.service.AddImages(c.Request.Context(), id, files)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Images added successfully", gin.H{
		"product": p,
	})
}

// RemoveImage handles DELETE /product/:id/image?id=<publicID>
func (h *ProductHandler) RemoveImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid product ID format")
		return
	}

	publicID := c.Query("id")
	if publicID == "" {
		response.BadRequest(c, "image id is required")
		return
	}

	p, err := h.service.RemoveImageByID(c.Request.Context(), id, publicID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Image removed successfully", gin.H{
		"product": p,
	})
}

// RemoveImageByIndex handles DELETE /product/:id/image/spec
func (h *ProductHandler) RemoveImageByIndex(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid product ID format")
		return
	}

	var req model.RemoveImageByIndexRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	p, err := h.service.RemoveImageByIndex(c.Request.Context(), id, *req.Index)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Image removed successfully", gin.H{
		"product": p,
	})
}

// AddReview handles POST /product/:id/review
func (h *ProductHandler) AddReview(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid product ID format")
		return
	}

	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req model.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := h.service.AddReview(c.Request.Context(), productID, userID, req); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Review added successfully", nil)
}

// Approve handles PUT /product/approve/:productId
func (h *ProductHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		response.BadRequest(c, "invalid product ID format")
		return
	}

	p, err := h.service.Approve(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Product approved successfully", gin.H{
		"product": p,
	})
}

// Boost handles PATCH /product/boost
func (h *ProductHandler) Boost(c *gin.Context) {
	var req model.BoostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	p, err := h.service.Boost(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Product boosted to position "+strconv.Itoa(p.Boosted), gin.H{
		"product": p,
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
func (h *ProductHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	switch {
	case errors.As(err, &vErrs):
		response.BadRequest(c, err.Error())
	case errors.Is(err, model.ErrProductNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, model.ErrAlreadyReviewed):
		response.Conflict(c, err.Error())
	case errors.Is(err, model.ErrAlreadyApproved),
		errors.Is(err, model.ErrInvalidPrice),
		errors.Is(err, model.ErrInvalidStock),
		errors.Is(err, model.ErrInvalidCategory),
		errors.Is(err, attachment.ErrNoFiles),
		errors.Is(err, attachment.ErrInvalidIndex):
		response.BadRequest(c, err.Error())
	case errors.Is(err, attachment.ErrImageNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("product handler error", err)
		response.InternalServerError(c, "something went wrong", err)
	}
}
