package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"marketplace-backend/internal/attachment"
	"marketplace-backend/internal/domains/product/model"
	"marketplace-backend/internal/shared/middleware"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Create(ctx context.Context, req model.CreateProductRequest, files []attachment.File) (*model.Product, error) {
	args := m.Called(ctx, req, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *mockService) Get(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *mockService) List(ctx context.Context, keyword, categoryID string) ([]model.Product, error) {
	args := m.Called(ctx, keyword, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *mockService) Top(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *mockService) Update(ctx context.Context, id uuid.UUID, req model.UpdateProductRequest) (*model.Product, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *mockService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockService) AddImages(ctx context.Context, id uuid.UUID, files []attachment.File) (*model.Product, error) {
	args := m.Called(ctx, id, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *mockService) RemoveImageByID(ctx context.Context, id uuid.UUID, publicID string) (*model.Product, error) {
	args := m.Called(ctx, id, publicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *mockService) RemoveImageByIndex(ctx context.Context, id uuid.UUID, index int) (*model.Product, error) {
	args := m.Called(ctx, id, index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *mockService) AddReview(ctx context.Context, productID, userID uuid.UUID, req model.ReviewRequest) error {
	args := m.Called(ctx, productID, userID, req)
	return args.Error(0)
}

func (m *mockService) Approve(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *mockService) Boost(ctx context.Context, req model.BoostRequest) (*model.Product, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func setupRouter(svc *mockService, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewProductHandler(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != uuid.Nil {
			c.Set(middleware.CtxUserID, userID)
		}
		c.Next()
	})

	g := r.Group("/product")
	g.POST("/create", h.Create)
	g.GET("/get-all", h.GetAll)
	g.GET("/list/top-products", h.Top)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.PUT("/:id/image", h.AddImages)
	g.DELETE("/:id/image", h.RemoveImage)
	g.DELETE("/:id/image/spec", h.RemoveImageByIndex)
	g.POST("/:id/review", h.AddReview)
	g.PUT("/approve/:productId", h.Approve)
	g.PATCH("/boost", h.Boost)
	return r
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCreate_NoFilesRejected(t *testing.T) {
	svc := new(mockService)
	r := setupRouter(svc, uuid.New())

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "Oak table"))
	require.NoError(t, mw.WriteField("description", "Handmade oak table"))
	require.NoError(t, mw.WriteField("price", "120"))
	require.NoError(t, mw.WriteField("stock", "2"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/product/create", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreate_WithFiles(t *testing.T) {
	svc := new(mockService)
	r := setupRouter(svc, uuid.New())

	created := &model.Product{ID: uuid.New(), Name: "Oak table"}
	svc.On("Create", mock.Anything, mock.MatchedBy(func(req model.CreateProductRequest) bool {
		return req.Name == "Oak table" && req.Price == "120" && req.Stock != nil && *req.Stock == 2
	}), mock.MatchedBy(func(files []attachment.File) bool {
		return len(files) == 1 && files[0].Name == "table.jpg"
	})).Return(created, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "Oak table"))
	require.NoError(t, mw.WriteField("description", "Handmade oak table"))
	require.NoError(t, mw.WriteField("price", "120"))
	require.NoError(t, mw.WriteField("stock", "2"))
	fw, err := mw.CreateFormFile("files", "table.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte("jpeg bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/product/create", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body, "product")
}

func TestGet_InvalidID(t *testing.T) {
	svc := new(mockService)
	r := setupRouter(svc, uuid.Nil)

	req := httptest.NewRequest(http.MethodGet, "/product/not-a-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
}

func TestGet_NotFound(t *testing.T) {
	svc := new(mockService)
	r := setupRouter(svc, uuid.Nil)

	id := uuid.New()
	svc.On("Get", mock.Anything, id).Return(nil, model.ErrProductNotFound)

	req := httptest.NewRequest(http.MethodGet, "/product/"+id.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetAll_EnvelopeShape(t *testing.T) {
	svc := new(mockService)
	r := setupRouter(svc, uuid.Nil)

	svc.On("List", mock.Anything, "oak", "").Return([]model.Product{
		{ID: uuid.New(), Name: "Oak table"},
		{ID: uuid.New(), Name: "Oak chair"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/product/get-all?keyword=oak", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["totalProducts"])
}

func TestAddReview_DuplicateConflict(t *testing.T) {
	svc := new(mockService)
	userID := uuid.New()
	r := setupRouter(svc, userID)

	productID := uuid.New()
	svc.On("AddReview", mock.Anything, productID, userID, mock.Anything).
		Return(model.ErrAlreadyReviewed)

	req := httptest.NewRequest(http.MethodPost, "/product/"+productID.String()+"/review",
		strings.NewReader(`{"rating": 4, "comment": "solid"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAddReview_Unauthenticated(t *testing.T) {
	svc := new(mockService)
	r := setupRouter(svc, uuid.Nil)

	req := httptest.NewRequest(http.MethodPost, "/product/"+uuid.NewString()+"/review",
		strings.NewReader(`{"rating": 4}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "AddReview", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestApprove_AlreadyApproved(t *testing.T) {
	svc := new(mockService)
	r := setupRouter(svc, uuid.New())

	id := uuid.New()
	svc.On("Approve", mock.Anything, id).Return(nil, model.ErrAlreadyApproved)

	req := httptest.NewRequest(http.MethodPut, "/product/approve/"+id.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRemoveImageByIndex_BadIndex(t *testing.T) {
	svc := new(mockService)
	r := setupRouter(svc, uuid.New())

	id := uuid.New()
	svc.On("RemoveImageByIndex", mock.Anything, id, 9).
		Return(nil, attachment.ErrInvalidIndex)

	req := httptest.NewRequest(http.MethodDelete, "/product/"+id.String()+"/image/spec",
		strings.NewReader(`{"index": 9}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRemoveImage_MissingQueryID(t *testing.T) {
	svc := new(mockService)
	r := setupRouter(svc, uuid.New())

	req := httptest.NewRequest(http.MethodDelete, "/product/"+uuid.NewString()+"/image", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "RemoveImageByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestBoost_InvalidBody(t *testing.T) {
	svc := new(mockService)
	r := setupRouter(svc, uuid.New())

	req := httptest.NewRequest(http.MethodPatch, "/product/boost", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Boost", mock.Anything, mock.Anything)
}
