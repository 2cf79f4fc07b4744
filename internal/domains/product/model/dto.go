package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CreateProductRequest comes from multipart form fields; image files ride
// alongside and are handled separately by the attachment manager.
type CreateProductRequest struct {
	Name        string `form:"name"`
	Description string `form:"description"`
	Price       string `form:"price"`
	Stock       *int   `form:"stock"`
	CategoryID  string `form:"category"`
}

func (r CreateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error("product name is required")),
		validation.Field(&r.Description, validation.Required.Error("product description is required")),
		validation.Field(&r.Price,
			validation.Required.Error("product price is required"),
			is.Float.Error("product price must be a number"),
		),
		validation.Field(&r.Stock,
			validation.NotNil.Error("product stock is required"),
			validation.When(r.Stock != nil, validation.Min(0).Error("product stock must be non-negative")),
		),
		validation.Field(&r.CategoryID,
			validation.When(r.CategoryID != "", is.UUIDv4.Error("invalid category id")),
		),
	)
}

// UpdateProductRequest is a partial field patch
type UpdateProductRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *string `json:"price"`
	Stock       *int    `json:"stock"`
	CategoryID  *string `json:"category"`
}

func (r UpdateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Price,
			validation.When(r.Price != nil, is.Float.Error("product price must be a number")),
		),
		validation.Field(&r.Stock,
			validation.When(r.Stock != nil, validation.Min(0).Error("product stock must be non-negative")),
		),
		validation.Field(&r.CategoryID,
			validation.When(r.CategoryID != nil, is.UUIDv4.Error("invalid category id")),
		),
	)
}

// ReviewRequest posts one review; one per user per product
type ReviewRequest struct {
	Rating  *int   `json:"rating"`
	Comment string `json:"comment"`
}

func (r ReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Rating,
			validation.NotNil.Error("rating is required"),
			validation.When(r.Rating != nil,
				validation.Min(0).Error("rating must be between 0 and 5"),
				validation.Max(5).Error("rating must be between 0 and 5"),
			),
		),
	)
}

// BoostRequest additively increments the boosted counter
type BoostRequest struct {
	ProductID   string `json:"productId"`
	BoostAmount int    `json:"boostAmount"`
}

func (r BoostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID,
			validation.Required.Error("productId is required"),
			is.UUIDv4.Error("invalid product id"),
		),
		validation.Field(&r.BoostAmount,
			validation.Min(1).Error("boostAmount must be positive"),
		),
	)
}

// RemoveImageByIndexRequest removes by position in the ordered image list
type RemoveImageByIndexRequest struct {
	Index *int `json:"index"`
}

func (r RemoveImageByIndexRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Index, validation.NotNil.Error("index is required")),
	)
}
