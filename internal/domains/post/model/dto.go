package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreatePostRequest comes from multipart form fields; image files ride
// alongside under the "files" field.
type CreatePostRequest struct {
	Title       string `form:"title"`
	Description string `form:"description"`
}

func (r CreatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("post title is required")),
		validation.Field(&r.Description, validation.Required.Error("post description is required")),
	)
}

// UpdatePostRequest patches title and description only; images change
// through the dedicated image endpoints.
type UpdatePostRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (r UpdatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.When(r.Title != nil, validation.Required.Error("post title cannot be empty")),
		),
		validation.Field(&r.Description,
			validation.When(r.Description != nil, validation.Required.Error("post description cannot be empty")),
		),
	)
}
