package model

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrAlreadyReviewed = errors.New("product already reviewed")
	ErrAlreadyApproved = errors.New("product is already approved")
	ErrInvalidPrice    = errors.New("product price must be non-negative")
	ErrInvalidStock    = errors.New("product stock must be non-negative")
	ErrInvalidCategory = errors.New("invalid category id")
)
