package user

import "errors"

var (
	ErrEmailAlreadyExists = errors.New("user already registered with this email")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSamePassword       = errors.New("new password cannot be same as old password")
)
