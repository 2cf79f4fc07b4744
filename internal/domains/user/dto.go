package user

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"marketplace-backend/internal/attachment"
)

// RegisterRequest creates a new account
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 100),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(6, 128).Error("password must be at least 6 characters"),
		),
	)
}

// LoginRequest authenticates an existing account
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required.Error("please provide email"), is.Email),
		validation.Field(&r.Password, validation.Required.Error("please provide password")),
	)
}

// UpdateUserRequest updates name and/or password for the account matching
// the given email. A provided password must meet the length rule.
type UpdateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (r UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password,
			validation.When(r.Password != "",
				validation.Length(6, 128).Error("password must be at least 6 characters"),
			),
		),
	)
}

// PatchUserRequest partially updates name/email/profilePic of the
// authenticated user. Email uniqueness is re-checked on change; a replaced
// profile picture has its previous remote object destroyed best-effort.
type PatchUserRequest struct {
	Name       *string              `json:"name"`
	Email      *string              `json:"email"`
	ProfilePic *attachment.ImageRef `json:"profilePic"`
}

func (r PatchUserRequest) Validate() error {
	if err := validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.When(r.Email != nil, is.Email.Error("invalid email format")),
		),
		validation.Field(&r.Name,
			validation.When(r.Name != nil, validation.Length(1, 100)),
		),
	); err != nil {
		return err
	}
	if r.ProfilePic != nil && (r.ProfilePic.PublicID == "" || r.ProfilePic.URL == "") {
		return validation.Errors{
			"profilePic": errors.New("public_id and url are required"),
		}
	}
	return nil
}

// PasswordUpdateRequest resets the password for the account with the given
// email; the new password must differ from the current one.
type PasswordUpdateRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

func (r PasswordUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required.Error("email is required"), is.Email),
		validation.Field(&r.NewPassword,
			validation.Required.Error("new password is required"),
			validation.Length(6, 128).Error("password must be at least 6 characters"),
		),
	)
}

// LoginResponse carries the signed credential plus the sanitized user
type LoginResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}
