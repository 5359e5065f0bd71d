package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"codetidbit/internal/apperrors"
)

// User is an account document. PasswordHash never leaves the server layer
// after authentication.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Bio          string             `bson:"bio" json:"bio"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	LastLoginAt  time.Time          `bson:"lastLoginAt" json:"lastLoginAt"`
}

// UserResponse is the public account shape: internal key renamed to id,
// password hash stripped.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Bio   string `json:"bio"`
}

// ToResponse strips sensitive fields.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
		Bio:   u.Bio,
	}
}

const (
	MaxUserNameLength = 50
	MaxBioLength      = 500
	MinPasswordLength = 6
	MaxPasswordLength = 100
)

// RegisterRequest is the request body for POST /register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Bio      string `json:"bio"`
}

// Validate maps each violated field to its own error code.
func (r RegisterRequest) Validate() error {
	if err := validation.Validate(r.Email, validation.Required, is.Email); err != nil {
		return apperrors.New(apperrors.ErrInvalidEmail, "a valid email address is required")
	}
	if err := validation.Validate(r.Password, validation.Required, validation.Length(MinPasswordLength, MaxPasswordLength)); err != nil {
		return apperrors.New(apperrors.ErrInvalidPassword, "password must be between 6 and 100 characters")
	}
	if err := validation.Validate(r.Name, validation.Required, validation.Length(1, MaxUserNameLength)); err != nil {
		return apperrors.New(apperrors.ErrInvalidName, "name must be non-empty and at most 50 characters")
	}
	if err := validation.Validate(r.Bio, validation.Length(0, MaxBioLength)); err != nil {
		return apperrors.New(apperrors.ErrInvalidBio, "bio must be at most 500 characters")
	}
	return nil
}

// LoginRequest is the request body for POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks shape only; credential checking happens in the service.
func (r LoginRequest) Validate() error {
	if err := validation.Validate(r.Email, validation.Required, is.Email); err != nil {
		return apperrors.New(apperrors.ErrInvalidEmail, "a valid email address is required")
	}
	if err := validation.Validate(r.Password, validation.Required); err != nil {
		return apperrors.New(apperrors.ErrInvalidPassword, "password is required")
	}
	return nil
}

// UpdateBioRequest is the request body for POST /account/bio.
type UpdateBioRequest struct {
	Bio string `json:"bio"`
}

// Validate bounds the bio length.
func (r UpdateBioRequest) Validate() error {
	if err := validation.Validate(r.Bio, validation.Length(0, MaxBioLength)); err != nil {
		return apperrors.New(apperrors.ErrInvalidBio, "bio must be at most 500 characters")
	}
	return nil
}
