package models

import (
	"strings"
	"testing"

	"codetidbit/internal/apperrors"
)

func TestRegisterRequest_Validate(t *testing.T) {
	valid := RegisterRequest{
		Name:     "Bill",
		Email:    "bill@example.com",
		Password: "secret-password",
		Bio:      "I write Elm tutorials",
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Expected valid request, got %v", err)
	}

	tests := []struct {
		name     string
		mutate   func(r *RegisterRequest)
		wantCode apperrors.ErrorCode
	}{
		{"missing email", func(r *RegisterRequest) { r.Email = "" }, apperrors.ErrInvalidEmail},
		{"malformed email", func(r *RegisterRequest) { r.Email = "not-an-email" }, apperrors.ErrInvalidEmail},
		{"short password", func(r *RegisterRequest) { r.Password = "abc" }, apperrors.ErrInvalidPassword},
		{"missing name", func(r *RegisterRequest) { r.Name = "" }, apperrors.ErrInvalidName},
		{"long name", func(r *RegisterRequest) { r.Name = strings.Repeat("a", MaxUserNameLength+1) }, apperrors.ErrInvalidName},
		{"long bio", func(r *RegisterRequest) { r.Bio = strings.Repeat("a", MaxBioLength+1) }, apperrors.ErrInvalidBio},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := req.Validate()
			if err == nil {
				t.Fatal("Expected validation error")
			}
			appErr, ok := err.(*apperrors.Error)
			if !ok {
				t.Fatalf("Expected *apperrors.Error, got %T", err)
			}
			if appErr.Code != tt.wantCode {
				t.Errorf("Expected code %d, got %d", tt.wantCode, appErr.Code)
			}
		})
	}
}

func TestLoginRequest_Validate(t *testing.T) {
	if err := (LoginRequest{Email: "bill@example.com", Password: "pw"}).Validate(); err != nil {
		t.Errorf("Expected valid request, got %v", err)
	}
	if err := (LoginRequest{Password: "pw"}).Validate(); err == nil {
		t.Error("Expected error for missing email")
	}
	if err := (LoginRequest{Email: "bill@example.com"}).Validate(); err == nil {
		t.Error("Expected error for missing password")
	}
}

func TestUserToResponse_StripsPasswordHash(t *testing.T) {
	user := User{Name: "Bill", Email: "bill@example.com", PasswordHash: "argon2id$x$y", Bio: "hi"}
	resp := user.ToResponse()
	if resp.Name != "Bill" || resp.Email != "bill@example.com" || resp.Bio != "hi" {
		t.Errorf("Unexpected response: %+v", resp)
	}
}
