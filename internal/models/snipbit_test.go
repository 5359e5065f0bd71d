package models

import (
	"strings"
	"testing"
	"time"

	"codetidbit/internal/apperrors"
)

func validSnipbitRequest() AddSnipbitRequest {
	return AddSnipbitRequest{
		Name:         "Elm decoders",
		Description:  "A tour of JSON decoding in Elm",
		Tags:         []string{"elm", "json"},
		Language:     "Elm",
		Introduction: "Decoders turn JSON into typed values.",
		Conclusion:   "Compose small decoders into big ones.",
		Code:         "decoder = Decode.string",
		HighlightedComments: []HighlightedComment{
			{Range: Range{StartRow: 0, EndRow: 0, EndCol: 10}, Comment: "The primitive decoder"},
		},
	}
}

func TestAddSnipbitRequest_Validate(t *testing.T) {
	if err := validSnipbitRequest().Validate(); err != nil {
		t.Errorf("Expected valid request, got %v", err)
	}

	tests := []struct {
		name     string
		mutate   func(r *AddSnipbitRequest)
		wantCode apperrors.ErrorCode
	}{
		{"missing name", func(r *AddSnipbitRequest) { r.Name = "" }, apperrors.ErrInvalidTidbitName},
		{"long name", func(r *AddSnipbitRequest) { r.Name = strings.Repeat("a", MaxNameLength+1) }, apperrors.ErrInvalidTidbitName},
		{"missing description", func(r *AddSnipbitRequest) { r.Description = "" }, apperrors.ErrInvalidTidbitDescription},
		{"no tags", func(r *AddSnipbitRequest) { r.Tags = nil }, apperrors.ErrInvalidTags},
		{"empty tag", func(r *AddSnipbitRequest) { r.Tags = []string{"ok", ""} }, apperrors.ErrInvalidTag},
		{"missing language", func(r *AddSnipbitRequest) { r.Language = "" }, apperrors.ErrInvalidLanguage},
		{"missing introduction", func(r *AddSnipbitRequest) { r.Introduction = "" }, apperrors.ErrInvalidIntroduction},
		{"missing conclusion", func(r *AddSnipbitRequest) { r.Conclusion = "" }, apperrors.ErrInvalidConclusion},
		{"missing code", func(r *AddSnipbitRequest) { r.Code = "" }, apperrors.ErrInvalidCode},
		{"no highlighted comments", func(r *AddSnipbitRequest) { r.HighlightedComments = nil }, apperrors.ErrInvalidHighlightedComment},
		{"empty highlighted comment", func(r *AddSnipbitRequest) {
			r.HighlightedComments = []HighlightedComment{{Comment: ""}}
		}, apperrors.ErrInvalidHighlightedComment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSnipbitRequest()
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

func TestAddSnipbitRequest_ToSnipbit(t *testing.T) {
	req := validSnipbitRequest()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	snipbit := req.ToSnipbit("user-1", "bill@example.com", now)

	if snipbit.Author != "user-1" || snipbit.AuthorEmail != "bill@example.com" {
		t.Errorf("Unexpected author fields: %s / %s", snipbit.Author, snipbit.AuthorEmail)
	}
	if !snipbit.CreatedAt.Equal(now) || !snipbit.LastModified.Equal(now) {
		t.Error("Expected createdAt and lastModified set to now")
	}
	if snipbit.ID.IsZero() {
		t.Error("Expected a generated ID")
	}
}
