package models

import (
	"testing"
	"time"
)

func testTime() time.Time {
	return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
}

func TestContentSearchOptions_Normalize_Defaults(t *testing.T) {
	opts := ContentSearchOptions{}
	if err := opts.Normalize(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !opts.IncludeSnipbits || !opts.IncludeBigbits || !opts.IncludeStories {
		t.Error("Expected all kinds included when none requested")
	}
	if opts.Page != 1 {
		t.Errorf("Expected page 1, got %d", opts.Page)
	}
	if opts.PageSize != DefaultPageSize {
		t.Errorf("Expected default page size, got %d", opts.PageSize)
	}
}

func TestContentSearchOptions_Normalize_KeepsExplicitKinds(t *testing.T) {
	opts := ContentSearchOptions{IncludeSnipbits: true}
	if err := opts.Normalize(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if opts.IncludeBigbits || opts.IncludeStories {
		t.Error("Expected only snipbits included")
	}
}

func TestContentSearchOptions_Normalize_Bounds(t *testing.T) {
	tests := []struct {
		name string
		opts ContentSearchOptions
	}{
		{"negative page", ContentSearchOptions{Page: -1}},
		{"oversized page size", ContentSearchOptions{PageSize: MaxPageSize + 1}},
		{"negative page size", ContentSearchOptions{PageSize: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.Normalize(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}
