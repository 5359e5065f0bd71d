package handlers

import (
	"testing"

	"codetidbit/internal/models"
)

func TestContentTypeFromParam(t *testing.T) {
	tests := []struct {
		param    string
		expected models.ContentType
		ok       bool
	}{
		{"snipbit", models.ContentSnipbit, true},
		{"snipbits", models.ContentSnipbit, true},
		{"1", models.ContentSnipbit, true},
		{"bigbit", models.ContentBigbit, true},
		{"bigbits", models.ContentBigbit, true},
		{"2", models.ContentBigbit, true},
		{"story", models.ContentStory, true},
		{"stories", models.ContentStory, true},
		{"3", models.ContentStory, true},
		{"", 0, false},
		{"widget", 0, false},
		{"4", 0, false},
	}

	for _, tt := range tests {
		got, ok := contentTypeFromParam(tt.param)
		if ok != tt.ok || got != tt.expected {
			t.Errorf("contentTypeFromParam(%q) = (%d, %v), expected (%d, %v)",
				tt.param, got, ok, tt.expected, tt.ok)
		}
	}
}
