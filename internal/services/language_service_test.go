package services

import (
	"reflect"
	"testing"

	"codetidbit/internal/models"
)

func testLanguageTable() []models.Language {
	return []models.Language{
		{Name: "Elm", Aliases: nil},
		{Name: "Go", Aliases: []string{"golang"}},
		{Name: "JavaScript", Aliases: []string{"js", "node"}},
		{Name: "Python", Aliases: []string{"py"}},
	}
}

func TestCanonicalLanguageName(t *testing.T) {
	table := testLanguageTable()

	tests := []struct {
		name     string
		expected string
	}{
		{"Elm", "Elm"},
		{"elm", "Elm"},
		{"ELM", "Elm"},
		{"golang", "Go"},
		{"Golang", "Go"},
		{"js", "JavaScript"},
		{"node", "JavaScript"},
		{"rust", ""},
		{"", ""},
		{"gol", ""},
	}

	for _, tt := range tests {
		if got := CanonicalLanguageName(table, tt.name); got != tt.expected {
			t.Errorf("CanonicalLanguageName(%q) = %q, expected %q", tt.name, got, tt.expected)
		}
	}
}

func TestInferLanguagesFromTable(t *testing.T) {
	table := testLanguageTable()

	tests := []struct {
		name          string
		query         string
		wantLanguages []string
		wantResidual  string
	}{
		{
			name:          "language token moves out of the query",
			query:         "elm decoders",
			wantLanguages: []string{"Elm"},
			wantResidual:  "decoders",
		},
		{
			name:          "no language mention",
			query:         "decoders",
			wantLanguages: nil,
			wantResidual:  "decoders",
		},
		{
			name:          "alias resolves to canonical name",
			query:         "golang channels",
			wantLanguages: []string{"Go"},
			wantResidual:  "channels",
		},
		{
			name:          "query that is only languages empties out",
			query:         "elm go",
			wantLanguages: []string{"Elm", "Go"},
			wantResidual:  "",
		},
		{
			name:          "repeated mentions deduplicate",
			query:         "js node closures",
			wantLanguages: []string{"JavaScript"},
			wantResidual:  "closures",
		},
		{
			name:          "substring is not a whole-word match",
			query:         "gopher tricks",
			wantLanguages: nil,
			wantResidual:  "gopher tricks",
		},
		{
			name:          "empty query",
			query:         "",
			wantLanguages: nil,
			wantResidual:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			languages, residual := InferLanguagesFromTable(table, tt.query)
			if !reflect.DeepEqual(languages, tt.wantLanguages) {
				t.Errorf("languages = %v, expected %v", languages, tt.wantLanguages)
			}
			if residual != tt.wantResidual {
				t.Errorf("residual = %q, expected %q", residual, tt.wantResidual)
			}
		})
	}
}
