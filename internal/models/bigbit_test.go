package models

import (
	"sort"
	"testing"

	"codetidbit/internal/apperrors"
)

func testFileStructure() FileStructure {
	return FileStructure{
		RootFolder: BigbitFolder{
			Files: map[string]BigbitFile{
				"main.go": {Content: "package main", Language: "Go"},
			},
			Folders: map[string]BigbitFolder{
				"web": {
					Files: map[string]BigbitFile{
						"app.js":   {Content: "console.log(1)", Language: "JavaScript"},
						"index.js": {Content: "console.log(2)", Language: "JavaScript"},
					},
				},
			},
		},
	}
}

func TestFileStructure_Languages(t *testing.T) {
	languages := testFileStructure().Languages()
	sort.Strings(languages)

	if len(languages) != 2 || languages[0] != "Go" || languages[1] != "JavaScript" {
		t.Errorf("Expected [Go JavaScript], got %v", languages)
	}
}

func TestFileStructure_FileCount(t *testing.T) {
	if count := testFileStructure().FileCount(); count != 3 {
		t.Errorf("Expected 3 files, got %d", count)
	}
	if count := (FileStructure{}).FileCount(); count != 0 {
		t.Errorf("Expected 0 files in empty tree, got %d", count)
	}
}

func validBigbitRequest() AddBigbitRequest {
	return AddBigbitRequest{
		Name:         "Fullstack example",
		Description:  "A Go server with a JS frontend",
		Tags:         []string{"go", "javascript"},
		Introduction: "Two languages, one project.",
		Conclusion:   "That is the whole stack.",
		FS:           testFileStructure(),
		HighlightedComments: []BigbitHighlightedComment{
			{File: "main.go", Range: Range{EndCol: 12}, Comment: "The entrypoint"},
		},
	}
}

func TestAddBigbitRequest_Validate(t *testing.T) {
	if err := validBigbitRequest().Validate(); err != nil {
		t.Errorf("Expected valid request, got %v", err)
	}

	tests := []struct {
		name     string
		mutate   func(r *AddBigbitRequest)
		wantCode apperrors.ErrorCode
	}{
		{"missing name", func(r *AddBigbitRequest) { r.Name = "" }, apperrors.ErrInvalidTidbitName},
		{"empty tree", func(r *AddBigbitRequest) { r.FS = FileStructure{} }, apperrors.ErrInvalidFileStructure},
		{"file without language", func(r *AddBigbitRequest) {
			r.FS.RootFolder.Files = map[string]BigbitFile{"main.go": {Content: "x"}}
			r.FS.RootFolder.Folders = nil
		}, apperrors.ErrInvalidLanguage},
		{"no highlighted comments", func(r *AddBigbitRequest) { r.HighlightedComments = nil }, apperrors.ErrInvalidHighlightedComment},
		{"comment without file", func(r *AddBigbitRequest) {
			r.HighlightedComments = []BigbitHighlightedComment{{Comment: "hi"}}
		}, apperrors.ErrInvalidHighlightedComment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validBigbitRequest()
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

func TestAddBigbitRequest_ToBigbit_DerivesLanguages(t *testing.T) {
	bigbit := validBigbitRequest().ToBigbit("user-1", "bill@example.com", testTime())

	languages := append([]string(nil), bigbit.Languages...)
	sort.Strings(languages)
	if len(languages) != 2 || languages[0] != "Go" || languages[1] != "JavaScript" {
		t.Errorf("Expected languages derived from tree, got %v", bigbit.Languages)
	}
}
