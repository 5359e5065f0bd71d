package services

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"codetidbit/internal/models"
)

func TestBuildContentFilter(t *testing.T) {
	tests := []struct {
		name          string
		opts          models.ContentSearchOptions
		languageField string
		expected      bson.M
	}{
		{
			name:          "empty options",
			opts:          models.ContentSearchOptions{},
			languageField: "language",
			expected:      bson.M{},
		},
		{
			name:          "author only",
			opts:          models.ContentSearchOptions{Author: "user-1"},
			languageField: "language",
			expected:      bson.M{"author": "user-1"},
		},
		{
			name:          "text query",
			opts:          models.ContentSearchOptions{Query: "decoders"},
			languageField: "language",
			expected:      bson.M{"$text": bson.M{"$search": "decoders"}},
		},
		{
			name:          "language filter on snipbits",
			opts:          models.ContentSearchOptions{Languages: []string{"Elm"}},
			languageField: "language",
			expected:      bson.M{"language": bson.M{"$in": []string{"Elm"}}},
		},
		{
			name:          "language filter on bigbits uses the tree field",
			opts:          models.ContentSearchOptions{Languages: []string{"Go"}},
			languageField: "languages",
			expected:      bson.M{"languages": bson.M{"$in": []string{"Go"}}},
		},
		{
			name:          "stories ignore language filters",
			opts:          models.ContentSearchOptions{Languages: []string{"Go"}},
			languageField: "",
			expected:      bson.M{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildContentFilter(tt.opts, tt.languageField)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("buildContentFilter = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestBuildContentFindOptions_Pagination(t *testing.T) {
	opts := models.ContentSearchOptions{Page: 3, PageSize: 10}
	findOpts := buildContentFindOptions(opts)

	if findOpts.Skip == nil || *findOpts.Skip != 20 {
		t.Errorf("Expected skip 20, got %v", findOpts.Skip)
	}
	// One extra row fetched to detect a next page.
	if findOpts.Limit == nil || *findOpts.Limit != 11 {
		t.Errorf("Expected limit 11, got %v", findOpts.Limit)
	}
}

func TestBuildContentFindOptions_AuthorSkipsPagination(t *testing.T) {
	opts := models.ContentSearchOptions{Author: "user-1", Page: 3, PageSize: 10}
	findOpts := buildContentFindOptions(opts)

	if findOpts.Skip != nil {
		t.Errorf("Expected no skip for author browse, got %v", *findOpts.Skip)
	}
	if findOpts.Limit != nil {
		t.Errorf("Expected no limit for author browse, got %v", *findOpts.Limit)
	}
}

func TestTrimPageLen(t *testing.T) {
	tests := []struct {
		name        string
		fetched     int
		opts        models.ContentSearchOptions
		wantKeep    int
		wantHasMore bool
	}{
		{"under page size", 4, models.ContentSearchOptions{PageSize: 10}, 4, false},
		{"exact page size", 10, models.ContentSearchOptions{PageSize: 10}, 10, false},
		{"overfetch row signals more", 11, models.ContentSearchOptions{PageSize: 10}, 10, true},
		{"author browse never reports more", 25, models.ContentSearchOptions{Author: "u", PageSize: 10}, 25, false},
		{"empty", 0, models.ContentSearchOptions{PageSize: 10}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keep, hasMore := trimPageLen(tt.fetched, tt.opts)
			if keep != tt.wantKeep || hasMore != tt.wantHasMore {
				t.Errorf("trimPageLen(%d) = (%d, %v), expected (%d, %v)",
					tt.fetched, keep, hasMore, tt.wantKeep, tt.wantHasMore)
			}
		})
	}
}
