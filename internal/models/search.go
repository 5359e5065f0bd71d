package models

import (
	"codetidbit/internal/apperrors"
)

// Default and maximum page sizes for content search.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ContentSearchOptions selects which kinds to include, how to filter and how
// to page/sort. Requesting both sort modes is a caller contract violation;
// when a text query survives language inference, text relevance wins,
// otherwise last-modified ordering applies.
type ContentSearchOptions struct {
	IncludeSnipbits bool
	IncludeBigbits  bool
	IncludeStories  bool

	Author    string
	Query     string
	Languages []string

	Page     int
	PageSize int

	// SortByTextScore orders by relevance desc, name asc; off means
	// last-modified desc, name asc. Set by the service, not the caller.
	SortByTextScore bool
}

// Normalize fills defaults and bounds the page configuration.
func (o *ContentSearchOptions) Normalize() error {
	if !o.IncludeSnipbits && !o.IncludeBigbits && !o.IncludeStories {
		o.IncludeSnipbits = true
		o.IncludeBigbits = true
		o.IncludeStories = true
	}
	if o.Page == 0 {
		o.Page = 1
	}
	if o.Page < 1 {
		return apperrors.New(apperrors.ErrInvalidSearchOptions, "page must be at least 1")
	}
	if o.PageSize == 0 {
		o.PageSize = DefaultPageSize
	}
	if o.PageSize < 1 || o.PageSize > MaxPageSize {
		return apperrors.New(apperrors.ErrInvalidSearchOptions, "pageSize must be between 1 and 100")
	}
	return nil
}

// ContentSearchResult is the aggregator output.
type ContentSearchResult struct {
	HasMore bool      `json:"hasMore"`
	Items   []Content `json:"items"`
}
