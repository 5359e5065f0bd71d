package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"codetidbit/internal/apperrors"
)

// Story is an ordered sequence of tidbit references. Pages must point to
// content that exists at reference time; existence is not continuously
// enforced afterwards.
type Story struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Author       string             `bson:"author" json:"author"`
	AuthorEmail  string             `bson:"authorEmail" json:"authorEmail"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description" json:"description"`
	Tags         []string           `bson:"tags" json:"tags"`
	Pages        []TidbitPointer    `bson:"pages" json:"pages"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	LastModified time.Time          `bson:"lastModified" json:"lastModified"`

	TextScore float64 `bson:"textScore,omitempty" json:"-"`
}

// StoryResponse is the public shape.
type StoryResponse struct {
	ID           string          `json:"id"`
	Author       string          `json:"author"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Tags         []string        `json:"tags"`
	Pages        []TidbitPointer `json:"pages"`
	CreatedAt    time.Time       `json:"createdAt"`
	LastModified time.Time       `json:"lastModified"`
	Likes        int64           `json:"likes"`
	Dislikes     int64           `json:"dislikes"`

	TextScore float64 `json:"-"`
}

// ExpandedStoryResponse resolves each page into the full tidbit payload.
type ExpandedStoryResponse struct {
	StoryResponse
	ExpandedPages []Content `json:"expandedPages"`
}

// ToResponse renames the store key.
func (s *Story) ToResponse() *StoryResponse {
	return &StoryResponse{
		ID:           s.ID.Hex(),
		Author:       s.Author,
		Name:         s.Name,
		Description:  s.Description,
		Tags:         s.Tags,
		Pages:        s.Pages,
		CreatedAt:    s.CreatedAt,
		LastModified: s.LastModified,
		TextScore:    s.TextScore,
	}
}

// StoryInformationRequest carries the author-editable story metadata, used
// both for creation and for updating information on an existing story.
type StoryInformationRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// Validate applies the uniform metadata rules.
func (r StoryInformationRequest) Validate() error {
	if err := validation.Validate(r.Name, validation.Required, validation.Length(1, MaxNameLength)); err != nil {
		return apperrors.New(apperrors.ErrInvalidStoryName, "name must be non-empty and at most 50 characters")
	}
	if err := validation.Validate(r.Description, validation.Required, validation.Length(1, MaxDescriptionLength)); err != nil {
		return apperrors.New(apperrors.ErrInvalidStoryDescription, "description must be non-empty and at most 300 characters")
	}
	return validateTags(r.Tags)
}

// AddTidbitsToStoryRequest appends pages to an existing story.
type AddTidbitsToStoryRequest struct {
	Tidbits []TidbitPointer `json:"tidbits"`
}

// Validate checks every pointer's shape; existence of the referenced tidbits
// is verified in the service at reference time.
func (r AddTidbitsToStoryRequest) Validate() error {
	if len(r.Tidbits) == 0 {
		return apperrors.New(apperrors.ErrInvalidTidbitPointer, "at least one tidbit pointer is required")
	}
	for _, ptr := range r.Tidbits {
		if err := ptr.Validate(); err != nil {
			return err
		}
	}
	return nil
}
