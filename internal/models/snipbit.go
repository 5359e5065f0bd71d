package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"codetidbit/internal/apperrors"
)

// Range addresses a span of highlighted code.
type Range struct {
	StartRow int `bson:"startRow" json:"startRow"`
	StartCol int `bson:"startCol" json:"startCol"`
	EndRow   int `bson:"endRow" json:"endRow"`
	EndCol   int `bson:"endCol" json:"endCol"`
}

// HighlightedComment pairs a code range with its explanation.
type HighlightedComment struct {
	Range   Range  `bson:"range" json:"range"`
	Comment string `bson:"comment" json:"comment"`
}

// Snipbit is a single-file code tidbit. Structure is immutable after
// creation except via full replace; likes are computed on read from the
// opinions collection, never stored here.
type Snipbit struct {
	ID                  primitive.ObjectID   `bson:"_id,omitempty" json:"-"`
	Author              string               `bson:"author" json:"author"`
	AuthorEmail         string               `bson:"authorEmail" json:"authorEmail"`
	Name                string               `bson:"name" json:"name"`
	Description         string               `bson:"description" json:"description"`
	Tags                []string             `bson:"tags" json:"tags"`
	Language            string               `bson:"language" json:"language"`
	Introduction        string               `bson:"introduction" json:"introduction"`
	Conclusion          string               `bson:"conclusion" json:"conclusion"`
	Code                string               `bson:"code" json:"code"`
	HighlightedComments []HighlightedComment `bson:"highlightedComments" json:"highlightedComments"`
	CreatedAt           time.Time            `bson:"createdAt" json:"createdAt"`
	LastModified        time.Time            `bson:"lastModified" json:"lastModified"`

	// Populated by $meta projection on text searches only.
	TextScore float64 `bson:"textScore,omitempty" json:"-"`
}

// SnipbitResponse is the public shape: internal key renamed to id, opinion
// counts attached relative to the opinions collection.
type SnipbitResponse struct {
	ID                  string               `json:"id"`
	Author              string               `json:"author"`
	Name                string               `json:"name"`
	Description         string               `json:"description"`
	Tags                []string             `json:"tags"`
	Language            string               `json:"language"`
	Introduction        string               `json:"introduction"`
	Conclusion          string               `json:"conclusion"`
	Code                string               `json:"code"`
	HighlightedComments []HighlightedComment `json:"highlightedComments"`
	CreatedAt           time.Time            `json:"createdAt"`
	LastModified        time.Time            `json:"lastModified"`
	Likes               int64                `json:"likes"`
	Dislikes            int64                `json:"dislikes"`

	TextScore float64 `json:"-"`
}

// ToResponse renames the store key and carries the text score through for
// relevance sorting. Opinion counts are attached by the service.
func (s *Snipbit) ToResponse() *SnipbitResponse {
	return &SnipbitResponse{
		ID:                  s.ID.Hex(),
		Author:              s.Author,
		Name:                s.Name,
		Description:         s.Description,
		Tags:                s.Tags,
		Language:            s.Language,
		Introduction:        s.Introduction,
		Conclusion:          s.Conclusion,
		Code:                s.Code,
		HighlightedComments: s.HighlightedComments,
		CreatedAt:           s.CreatedAt,
		LastModified:        s.LastModified,
		TextScore:           s.TextScore,
	}
}

// AddSnipbitRequest is the request body for POST /snipbits. The language
// value is additionally checked against the known-language table in the
// service (async restriction).
type AddSnipbitRequest struct {
	Name                string               `json:"name"`
	Description         string               `json:"description"`
	Tags                []string             `json:"tags"`
	Language            string               `json:"language"`
	Introduction        string               `json:"introduction"`
	Conclusion          string               `json:"conclusion"`
	Code                string               `json:"code"`
	HighlightedComments []HighlightedComment `json:"highlightedComments"`
}

// Validate applies the uniform name/description/tag/comment rules, each with
// its own error code.
func (r AddSnipbitRequest) Validate() error {
	if err := validation.Validate(r.Name, validation.Required, validation.Length(1, MaxNameLength)); err != nil {
		return apperrors.New(apperrors.ErrInvalidTidbitName, "name must be non-empty and at most 50 characters")
	}
	if err := validation.Validate(r.Description, validation.Required, validation.Length(1, MaxDescriptionLength)); err != nil {
		return apperrors.New(apperrors.ErrInvalidTidbitDescription, "description must be non-empty and at most 300 characters")
	}
	if err := validateTags(r.Tags); err != nil {
		return err
	}
	if err := validation.Validate(r.Language, validation.Required); err != nil {
		return apperrors.New(apperrors.ErrInvalidLanguage, "language is required")
	}
	if err := validation.Validate(r.Introduction, validation.Required); err != nil {
		return apperrors.New(apperrors.ErrInvalidIntroduction, "introduction is required")
	}
	if err := validation.Validate(r.Conclusion, validation.Required); err != nil {
		return apperrors.New(apperrors.ErrInvalidConclusion, "conclusion is required")
	}
	if err := validation.Validate(r.Code, validation.Required); err != nil {
		return apperrors.New(apperrors.ErrInvalidCode, "code is required")
	}
	if len(r.HighlightedComments) == 0 {
		return apperrors.New(apperrors.ErrInvalidHighlightedComment, "at least one highlighted comment is required")
	}
	for _, hc := range r.HighlightedComments {
		if err := validation.Validate(hc.Comment, validation.Required, validation.Length(1, MaxCommentLength)); err != nil {
			return apperrors.New(apperrors.ErrInvalidHighlightedComment, "highlighted comments must be non-empty and at most 1000 characters")
		}
	}
	return nil
}

// ToSnipbit builds the document for insertion.
func (r AddSnipbitRequest) ToSnipbit(author, authorEmail string, now time.Time) *Snipbit {
	return &Snipbit{
		ID:                  primitive.NewObjectID(),
		Author:              author,
		AuthorEmail:         authorEmail,
		Name:                r.Name,
		Description:         r.Description,
		Tags:                r.Tags,
		Language:            r.Language,
		Introduction:        r.Introduction,
		Conclusion:          r.Conclusion,
		Code:                r.Code,
		HighlightedComments: r.HighlightedComments,
		CreatedAt:           now,
		LastModified:        now,
	}
}
