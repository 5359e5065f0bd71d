package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"codetidbit/internal/apperrors"
)

// BigbitFile is a leaf of the bigbit file tree. Content lives on the file;
// language is per-file metadata.
type BigbitFile struct {
	Content  string `bson:"content" json:"content"`
	Language string `bson:"language" json:"language"`
}

// BigbitFolder is a node of the bigbit file tree.
type BigbitFolder struct {
	Files   map[string]BigbitFile   `bson:"files" json:"files"`
	Folders map[string]BigbitFolder `bson:"folders" json:"folders"`
}

// FileStructure is the nested file tree a bigbit carries.
type FileStructure struct {
	RootFolder BigbitFolder `bson:"rootFolder" json:"rootFolder"`
}

// Languages collects every per-file language in the tree, deduplicated.
func (fs FileStructure) Languages() []string {
	seen := make(map[string]bool)
	var out []string
	var walk func(folder BigbitFolder)
	walk = func(folder BigbitFolder) {
		for _, file := range folder.Files {
			if file.Language != "" && !seen[file.Language] {
				seen[file.Language] = true
				out = append(out, file.Language)
			}
		}
		for _, sub := range folder.Folders {
			walk(sub)
		}
	}
	walk(fs.RootFolder)
	return out
}

// FileCount returns the number of files in the tree.
func (fs FileStructure) FileCount() int {
	count := 0
	var walk func(folder BigbitFolder)
	walk = func(folder BigbitFolder) {
		count += len(folder.Files)
		for _, sub := range folder.Folders {
			walk(sub)
		}
	}
	walk(fs.RootFolder)
	return count
}

// BigbitHighlightedComment is a highlighted comment addressed into a
// specific file of the tree.
type BigbitHighlightedComment struct {
	File    string `bson:"file" json:"file"`
	Range   Range  `bson:"range" json:"range"`
	Comment string `bson:"comment" json:"comment"`
}

// Bigbit is a multi-file tidbit.
type Bigbit struct {
	ID                  primitive.ObjectID         `bson:"_id,omitempty" json:"-"`
	Author              string                     `bson:"author" json:"author"`
	AuthorEmail         string                     `bson:"authorEmail" json:"authorEmail"`
	Name                string                     `bson:"name" json:"name"`
	Description         string                     `bson:"description" json:"description"`
	Tags                []string                   `bson:"tags" json:"tags"`
	Languages           []string                   `bson:"languages" json:"languages"`
	Introduction        string                     `bson:"introduction" json:"introduction"`
	Conclusion          string                     `bson:"conclusion" json:"conclusion"`
	FS                  FileStructure              `bson:"fs" json:"fs"`
	HighlightedComments []BigbitHighlightedComment `bson:"highlightedComments" json:"highlightedComments"`
	CreatedAt           time.Time                  `bson:"createdAt" json:"createdAt"`
	LastModified        time.Time                  `bson:"lastModified" json:"lastModified"`

	TextScore float64 `bson:"textScore,omitempty" json:"-"`
}

// BigbitResponse is the public shape.
type BigbitResponse struct {
	ID                  string                     `json:"id"`
	Author              string                     `json:"author"`
	Name                string                     `json:"name"`
	Description         string                     `json:"description"`
	Tags                []string                   `json:"tags"`
	Languages           []string                   `json:"languages"`
	Introduction        string                     `json:"introduction"`
	Conclusion          string                     `json:"conclusion"`
	FS                  FileStructure              `json:"fs"`
	HighlightedComments []BigbitHighlightedComment `json:"highlightedComments"`
	CreatedAt           time.Time                  `json:"createdAt"`
	LastModified        time.Time                  `json:"lastModified"`
	Likes               int64                      `json:"likes"`
	Dislikes            int64                      `json:"dislikes"`

	TextScore float64 `json:"-"`
}

// ToResponse renames the store key; opinion counts are attached by the
// service.
func (b *Bigbit) ToResponse() *BigbitResponse {
	return &BigbitResponse{
		ID:                  b.ID.Hex(),
		Author:              b.Author,
		Name:                b.Name,
		Description:         b.Description,
		Tags:                b.Tags,
		Languages:           b.Languages,
		Introduction:        b.Introduction,
		Conclusion:          b.Conclusion,
		FS:                  b.FS,
		HighlightedComments: b.HighlightedComments,
		CreatedAt:           b.CreatedAt,
		LastModified:        b.LastModified,
		TextScore:           b.TextScore,
	}
}

// AddBigbitRequest is the request body for POST /bigbits. Per-file languages
// are checked against the known-language table in the service.
type AddBigbitRequest struct {
	Name                string                     `json:"name"`
	Description         string                     `json:"description"`
	Tags                []string                   `json:"tags"`
	Introduction        string                     `json:"introduction"`
	Conclusion          string                     `json:"conclusion"`
	FS                  FileStructure              `json:"fs"`
	HighlightedComments []BigbitHighlightedComment `json:"highlightedComments"`
}

// Validate applies the uniform metadata rules plus file-tree shape checks.
func (r AddBigbitRequest) Validate() error {
	if err := validation.Validate(r.Name, validation.Required, validation.Length(1, MaxNameLength)); err != nil {
		return apperrors.New(apperrors.ErrInvalidTidbitName, "name must be non-empty and at most 50 characters")
	}
	if err := validation.Validate(r.Description, validation.Required, validation.Length(1, MaxDescriptionLength)); err != nil {
		return apperrors.New(apperrors.ErrInvalidTidbitDescription, "description must be non-empty and at most 300 characters")
	}
	if err := validateTags(r.Tags); err != nil {
		return err
	}
	if err := validation.Validate(r.Introduction, validation.Required); err != nil {
		return apperrors.New(apperrors.ErrInvalidIntroduction, "introduction is required")
	}
	if err := validation.Validate(r.Conclusion, validation.Required); err != nil {
		return apperrors.New(apperrors.ErrInvalidConclusion, "conclusion is required")
	}
	if r.FS.FileCount() == 0 {
		return apperrors.New(apperrors.ErrInvalidFileStructure, "at least one file is required")
	}
	if err := validateFolder(r.FS.RootFolder); err != nil {
		return err
	}
	if len(r.HighlightedComments) == 0 {
		return apperrors.New(apperrors.ErrInvalidHighlightedComment, "at least one highlighted comment is required")
	}
	for _, hc := range r.HighlightedComments {
		if err := validation.Validate(hc.Comment, validation.Required, validation.Length(1, MaxCommentLength)); err != nil {
			return apperrors.New(apperrors.ErrInvalidHighlightedComment, "highlighted comments must be non-empty and at most 1000 characters")
		}
		if hc.File == "" {
			return apperrors.New(apperrors.ErrInvalidHighlightedComment, "highlighted comments must name a file")
		}
	}
	return nil
}

func validateFolder(folder BigbitFolder) error {
	for name, file := range folder.Files {
		if name == "" {
			return apperrors.New(apperrors.ErrInvalidFileStructure, "file names must be non-empty")
		}
		if file.Language == "" {
			return apperrors.New(apperrors.ErrInvalidLanguage, "every file must declare a language")
		}
	}
	for name, sub := range folder.Folders {
		if name == "" {
			return apperrors.New(apperrors.ErrInvalidFileStructure, "folder names must be non-empty")
		}
		if err := validateFolder(sub); err != nil {
			return err
		}
	}
	return nil
}

// ToBigbit builds the document for insertion. Languages are derived from the
// file tree.
func (r AddBigbitRequest) ToBigbit(author, authorEmail string, now time.Time) *Bigbit {
	return &Bigbit{
		ID:                  primitive.NewObjectID(),
		Author:              author,
		AuthorEmail:         authorEmail,
		Name:                r.Name,
		Description:         r.Description,
		Tags:                r.Tags,
		Languages:           r.FS.Languages(),
		Introduction:        r.Introduction,
		Conclusion:          r.Conclusion,
		FS:                  r.FS,
		HighlightedComments: r.HighlightedComments,
		CreatedAt:           now,
		LastModified:        now,
	}
}
