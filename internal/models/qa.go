package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"codetidbit/internal/apperrors"
)

// QA is the one-document-per-tidbit container for questions, answers and
// comments. All mutations are targeted positional updates against this
// single document, so cascade deletes are atomic without transactions.
type QA struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	TidbitID         string             `bson:"tidbitId" json:"tidbitId"`
	TidbitAuthor     string             `bson:"tidbitAuthor" json:"tidbitAuthor"`
	Questions        []Question         `bson:"questions" json:"questions"`
	QuestionComments []QuestionComment  `bson:"questionComments" json:"questionComments"`
	Answers          []Answer           `bson:"answers" json:"answers"`
	AnswerComments   []AnswerComment    `bson:"answerComments" json:"answerComments"`
}

// Question is an embedded QA element. Vote sets hold user IDs; set
// semantics (addToSet + pull) keep a user in at most one of the two.
type Question struct {
	ID           string    `bson:"id" json:"id"`
	AuthorID     string    `bson:"authorId" json:"authorId"`
	QuestionText string    `bson:"questionText" json:"questionText"`
	Upvotes      []string  `bson:"upvotes" json:"-"`
	Downvotes    []string  `bson:"downvotes" json:"-"`
	Pinned       bool      `bson:"pinned" json:"pinned"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	LastModified time.Time `bson:"lastModified" json:"lastModified"`
}

// Answer is an embedded QA element tied to a question.
type Answer struct {
	ID           string    `bson:"id" json:"id"`
	QuestionID   string    `bson:"questionId" json:"questionId"`
	AuthorID     string    `bson:"authorId" json:"authorId"`
	AnswerText   string    `bson:"answerText" json:"answerText"`
	Upvotes      []string  `bson:"upvotes" json:"-"`
	Downvotes    []string  `bson:"downvotes" json:"-"`
	Pinned       bool      `bson:"pinned" json:"pinned"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	LastModified time.Time `bson:"lastModified" json:"lastModified"`
}

// QuestionComment is a comment on a question.
type QuestionComment struct {
	ID           string    `bson:"id" json:"id"`
	QuestionID   string    `bson:"questionId" json:"questionId"`
	AuthorID     string    `bson:"authorId" json:"authorId"`
	CommentText  string    `bson:"commentText" json:"commentText"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	LastModified time.Time `bson:"lastModified" json:"lastModified"`
}

// AnswerComment is a comment on an answer. It carries the question ID too so
// question-delete cascades can pull it with a single array predicate.
type AnswerComment struct {
	ID           string    `bson:"id" json:"id"`
	QuestionID   string    `bson:"questionId" json:"questionId"`
	AnswerID     string    `bson:"answerId" json:"answerId"`
	AuthorID     string    `bson:"authorId" json:"authorId"`
	CommentText  string    `bson:"commentText" json:"commentText"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	LastModified time.Time `bson:"lastModified" json:"lastModified"`
}

// Votes is the compressed voter shape returned to clients. Raw voter-ID
// arrays never leave the server.
type Votes struct {
	VotedByUser bool `json:"votedByUser"`
	Count       int  `json:"count"`
}

// CompressVotes reduces a voter-ID set relative to the requesting user. An
// empty requester (anonymous) always reads as not-voted.
func CompressVotes(voters []string, requestingUser string) Votes {
	v := Votes{Count: len(voters)}
	if requestingUser == "" {
		return v
	}
	for _, id := range voters {
		if id == requestingUser {
			v.VotedByUser = true
			break
		}
	}
	return v
}

// QuestionResponse is the public question shape.
type QuestionResponse struct {
	ID           string    `json:"id"`
	AuthorID     string    `json:"authorId"`
	QuestionText string    `json:"questionText"`
	Upvotes      Votes     `json:"upvotes"`
	Downvotes    Votes     `json:"downvotes"`
	Pinned       bool      `json:"pinned"`
	CreatedAt    time.Time `json:"createdAt"`
	LastModified time.Time `json:"lastModified"`
}

// AnswerResponse is the public answer shape.
type AnswerResponse struct {
	ID           string    `json:"id"`
	QuestionID   string    `json:"questionId"`
	AuthorID     string    `json:"authorId"`
	AnswerText   string    `json:"answerText"`
	Upvotes      Votes     `json:"upvotes"`
	Downvotes    Votes     `json:"downvotes"`
	Pinned       bool      `json:"pinned"`
	CreatedAt    time.Time `json:"createdAt"`
	LastModified time.Time `json:"lastModified"`
}

// ToResponseFor compresses the question's vote sets relative to one user.
func (q Question) ToResponseFor(requestingUser string) QuestionResponse {
	return QuestionResponse{
		ID:           q.ID,
		AuthorID:     q.AuthorID,
		QuestionText: q.QuestionText,
		Upvotes:      CompressVotes(q.Upvotes, requestingUser),
		Downvotes:    CompressVotes(q.Downvotes, requestingUser),
		Pinned:       q.Pinned,
		CreatedAt:    q.CreatedAt,
		LastModified: q.LastModified,
	}
}

// ToResponseFor compresses the answer's vote sets relative to one user.
func (a Answer) ToResponseFor(requestingUser string) AnswerResponse {
	return AnswerResponse{
		ID:           a.ID,
		QuestionID:   a.QuestionID,
		AuthorID:     a.AuthorID,
		AnswerText:   a.AnswerText,
		Upvotes:      CompressVotes(a.Upvotes, requestingUser),
		Downvotes:    CompressVotes(a.Downvotes, requestingUser),
		Pinned:       a.Pinned,
		CreatedAt:    a.CreatedAt,
		LastModified: a.LastModified,
	}
}

// QAResponse is the public QA document shape, compressed relative to the
// requesting user.
type QAResponse struct {
	TidbitID         string             `json:"tidbitId"`
	TidbitAuthor     string             `json:"tidbitAuthor"`
	Questions        []QuestionResponse `json:"questions"`
	QuestionComments []QuestionComment  `json:"questionComments"`
	Answers          []AnswerResponse   `json:"answers"`
	AnswerComments   []AnswerComment    `json:"answerComments"`
}

// ToResponse compresses every vote set relative to the requesting user
// (empty for anonymous reads).
func (qa *QA) ToResponse(requestingUser string) *QAResponse {
	resp := &QAResponse{
		TidbitID:         qa.TidbitID,
		TidbitAuthor:     qa.TidbitAuthor,
		Questions:        make([]QuestionResponse, 0, len(qa.Questions)),
		QuestionComments: qa.QuestionComments,
		Answers:          make([]AnswerResponse, 0, len(qa.Answers)),
		AnswerComments:   qa.AnswerComments,
	}
	if resp.QuestionComments == nil {
		resp.QuestionComments = []QuestionComment{}
	}
	if resp.AnswerComments == nil {
		resp.AnswerComments = []AnswerComment{}
	}
	for _, q := range qa.Questions {
		resp.Questions = append(resp.Questions, q.ToResponseFor(requestingUser))
	}
	for _, a := range qa.Answers {
		resp.Answers = append(resp.Answers, a.ToResponseFor(requestingUser))
	}
	return resp
}

// Vote direction for question/answer rating.
type Vote int

const (
	VoteUp   Vote = 1
	VoteDown Vote = 2
)

// Validate checks enum membership.
func (v Vote) Validate() error {
	if v != VoteUp && v != VoteDown {
		return apperrors.New(apperrors.ErrInvalidVote, "vote must be up or down")
	}
	return nil
}

// QA text bounds.
const (
	MaxQuestionLength  = 300
	MaxAnswerLength    = 1000
	MaxQACommentLength = 300
)

// QuestionTextRequest carries question text for ask/edit.
type QuestionTextRequest struct {
	QuestionText string `json:"questionText"`
}

// Validate bounds the question text.
func (r QuestionTextRequest) Validate() error {
	if err := validation.Validate(r.QuestionText, validation.Required, validation.Length(1, MaxQuestionLength)); err != nil {
		return apperrors.New(apperrors.ErrInvalidQuestionText, "question must be non-empty and at most 300 characters")
	}
	return nil
}

// AnswerTextRequest carries answer text for answer/edit.
type AnswerTextRequest struct {
	AnswerText string `json:"answerText"`
}

// Validate bounds the answer text.
func (r AnswerTextRequest) Validate() error {
	if err := validation.Validate(r.AnswerText, validation.Required, validation.Length(1, MaxAnswerLength)); err != nil {
		return apperrors.New(apperrors.ErrInvalidAnswerText, "answer must be non-empty and at most 1000 characters")
	}
	return nil
}

// CommentTextRequest carries comment text for comment/edit.
type CommentTextRequest struct {
	CommentText string `json:"commentText"`
}

// Validate bounds the comment text.
func (r CommentTextRequest) Validate() error {
	if err := validation.Validate(r.CommentText, validation.Required, validation.Length(1, MaxQACommentLength)); err != nil {
		return apperrors.New(apperrors.ErrInvalidCommentText, "comment must be non-empty and at most 300 characters")
	}
	return nil
}

// RateRequest carries a vote direction.
type RateRequest struct {
	Vote Vote `json:"vote"`
}

// Validate checks the vote enum.
func (r RateRequest) Validate() error {
	return r.Vote.Validate()
}

// PinRequest carries the desired pinned state.
type PinRequest struct {
	Pin bool `json:"pin"`
}
