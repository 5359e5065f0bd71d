package models

import (
	"strings"
	"testing"

	"codetidbit/internal/apperrors"
)

func TestCompressVotes(t *testing.T) {
	voters := []string{"user-1", "user-2", "user-3"}

	tests := []struct {
		name            string
		voters          []string
		requestingUser  string
		wantCount       int
		wantVotedByUser bool
	}{
		{"requester voted", voters, "user-2", 3, true},
		{"requester did not vote", voters, "user-9", 3, false},
		{"anonymous reads as not voted", voters, "", 3, false},
		{"empty set", nil, "user-1", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompressVotes(tt.voters, tt.requestingUser)
			if got.Count != tt.wantCount {
				t.Errorf("Count = %d, expected %d", got.Count, tt.wantCount)
			}
			if got.VotedByUser != tt.wantVotedByUser {
				t.Errorf("VotedByUser = %v, expected %v", got.VotedByUser, tt.wantVotedByUser)
			}
		})
	}
}

func TestQAToResponse_CompressesVotesPerUser(t *testing.T) {
	qa := &QA{
		TidbitID:     "507f1f77bcf86cd799439011",
		TidbitAuthor: "author-1",
		Questions: []Question{
			{ID: "q-1", AuthorID: "user-1", Upvotes: []string{"user-2", "user-3"}, Downvotes: []string{"user-4"}},
		},
		Answers: []Answer{
			{ID: "a-1", QuestionID: "q-1", AuthorID: "user-2", Upvotes: []string{"user-1"}},
		},
	}

	resp := qa.ToResponse("user-2")

	q := resp.Questions[0]
	if q.Upvotes.Count != 2 || !q.Upvotes.VotedByUser {
		t.Errorf("Expected question upvotes (2, voted), got (%d, %v)", q.Upvotes.Count, q.Upvotes.VotedByUser)
	}
	if q.Downvotes.Count != 1 || q.Downvotes.VotedByUser {
		t.Errorf("Expected question downvotes (1, not voted), got (%d, %v)", q.Downvotes.Count, q.Downvotes.VotedByUser)
	}

	a := resp.Answers[0]
	if a.Upvotes.Count != 1 || a.Upvotes.VotedByUser {
		t.Errorf("Expected answer upvotes (1, not voted), got (%d, %v)", a.Upvotes.Count, a.Upvotes.VotedByUser)
	}
}

func TestQAToResponse_NilCommentSlicesBecomeEmpty(t *testing.T) {
	qa := &QA{TidbitID: "507f1f77bcf86cd799439011"}

	resp := qa.ToResponse("")
	if resp.QuestionComments == nil || resp.AnswerComments == nil {
		t.Error("Expected empty comment slices, got nil")
	}
}

func errorCode(t *testing.T, err error) apperrors.ErrorCode {
	t.Helper()
	appErr, ok := err.(*apperrors.Error)
	if !ok {
		t.Fatalf("Expected *apperrors.Error, got %T", err)
	}
	return appErr.Code
}

func TestQuestionTextRequest_Validate(t *testing.T) {
	if err := (QuestionTextRequest{QuestionText: "How does this decoder work?"}).Validate(); err != nil {
		t.Errorf("Expected valid question, got %v", err)
	}

	if err := (QuestionTextRequest{}).Validate(); err == nil {
		t.Error("Expected error for empty question")
	} else if errorCode(t, err) != apperrors.ErrInvalidQuestionText {
		t.Errorf("Expected question text code, got %d", errorCode(t, err))
	}

	long := QuestionTextRequest{QuestionText: strings.Repeat("a", MaxQuestionLength+1)}
	if err := long.Validate(); err == nil {
		t.Error("Expected error for over-length question")
	}
}

func TestAnswerTextRequest_Validate(t *testing.T) {
	if err := (AnswerTextRequest{AnswerText: "It folds the list."}).Validate(); err != nil {
		t.Errorf("Expected valid answer, got %v", err)
	}

	if err := (AnswerTextRequest{}).Validate(); err == nil {
		t.Error("Expected error for empty answer")
	} else if errorCode(t, err) != apperrors.ErrInvalidAnswerText {
		t.Errorf("Expected answer text code, got %d", errorCode(t, err))
	}

	long := AnswerTextRequest{AnswerText: strings.Repeat("a", MaxAnswerLength+1)}
	if err := long.Validate(); err == nil {
		t.Error("Expected error for over-length answer")
	}
}

func TestCommentTextRequest_Validate(t *testing.T) {
	if err := (CommentTextRequest{CommentText: "Nice answer."}).Validate(); err != nil {
		t.Errorf("Expected valid comment, got %v", err)
	}

	if err := (CommentTextRequest{}).Validate(); err == nil {
		t.Error("Expected error for empty comment")
	} else if errorCode(t, err) != apperrors.ErrInvalidCommentText {
		t.Errorf("Expected comment text code, got %d", errorCode(t, err))
	}
}

func TestVote_Validate(t *testing.T) {
	if err := VoteUp.Validate(); err != nil {
		t.Errorf("Expected VoteUp valid, got %v", err)
	}
	if err := VoteDown.Validate(); err != nil {
		t.Errorf("Expected VoteDown valid, got %v", err)
	}
	if err := Vote(0).Validate(); err == nil {
		t.Error("Expected error for zero vote")
	}
	if err := Vote(3).Validate(); err == nil {
		t.Error("Expected error for out-of-range vote")
	}
}
