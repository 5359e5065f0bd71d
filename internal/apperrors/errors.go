package apperrors

import "fmt"

// ErrorCode identifies a distinct user-facing failure. Codes are part of the
// API contract; never renumber existing values.
type ErrorCode int

const (
	// ErrInternal covers every internal failure (unacknowledged write, zero
	// matched/modified count, missing parent document). Detail stays in the
	// server logs, never in the response body.
	ErrInternal ErrorCode = 1

	ErrUnauthorized            ErrorCode = 2
	ErrEmailAlreadyRegistered  ErrorCode = 3
	ErrNoAccountExistsForEmail ErrorCode = 4
	ErrIncorrectPassword       ErrorCode = 5
	ErrInvalidEmail            ErrorCode = 6
	ErrInvalidPassword         ErrorCode = 7
	ErrInvalidName             ErrorCode = 8
	ErrInvalidBio              ErrorCode = 9

	ErrInvalidTidbitName         ErrorCode = 10
	ErrInvalidTidbitDescription  ErrorCode = 11
	ErrInvalidTags               ErrorCode = 12
	ErrInvalidTag                ErrorCode = 13
	ErrInvalidLanguage           ErrorCode = 14
	ErrInvalidCode               ErrorCode = 15
	ErrInvalidIntroduction       ErrorCode = 16
	ErrInvalidConclusion         ErrorCode = 17
	ErrInvalidHighlightedComment ErrorCode = 18
	ErrInvalidFileStructure      ErrorCode = 19

	ErrInvalidStoryName        ErrorCode = 20
	ErrInvalidStoryDescription ErrorCode = 21
	ErrInvalidTidbitPointer    ErrorCode = 22
	ErrTidbitDoesNotExist      ErrorCode = 23
	ErrContentDoesNotExist     ErrorCode = 24
	ErrInvalidContentPointer   ErrorCode = 25
	ErrInvalidRating           ErrorCode = 26
	ErrStoryDoesNotExist       ErrorCode = 27

	ErrQAAlreadyExists     ErrorCode = 28
	ErrQAObjectNotFound    ErrorCode = 29
	ErrInvalidQuestionText ErrorCode = 30
	ErrInvalidAnswerText   ErrorCode = 31
	ErrInvalidCommentText  ErrorCode = 32
	ErrInvalidVote         ErrorCode = 33

	ErrNotificationNotFound ErrorCode = 34
	ErrInvalidSearchOptions ErrorCode = 35
	ErrInvalidID            ErrorCode = 36
)

// Error is the wire shape for every user-facing failure.
type Error struct {
	Code    ErrorCode `json:"errorCode"`
	Message string    `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("error %d: %s", e.Code, e.Message)
}

// New builds a coded error.
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf builds a coded error with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps any internal failure into the single generic code. The
// underlying error is intentionally dropped from the message.
func Internal() *Error {
	return &Error{Code: ErrInternal, Message: "internal error"}
}

// NotFoundQA is the shared not-found-class error for Q&A targets. Non-author
// edits/deletes fail the filter match and surface as this same error, so
// "forbidden" is indistinguishable from "does not exist".
func NotFoundQA() *Error {
	return &Error{Code: ErrQAObjectNotFound, Message: "no matching question, answer, or comment"}
}

// AsError returns err as an *Error, or wraps it as an internal error.
// Services return *Error for user-facing failures and plain errors for
// internal ones; handlers normalize through this.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*Error); ok {
		return appErr
	}
	return Internal()
}
