package assistant

import "fmt"

type ErrorCode string

const (
	ErrorInvalidInput ErrorCode = "INVALID_INPUT"
	ErrorNotFound     ErrorCode = "NOT_FOUND"
	ErrorCollaborator ErrorCode = "COLLABORATOR_ERROR"
	ErrorInternal     ErrorCode = "INTERNAL_ERROR"
)

// Error carries a stable code plus a short machine-readable reason so the
// transport layer can decide whether a retry makes sense.
type Error struct {
	Code           ErrorCode
	Reason         string
	ConversationID string
	Err            error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("assistant: %s (%s)", e.Code, e.Reason)
	}
	return fmt.Sprintf("assistant: %s (%s): %v", e.Code, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(code ErrorCode, reason, conversationID string, err error) *Error {
	return &Error{Code: code, Reason: reason, ConversationID: conversationID, Err: err}
}
