package types

import "fmt"

// ValidationError signals a rejected user input (blank business description,
// bad section key). Nothing was mutated and no external call was made.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// NewValidationError creates a ValidationError with a formatted message.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// GenerationError wraps a failure of the plan-generation provider. The draft
// plan is left empty; the caller should suggest a retry.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("plan generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// PersistenceError wraps a storage write failure. The in-memory draft is kept
// so the user can retry the save.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// ImportFormatError signals a malformed or incomplete import payload. The
// store was not mutated.
type ImportFormatError struct {
	Reason string
}

func (e *ImportFormatError) Error() string {
	return fmt.Sprintf("invalid import payload: %s", e.Reason)
}

// ChatError wraps a chat provider failure. The chat session that produced it
// must be discarded; the next message starts a fresh session.
type ChatError struct {
	Err error
}

func (e *ChatError) Error() string {
	return fmt.Sprintf("chat failed: %v", e.Err)
}

func (e *ChatError) Unwrap() error {
	return e.Err
}
