package ledger

import "fmt"

// ValidationError reports the first offending input field. The message is
// safe to return to the client verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalidf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError is returned when a delete target does not exist or belongs
// to another user. The two cases are deliberately indistinguishable so a
// caller cannot probe for rows it does not own.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// StorageError wraps a persistence failure. Its message never exposes driver
// details; callers log the wrapped error and answer with a generic 500.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return "storage: " + e.Op + " failed" }

func (e *StorageError) Unwrap() error { return e.Err }
