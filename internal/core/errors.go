package core

import "fmt"

// ValidationError reports input that could not be normalized into an entity
// field: an unparseable date, a non-numeric amount, and so on.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// NotFoundError reports a lookup or update by an id the store does not hold.
type NotFoundError struct {
	Kind string // "transaction" or "budget"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// PersistenceError wraps a failure to read or write a backing document.
type PersistenceError struct {
	Op   string // "load", "save", "import", "export"
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
