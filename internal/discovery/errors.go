package discovery

import "fmt"

// ValidationError reports a malformed query parameter. Handlers surface it
// as a 400 with a machine-readable code; it is never silently defaulted.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// DataIntegrityError reports an event referencing a category or organizer
// id that cannot be resolved. This is a defect in the stored data, not a
// user error; it surfaces as a 500 and must be logged, never papered over
// by omitting the field.
type DataIntegrityError struct {
	EventID string
	Kind    string // "category" or "organizer"
	RefID   string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("event %s references unresolvable %s %q", e.EventID, e.Kind, e.RefID)
}
