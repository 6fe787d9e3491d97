package errors

import "errors"

// Sentinel errors for the façade and handlers to map onto results and HTTP
// status. Denials are not errors; they are verdicts (see application/authz).
var (
	ErrNotFound           = errors.New("referenced entity not found")
	ErrUserExists         = errors.New("user already exists with this email")
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrConfirmationLocked: revoking a confirmation after both sides have
	// confirmed; past activation the only retraction is deletion.
	ErrConfirmationLocked = errors.New("confirmation is locked once active")
	// ErrSelfSupply guards the supplier != purchaser invariant before any
	// write reaches the store.
	ErrSelfSupply = errors.New("a company cannot supply itself")
)

// ValidationError carries store- or input-level constraint failures keyed by
// field name, e.g. a duplicate unique key or a missing required field. The
// caller may retry with corrected input; no partial write has happened.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError creates a ValidationError with a single field message.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {message}}}
}

// Add appends a message for a field and returns the error for chaining.
func (e *ValidationError) Add(field, message string) *ValidationError {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], message)
	return e
}

func (e *ValidationError) Error() string {
	for field, msgs := range e.Fields {
		if len(msgs) > 0 {
			return field + " " + msgs[0]
		}
	}
	return "validation failed"
}

// AsValidation unwraps err into a ValidationError, or returns nil.
func AsValidation(err error) *ValidationError {
	var v *ValidationError
	if errors.As(err, &v) {
		return v
	}
	return nil
}
