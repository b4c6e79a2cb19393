package common

import "fmt"

// ValidationError reports a missing or mistyped request field. The rendered
// messages match the gateway's public contract, so handlers can return
// Error() verbatim.
type ValidationError struct {
	Field   string
	Want    string // expected type name, e.g. "string", "boolean"
	Missing bool
}

func (e *ValidationError) Error() string {
	if e.Missing {
		return fmt.Sprintf("incomplete parameters. please pass in the %s parameter.", e.Field)
	}
	return fmt.Sprintf("Please pass in the %s parameter as a %s", e.Field, e.Want)
}

// MissingParam reports an absent request field.
func MissingParam(field string) *ValidationError {
	return &ValidationError{Field: field, Missing: true}
}

// WrongType reports a request field of the wrong JSON type.
func WrongType(field, want string) *ValidationError {
	return &ValidationError{Field: field, Want: want}
}
