package domain

import "fmt"

type ValidationKind string

const (
	KindRequiredField  ValidationKind = "required_field"
	KindMinLength      ValidationKind = "min_length"
	KindBadEmailFormat ValidationKind = "bad_email_format"
	KindEmailInUse     ValidationKind = "email_in_use"
	KindEmailNotFound  ValidationKind = "email_not_found"
	KindAccessDenied   ValidationKind = "access_denied"
	KindUnauthorized   ValidationKind = "unauthorized"
)

// ValidationError is an expected, client-correctable failure. Field holds the
// already-localized field name; Min is only set for KindMinLength.
type ValidationError struct {
	Kind  ValidationKind
	Field string
	Min   int
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindRequiredField:
		return fmt.Sprintf("field %s is required", e.Field)
	case KindMinLength:
		return fmt.Sprintf("field %s must have at least %d characters", e.Field, e.Min)
	default:
		return string(e.Kind)
	}
}

// Is lets errors.Is match on kind alone, e.g. errors.Is(err, ErrEmailInUse).
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Field == "" || t.Field == e.Field)
}

func RequiredField(field string) *ValidationError {
	return &ValidationError{Kind: KindRequiredField, Field: field}
}

func MinLength(field string, min int) *ValidationError {
	return &ValidationError{Kind: KindMinLength, Field: field, Min: min}
}

var (
	ErrBadEmailFormat = &ValidationError{Kind: KindBadEmailFormat}
	ErrEmailInUse     = &ValidationError{Kind: KindEmailInUse}
	ErrEmailNotFound  = &ValidationError{Kind: KindEmailNotFound}
	ErrAccessDenied   = &ValidationError{Kind: KindAccessDenied}
	ErrUnauthorized   = &ValidationError{Kind: KindUnauthorized}
)
