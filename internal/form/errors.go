package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrValidation = errors.New("validation error")

type FieldError struct {
	Field   string
	Message string
}

// ValidationError is the set of field-level problems that block a submission.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// For returns the first message for field, or "". Safe on a nil receiver so
// templates can call it unconditionally.
func (e *ValidationError) For(field string) string {
	if e == nil {
		return ""
	}
	for _, fe := range e.Errors {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

func (e *ValidationError) Fields() []string {
	if e == nil {
		return nil
	}
	out := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		out = append(out, fe.Field)
	}
	return out
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}

// AsValidationError unwraps err into a *ValidationError, if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func fromValidator(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	out := &ValidationError{Errors: make([]FieldError, 0, len(errs))}
	for _, fe := range errs {
		field := fe.Field()
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		out.Errors = append(out.Errors, FieldError{
			Field:   field,
			Message: message(Label(FieldId(field)), fe.Tag(), fe.Param(), fe.Value()),
		})
	}
	return out
}

func message(label, tag, param string, value any) string {
	switch tag {
	case "required":
		return label + " is required"
	case "numeric":
		return label + " must be a number"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, param)
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", label, param)
	case "email":
		return label + " must be a valid email address"
	case "datetime":
		return label + " must be a date (YYYY-MM-DD)"
	case "catalogfield":
		return fmt.Sprintf("unknown form field %q", value)
	default:
		return label + " is invalid"
	}
}
