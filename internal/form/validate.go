package form

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields under their wire names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})

	_ = v.RegisterValidation("catalogfield", func(fl validator.FieldLevel) bool {
		return IsCatalogId(fl.Field().String())
	})

	return v
}

// ValidateStruct validates a tagged struct and reports failures as a
// *ValidationError.
func ValidateStruct(i any) error {
	if err := validate.Struct(i); err != nil {
		return fromValidator(err)
	}
	return nil
}

func validateVar(field, value, rule string) *FieldError {
	err := validate.Var(value, rule)
	if err == nil {
		return nil
	}

	label := Label(FieldId(field))
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		return &FieldError{Field: field, Message: message(label, errs[0].Tag(), errs[0].Param(), value)}
	}
	return &FieldError{Field: field, Message: label + " is invalid"}
}
