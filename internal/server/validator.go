package server

import "github.com/tomuthu-engineer/moibook/internal/form"

// Validator plugs the form package's rules into echo's c.Validate.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

func (v *Validator) Validate(i any) error {
	return form.ValidateStruct(i)
}
