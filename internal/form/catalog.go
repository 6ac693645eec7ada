// Package form holds the intake-form logic shared by the web frontend and the
// CLI: the field catalog, event definitions, the per-event received-moi entry
// form and the fixed paid-moi form.
package form

import "slices"

type FieldId string

// Catalog ids, selectable per event.
const (
	FullName      FieldId = "fullName"
	Address       FieldId = "address"
	PaymentAmount FieldId = "paymentAmount"
	Surname       FieldId = "surname"
	FatherName    FieldId = "fatherName"
	MotherName    FieldId = "motherName"
	PhoneNumber   FieldId = "phoneNumber"
	EmailAddress  FieldId = "emailAddress"
	Occupation    FieldId = "occupation"
	SpouseName    FieldId = "spouseName"
)

// Entry-form only ids. Address is never rendered itself, it stands for the
// Area/District/State trio.
const (
	Date     FieldId = "date"
	Area     FieldId = "area"
	District FieldId = "district"
	State    FieldId = "state"
)

type FieldDescriptor struct {
	Id               FieldId
	Label            string
	EnabledByDefault bool
	Required         bool
}

// Display order.
var catalog = []FieldDescriptor{
	{Id: FullName, Label: "Full Name", EnabledByDefault: true, Required: true},
	{Id: Address, Label: "Address", EnabledByDefault: true, Required: true},
	{Id: PaymentAmount, Label: "Payment Amount", EnabledByDefault: true, Required: true},
	{Id: Surname, Label: "Surname"},
	{Id: FatherName, Label: "Father's Name"},
	{Id: MotherName, Label: "Mother's Name"},
	{Id: PhoneNumber, Label: "Phone Number"},
	{Id: EmailAddress, Label: "Email Address"},
	{Id: Occupation, Label: "Occupation"},
	{Id: SpouseName, Label: "Spouse Name"},
}

func Catalog() []FieldDescriptor {
	return slices.Clone(catalog)
}

func Lookup(id FieldId) (FieldDescriptor, bool) {
	for _, d := range catalog {
		if d.Id == id {
			return d, true
		}
	}
	return FieldDescriptor{}, false
}

func IsCatalogId(s string) bool {
	_, ok := Lookup(FieldId(s))
	return ok
}

// DefaultSelection lists the ids an event form starts with.
func DefaultSelection() []string {
	ids := make([]string, 0, len(catalog))
	for _, d := range catalog {
		if d.EnabledByDefault || d.Required {
			ids = append(ids, string(d.Id))
		}
	}
	return ids
}
