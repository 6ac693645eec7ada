package form

import "strings"

// Kind is the closed set of entry field kinds. Each kind carries its own
// validation rule and HTML input type.
type Kind int

const (
	KindText Kind = iota
	KindDate
	KindPhone
	KindCurrency
	KindEmail
)

const DateLayout = "2006-01-02"

func (k Kind) String() string {
	switch k {
	case KindDate:
		return "date"
	case KindPhone:
		return "phone"
	case KindCurrency:
		return "currency"
	case KindEmail:
		return "email"
	default:
		return "text"
	}
}

func (k Kind) InputType() string {
	switch k {
	case KindPhone:
		return "tel"
	case KindDate:
		return "date"
	default:
		return "text"
	}
}

func (k Kind) rule() string {
	switch k {
	case KindDate:
		return "datetime=" + DateLayout
	case KindPhone:
		return "numeric,min=10,max=15"
	case KindCurrency:
		return "numeric"
	case KindEmail:
		return "email"
	default:
		return ""
	}
}

type InputField struct {
	Id       FieldId
	Kind     Kind
	Required bool
}

func (f InputField) Label() string {
	return Label(f.Id)
}

func (f InputField) InputType() string {
	return f.Kind.InputType()
}

func (f InputField) rule() string {
	parts := []string{"omitempty"}
	if f.Required {
		parts[0] = "required"
	}
	if r := f.Kind.rule(); r != "" {
		parts = append(parts, r)
	}
	return strings.Join(parts, ",")
}

// entryLayout is every field a received-moi entry form can show, in render
// order. Address appears expanded in the catalog's address slot.
var entryLayout = []InputField{
	{Id: FullName, Kind: KindText, Required: true},
	{Id: Area, Kind: KindText, Required: true},
	{Id: District, Kind: KindText, Required: true},
	{Id: State, Kind: KindText, Required: true},
	{Id: PaymentAmount, Kind: KindCurrency, Required: true},
	{Id: Surname, Kind: KindText},
	{Id: FatherName, Kind: KindText},
	{Id: MotherName, Kind: KindText},
	{Id: PhoneNumber, Kind: KindPhone},
	{Id: EmailAddress, Kind: KindEmail},
	{Id: Occupation, Kind: KindText},
	{Id: SpouseName, Kind: KindText},
	{Id: Date, Kind: KindDate, Required: true},
}

func isEntryField(id FieldId) bool {
	for _, f := range entryLayout {
		if f.Id == id {
			return true
		}
	}
	return false
}
