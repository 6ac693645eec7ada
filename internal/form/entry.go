package form

import (
	"slices"
	"strings"
	"time"

	"github.com/tomuthu-engineer/moibook/internal/model"
)

// EnabledFields is an event's field selection as carried to the entry form.
type EnabledFields map[FieldId]bool

// requiredEntryFields are on every entry form whatever the event selected.
var requiredEntryFields = []FieldId{FullName, PaymentAmount, Date, Area, District, State}

// EnabledFieldsFrom keeps the known ids of a backend formFields mapping and
// drops the rest.
func EnabledFieldsFrom(m map[string]bool) EnabledFields {
	out := make(EnabledFields, len(m))
	for k, on := range m {
		id := FieldId(k)
		if id == Address || isEntryField(id) {
			out[id] = on
		}
	}
	return out
}

// ParseEnabledFields builds a selection from a list of ids, as carried in a
// comma separated query parameter.
func ParseEnabledFields(ids []string) EnabledFields {
	m := make(map[string]bool, len(ids))
	for _, raw := range ids {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				m[id] = true
			}
		}
	}
	return EnabledFieldsFrom(m)
}

// Ids lists the enabled ids, sorted.
func (e EnabledFields) Ids() []string {
	out := make([]string, 0, len(e))
	for id, on := range e {
		if on {
			out = append(out, string(id))
		}
	}
	slices.Sort(out)
	return out
}

func (e EnabledFields) Query() string {
	return strings.Join(e.Ids(), ",")
}

// ResolveFields derives the concrete inputs of an entry form: the required
// set, overlaid with the selection (required ids cannot be switched off),
// with address replaced by area, district and state. The result is in render
// order.
func ResolveFields(enabled EnabledFields) []InputField {
	set := make(map[FieldId]bool, len(entryLayout)+1)
	for _, id := range requiredEntryFields {
		set[id] = true
	}
	for id, on := range enabled {
		if slices.Contains(requiredEntryFields, id) {
			continue
		}
		set[id] = on
	}

	if set[Address] {
		set[Area] = true
		set[District] = true
		set[State] = true
	}
	delete(set, Address)

	fields := make([]InputField, 0, len(set))
	for _, f := range entryLayout {
		if set[f.Id] {
			fields = append(fields, f)
		}
	}
	return fields
}

// DefaultValue is today's date for the date field and "" for anything else.
func DefaultValue(id FieldId, now time.Time) string {
	if id == Date {
		return now.Format(DateLayout)
	}
	return ""
}

// EntryForm is the received-moi entry form of one event.
type EntryForm struct {
	EventId string
	Fields  []InputField
}

// NewEntryForm builds the form from the selection carried from the event
// picker. A nil selection yields the required fields only.
func NewEntryForm(eventId string, enabled EnabledFields) *EntryForm {
	return &EntryForm{
		EventId: eventId,
		Fields:  ResolveFields(enabled),
	}
}

func (f *EntryForm) Has(id FieldId) bool {
	for _, field := range f.Fields {
		if field.Id == id {
			return true
		}
	}
	return false
}

func (f *EntryForm) Ids() []FieldId {
	out := make([]FieldId, len(f.Fields))
	for i, field := range f.Fields {
		out[i] = field.Id
	}
	return out
}

func (f *EntryForm) Defaults(now time.Time) FlatValues {
	out := make(FlatValues, len(f.Fields))
	for _, field := range f.Fields {
		out[field.Id] = DefaultValue(field.Id, now)
	}
	return out
}

// RenderedField is everything a template needs for one labelled input.
type RenderedField struct {
	Id        string
	Label     string
	InputType string
	Value     string
	Required  bool
	Error     string
}

func (f *EntryForm) Render(values FlatValues, err error) []RenderedField {
	ve, _ := AsValidationError(err)

	out := make([]RenderedField, len(f.Fields))
	for i, field := range f.Fields {
		out[i] = RenderedField{
			Id:        string(field.Id),
			Label:     field.Label(),
			InputType: field.InputType(),
			Value:     values[field.Id],
			Required:  field.Required,
			Error:     ve.For(string(field.Id)),
		}
	}
	return out
}

// Validate applies each field kind's rule to the submitted values.
func (f *EntryForm) Validate(values FlatValues) error {
	var errs []FieldError
	for _, field := range f.Fields {
		if fe := validateVar(string(field.Id), strings.TrimSpace(values[field.Id]), field.rule()); fe != nil {
			errs = append(errs, *fe)
		}
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// Payload reshapes submitted values into the backend's shape. Only the form's
// own fields are taken, and the address trio is nested again.
func (f *EntryForm) Payload(values FlatValues) model.ReceivedMoiSubmission {
	flat := make(FlatValues, len(f.Fields))
	for _, field := range f.Fields {
		flat[field.Id] = strings.TrimSpace(values[field.Id])
	}

	return model.ReceivedMoiSubmission{
		EventId:    f.EventId,
		FormFields: Collapse(flat),
	}
}

func (f *EntryForm) Submit(values FlatValues) (model.ReceivedMoiSubmission, error) {
	if err := f.Validate(values); err != nil {
		return model.ReceivedMoiSubmission{}, err
	}
	return f.Payload(values), nil
}
