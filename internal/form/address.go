package form

import (
	"net/url"
	"strings"

	"github.com/tomuthu-engineer/moibook/internal/model"
)

// FlatValues is the form representation of an entry: one string per rendered
// input, the address trio included as three separate keys.
type FlatValues map[FieldId]string

// ValuesFrom reads the given fields out of posted form data, trimmed.
func ValuesFrom(src url.Values, fields []InputField) FlatValues {
	out := make(FlatValues, len(fields))
	for _, f := range fields {
		out[f.Id] = strings.TrimSpace(src.Get(string(f.Id)))
	}
	return out
}

// Collapse converts the flat form representation into the wire one: area,
// district and state move under Address, everything else stays flat.
func Collapse(flat FlatValues) model.EntryFields {
	out := model.EntryFields{
		Values: make(map[string]string, len(flat)),
		Address: model.Address{
			Area:     flat[Area],
			District: flat[District],
			State:    flat[State],
		},
	}
	for id, v := range flat {
		switch id {
		case Area, District, State, Address:
			continue
		}
		out.Values[string(id)] = v
	}
	return out
}

// Expand is the inverse of Collapse.
func Expand(fields model.EntryFields) FlatValues {
	out := make(FlatValues, len(fields.Values)+3)
	for k, v := range fields.Values {
		out[FieldId(k)] = v
	}
	out[Area] = fields.Address.Area
	out[District] = fields.Address.District
	out[State] = fields.Address.State
	return out
}
