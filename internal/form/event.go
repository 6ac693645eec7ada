package form

import (
	"slices"
	"strings"
	"time"

	"github.com/tomuthu-engineer/moibook/internal/model"
)

// EventInput is the flat event definition as typed by the user. FormFields
// holds the selected catalog ids.
type EventInput struct {
	EventName  string   `form:"eventName" json:"eventName" validate:"required"`
	EventDate  string   `form:"eventDate" json:"eventDate" validate:"required,datetime=2006-01-02"`
	EventType  string   `form:"eventType" json:"eventType" validate:"required"`
	Area       string   `form:"area" json:"area" validate:"required"`
	District   string   `form:"district" json:"district" validate:"required"`
	State      string   `form:"state" json:"state" validate:"required"`
	FormFields []string `form:"formFields" json:"formFields" validate:"dive,catalogfield"`
}

// NewEventInput returns the blank event form: today's date and the default
// field selection.
func NewEventInput(now time.Time) EventInput {
	return EventInput{
		EventDate:  now.Format(DateLayout),
		FormFields: DefaultSelection(),
	}
}

func (in EventInput) Selected(id FieldId) bool {
	return slices.Contains(in.FormFields, string(id))
}

func (in EventInput) normalized() EventInput {
	out := EventInput{
		EventName: strings.TrimSpace(in.EventName),
		EventDate: strings.TrimSpace(in.EventDate),
		EventType: strings.TrimSpace(in.EventType),
		Area:      strings.TrimSpace(in.Area),
		District:  strings.TrimSpace(in.District),
		State:     strings.TrimSpace(in.State),
	}
	for _, id := range in.FormFields {
		out.FormFields = append(out.FormFields, strings.TrimSpace(id))
	}
	return out
}

// ValidateEvent rejects blank event details and form field ids that are not
// in the catalog.
func ValidateEvent(in EventInput) error {
	return ValidateStruct(in.normalized())
}

// BuildEventPayload maps the input onto the create request. Every catalog id
// ends up in FormFields; required ids are always true.
func BuildEventPayload(in EventInput) model.EventCreateRequest {
	in = in.normalized()

	fields := make(map[string]bool, len(catalog))
	for _, d := range catalog {
		fields[string(d.Id)] = d.Required || in.Selected(d.Id)
	}

	return model.EventCreateRequest{
		EventName: in.EventName,
		EventDate: in.EventDate,
		EventType: in.EventType,
		EventAddress: model.Address{
			Area:     in.Area,
			District: in.District,
			State:    in.State,
		},
		FormFields: fields,
	}
}

func NewEvent(in EventInput) (model.EventCreateRequest, error) {
	if err := ValidateEvent(in); err != nil {
		return model.EventCreateRequest{}, err
	}
	return BuildEventPayload(in), nil
}
