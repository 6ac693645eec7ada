package model

import "strings"

type Address struct {
	Area     string `json:"area"`
	District string `json:"district"`
	State    string `json:"state"`
}

func (a Address) String() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{a.Area, a.District, a.State} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// EventCreateRequest is the body of POST /event/create. FormFields holds every
// catalog field id, enabled or not.
type EventCreateRequest struct {
	EventName    string          `json:"eventName"`
	EventDate    string          `json:"eventDate"`
	EventType    string          `json:"eventType"`
	EventAddress Address         `json:"eventAddress"`
	FormFields   map[string]bool `json:"formFields"`
}

type EventEntity struct {
	Id           string          `json:"_id"`
	EventName    string          `json:"eventName"`
	EventDate    string          `json:"eventDate"`
	EventType    string          `json:"eventType"`
	EventAddress Address         `json:"eventAddress"`
	FormFields   map[string]bool `json:"formFields"`
}

// EnabledFieldIds returns the ids switched on in FormFields, unordered.
func (e EventEntity) EnabledFieldIds() []string {
	ids := make([]string, 0, len(e.FormFields))
	for id, on := range e.FormFields {
		if on {
			ids = append(ids, id)
		}
	}
	return ids
}
