package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

const AddressKey = "address"

// EntryFields is the wire shape of a received-moi entry's formFields: flat
// string values with the address trio nested under "address".
type EntryFields struct {
	Values  map[string]string
	Address Address
}

func (f EntryFields) Value(key string) string {
	return f.Values[key]
}

func (f EntryFields) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(f.Values)+1)
	for k, v := range f.Values {
		out[k] = v
	}
	out[AddressKey] = f.Address
	return json.Marshal(out)
}

func (f *EntryFields) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	f.Values = make(map[string]string, len(raw))
	f.Address = Address{}
	for k, v := range raw {
		if k == AddressKey {
			if err := json.Unmarshal(v, &f.Address); err != nil {
				return fmt.Errorf("formFields.address: %w", err)
			}
			continue
		}
		f.Values[k] = rawString(v)
	}

	return nil
}

// rawString keeps numbers and booleans in their literal form, the backend is
// not consistent about quoting paymentAmount.
func rawString(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	if string(v) == "null" {
		return ""
	}
	return string(v)
}

// ReceivedMoiSubmission is the body of the returns create call.
type ReceivedMoiSubmission struct {
	EventId    string      `json:"eventId"`
	FormFields EntryFields `json:"formFields"`
}

type ReceivedMoiEntry struct {
	Id         string      `json:"_id"`
	EventId    string      `json:"eventId"`
	CreatedBy  string      `json:"createdBy"`
	FormFields EntryFields `json:"formFields"`
	CreatedAt  string      `json:"createdAt"`
	UpdatedAt  string      `json:"updatedAt"`
}

func (e ReceivedMoiEntry) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, s := range []string{
		e.FormFields.Value("fullName"),
		e.FormFields.Address.Area,
		e.FormFields.Value("paymentAmount"),
	} {
		if strings.Contains(strings.ToLower(s), term) {
			return true
		}
	}
	return false
}

func FilterReceived(entries []ReceivedMoiEntry, term string) []ReceivedMoiEntry {
	out := make([]ReceivedMoiEntry, 0, len(entries))
	for _, e := range entries {
		if e.Matches(term) {
			out = append(out, e)
		}
	}
	return out
}
