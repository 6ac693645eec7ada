package model

import "strings"

type PaidMoiEntry struct {
	Id              string  `json:"_id,omitempty"`
	BeneficiaryName string  `json:"beneficiaryName"`
	Amount          float64 `json:"amount"`
	Date            string  `json:"date"`
	EventType       string  `json:"eventType"`
	Area            string  `json:"area"`
	District        string  `json:"district"`
	State           string  `json:"state"`
	Remarks         string  `json:"remarks,omitempty"`
	Time            string  `json:"time"`
}

// Matches reports whether term occurs, case-insensitively, in the beneficiary
// name, event type or area. An empty term matches everything.
func (e PaidMoiEntry) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, s := range []string{e.BeneficiaryName, e.EventType, e.Area} {
		if strings.Contains(strings.ToLower(s), term) {
			return true
		}
	}
	return false
}

func FilterPaid(entries []PaidMoiEntry, term string) []PaidMoiEntry {
	out := make([]PaidMoiEntry, 0, len(entries))
	for _, e := range entries {
		if e.Matches(term) {
			out = append(out, e)
		}
	}
	return out
}
