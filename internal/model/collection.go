package model

import (
	"bytes"
	"encoding/json"
)

// EventCollection decodes GET /event/all, which answers either with a bare
// array or with {"events": [...]}.
type EventCollection []EventEntity

func (c *EventCollection) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var events []EventEntity
		if err := json.Unmarshal(data, &events); err != nil {
			return err
		}
		*c = events
		return nil
	}

	var wrapped struct {
		Events []EventEntity `json:"events"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	*c = wrapped.Events
	return nil
}

// TotalDTO covers both total endpoints; invest answers with totalAmount and
// returns with totalPayment.
type TotalDTO struct {
	TotalAmount  *float64 `json:"totalAmount"`
	TotalPayment *float64 `json:"totalPayment"`
}

func (t TotalDTO) Value() float64 {
	switch {
	case t.TotalPayment != nil:
		return *t.TotalPayment
	case t.TotalAmount != nil:
		return *t.TotalAmount
	default:
		return 0
	}
}

type Totals struct {
	Paid     float64
	Received float64
}
