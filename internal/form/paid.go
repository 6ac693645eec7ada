package form

import (
	"strconv"
	"strings"
	"time"

	"github.com/tomuthu-engineer/moibook/internal/model"
)

// TimeLayout is the 12-hour clock stamped on paid entries at submission.
const TimeLayout = "3:04:05 PM"

type PaidInput struct {
	BeneficiaryName string `form:"beneficiaryName" json:"beneficiaryName" validate:"required"`
	Amount          string `form:"amount" json:"amount" validate:"required,numeric"`
	Date            string `form:"date" json:"date" validate:"required,datetime=2006-01-02"`
	EventType       string `form:"eventType" json:"eventType" validate:"required"`
	Area            string `form:"area" json:"area" validate:"required"`
	District        string `form:"district" json:"district" validate:"required"`
	State           string `form:"state" json:"state" validate:"required"`
	Remarks         string `form:"remarks" json:"remarks" validate:"omitempty,max=500"`
}

func NewPaidInput(now time.Time) PaidInput {
	return PaidInput{Date: now.Format(DateLayout)}
}

func (in PaidInput) normalized() PaidInput {
	return PaidInput{
		BeneficiaryName: strings.TrimSpace(in.BeneficiaryName),
		Amount:          strings.TrimSpace(in.Amount),
		Date:            strings.TrimSpace(in.Date),
		EventType:       strings.TrimSpace(in.EventType),
		Area:            strings.TrimSpace(in.Area),
		District:        strings.TrimSpace(in.District),
		State:           strings.TrimSpace(in.State),
		Remarks:         strings.TrimSpace(in.Remarks),
	}
}

// NewPaidEntry validates the input and stamps it with the wall-clock time of
// now.
func NewPaidEntry(in PaidInput, now time.Time) (model.PaidMoiEntry, error) {
	in = in.normalized()
	if err := ValidateStruct(in); err != nil {
		return model.PaidMoiEntry{}, err
	}

	amount, err := strconv.ParseFloat(in.Amount, 64)
	if err != nil {
		return model.PaidMoiEntry{}, NewValidationError("amount", "Amount must be a number")
	}
	if amount < 0 {
		return model.PaidMoiEntry{}, NewValidationError("amount", "Amount must not be negative")
	}

	return model.PaidMoiEntry{
		BeneficiaryName: in.BeneficiaryName,
		Amount:          amount,
		Date:            in.Date,
		EventType:       in.EventType,
		Area:            in.Area,
		District:        in.District,
		State:           in.State,
		Remarks:         in.Remarks,
		Time:            now.Format(TimeLayout),
	}, nil
}
