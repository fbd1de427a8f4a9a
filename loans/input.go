package loans

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxInstallments bounds the schedule length of a single loan.
const MaxInstallments = 1000

// CreateInput carries the parameters of a new loan.
type CreateInput struct {
	Name         string
	Principal    decimal.Decimal
	RatePercent  decimal.Decimal
	Schedule     ScheduleType
	Installments int // Ignored for ScheduleSingle
}

// Validate checks the input without touching any Ledger. Negative rates are
// accepted.
func (in CreateInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return &InputError{Field: "name", Reason: "must not be empty"}
	}
	if !in.Principal.IsPositive() {
		return &InputError{Field: "principal", Reason: "must be a positive number"}
	}
	if !in.Schedule.Valid() {
		return &InputError{Field: "schedule", Reason: "unknown schedule type"}
	}
	n := EffectiveCount(in.Schedule, in.Installments)
	if n < 1 {
		return &InputError{Field: "installments", Reason: "must be a positive integer"}
	}
	if n > MaxInstallments {
		return &InputError{Field: "installments", Reason: fmt.Sprintf("must not exceed %d", MaxInstallments)}
	}
	return nil
}

// ParseCreateInput builds a CreateInput from raw form values. The name is
// trimmed and the count is not read at all for single schedules.
func ParseCreateInput(name, principal, rate, schedule, installments string) (CreateInput, error) {
	in := CreateInput{Name: strings.TrimSpace(name)}

	st, err := ParseScheduleType(schedule)
	if err != nil {
		return CreateInput{}, err
	}
	in.Schedule = st

	if in.Principal, err = parseDecimal(principal); err != nil {
		return CreateInput{}, &InputError{Field: "principal", Reason: "not a number"}
	}
	if in.RatePercent, err = parseDecimal(rate); err != nil {
		return CreateInput{}, &InputError{Field: "rate", Reason: "not a number"}
	}

	if st == ScheduleSingle {
		in.Installments = 1
	} else {
		n, err := strconv.Atoi(strings.TrimSpace(installments))
		if err != nil {
			return CreateInput{}, &InputError{Field: "installments", Reason: "not an integer"}
		}
		in.Installments = n
	}

	if err := in.Validate(); err != nil {
		return CreateInput{}, err
	}
	return in, nil
}

// parseDecimal accepts a comma as decimal separator, as typed in the form.
func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	return decimal.NewFromString(s)
}
