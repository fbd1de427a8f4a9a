/*
schedule.go - Repayment schedule generation

RULES:
  total       = principal * (1 + rate/100)        flat simple interest
  installment = total / count                      equal split, no remainder
                                                   redistribution
  due date i  = start + 7*i days                   weekly
              = start + i months (clamped)         single, monthly

  A single schedule always has exactly one installment, whatever count the
  caller asked for. Counts above MaxInstallments are rejected.

ROUNDING:
  Division uses decimal.DivisionPrecision (16 fractional digits). The sum of
  the installments can differ from total by at most count * 1e-16. Amounts
  are not rounded to cents; presentation rounds for display.

Generate is pure: it reads nothing but its arguments.
*/
package loans

import (
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// TotalDue returns principal plus flat interest over the whole term.
func TotalDue(principal, ratePercent decimal.Decimal) decimal.Decimal {
	return principal.Mul(decimal.NewFromInt(1).Add(ratePercent.Div(hundred)))
}

// EffectiveCount returns the number of installments a schedule will have.
func EffectiveCount(st ScheduleType, requested int) int {
	if st == ScheduleSingle {
		return 1
	}
	return requested
}

// Generate builds the ordered installment list for a new loan. All
// installments start unpaid.
func Generate(principal, ratePercent decimal.Decimal, st ScheduleType, count int, start civil.Date) ([]Installment, error) {
	if !st.Valid() {
		return nil, &InputError{Field: "schedule", Reason: "unknown schedule type"}
	}
	count = EffectiveCount(st, count)
	if count < 1 {
		return nil, &InputError{Field: "installments", Reason: "must be a positive integer"}
	}
	if count > MaxInstallments {
		return nil, &InputError{Field: "installments", Reason: fmt.Sprintf("must not exceed %d", MaxInstallments)}
	}

	total := TotalDue(principal, ratePercent)
	amount := total.Div(decimal.NewFromInt(int64(count)))

	installments := make([]Installment, 0, count)
	for i := 1; i <= count; i++ {
		installments = append(installments, Installment{
			Amount:  amount,
			DueDate: dueDate(st, start, i),
		})
	}
	return installments, nil
}

func dueDate(st ScheduleType, start civil.Date, i int) civil.Date {
	if st == ScheduleWeekly {
		return start.AddDays(7 * i)
	}
	return AddMonthsClamped(start, i)
}
