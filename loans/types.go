/*
Package loans provides the core of the loan book.

PURPOSE:
  Tracks informal loans made to clients. Each client owes a principal plus
  flat simple interest, repaid either in one lump payment or in weekly or
  monthly installments. The package generates schedules, classifies a
  client's debt (settled, overdue, current) and keeps portfolio totals.

KEY CONCEPTS IN THIS FILE (types.go):
  - Installment: One scheduled share of a client's debt
  - Client: A borrower with principal, total due and schedule
  - ScheduleType: single, weekly or monthly repayment
  - Status: Derived classification of a client's debt

DESIGN PRINCIPLES:
  1. Precision: Money uses decimal.Decimal, never float64
  2. Calendar dates: Due dates are civil.Date, with no time of day
  3. Monotonic payments: paid flags only ever flip false -> true
  4. Explicit ownership: the Ledger owns its clients; readers get copies

USAGE:
  ledger := loans.NewLedger(store.NewMemory())
  client, err := ledger.Create(ctx, loans.CreateInput{
      Name:         "Ana",
      Principal:    decimal.NewFromInt(1000),
      RatePercent:  decimal.NewFromInt(10),
      Schedule:     loans.ScheduleMonthly,
      Installments: 2,
  })

SEE ALSO:
  - schedule.go: Schedule generation
  - status.go: Status classification
  - ledger.go: Client collection and mutations
  - codec.go: Storage slot wire format
*/
package loans

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// =============================================================================
// SCHEDULE TYPE
// =============================================================================

type ScheduleType string

const (
	ScheduleSingle  ScheduleType = "single"  // One lump payment a month after the loan
	ScheduleWeekly  ScheduleType = "weekly"  // Every 7 days
	ScheduleMonthly ScheduleType = "monthly" // Same day each month, clamped
)

var scheduleAliases = map[string]ScheduleType{
	"single":  ScheduleSingle,
	"weekly":  ScheduleWeekly,
	"monthly": ScheduleMonthly,
	"fixo":    ScheduleSingle,
	"semanal": ScheduleWeekly,
	"mensal":  ScheduleMonthly,
}

// ParseScheduleType accepts the canonical names and the legacy form values.
func ParseScheduleType(s string) (ScheduleType, error) {
	st, ok := scheduleAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", &InputError{Field: "schedule", Reason: fmt.Sprintf("unknown schedule type %q", s)}
	}
	return st, nil
}

func (st ScheduleType) Valid() bool {
	switch st {
	case ScheduleSingle, ScheduleWeekly, ScheduleMonthly:
		return true
	}
	return false
}

// =============================================================================
// INSTALLMENT
// =============================================================================

type Installment struct {
	Amount  decimal.Decimal
	DueDate civil.Date
	Paid    bool
}

// =============================================================================
// CLIENT
// =============================================================================

// Client is a borrower and their repayment schedule.
//
// INVARIANTS:
//   - Name is non-empty and unique within a Ledger.
//   - Installments has at least one entry; membership and order never change.
//   - Total is fixed at creation.
type Client struct {
	Name         string
	Principal    decimal.Decimal
	Total        decimal.Decimal
	Installments []Installment
}

// Clone returns a deep copy so callers cannot reach the Ledger's state.
func (c Client) Clone() Client {
	out := c
	out.Installments = append([]Installment(nil), c.Installments...)
	return out
}

// Recovered sums the amounts of paid installments.
func (c Client) Recovered() decimal.Decimal {
	sum := decimal.Zero
	for _, inst := range c.Installments {
		if inst.Paid {
			sum = sum.Add(inst.Amount)
		}
	}
	return sum
}

// Outstanding sums the amounts still unpaid.
func (c Client) Outstanding() decimal.Decimal {
	sum := decimal.Zero
	for _, inst := range c.Installments {
		if !inst.Paid {
			sum = sum.Add(inst.Amount)
		}
	}
	return sum
}

// nextUnpaid returns the index of the first unpaid installment in list
// order, or -1.
func (c Client) nextUnpaid() int {
	for i, inst := range c.Installments {
		if !inst.Paid {
			return i
		}
	}
	return -1
}

// =============================================================================
// STATUS
// =============================================================================

type Status string

const (
	StatusSettled Status = "settled"
	StatusOverdue Status = "overdue"
	StatusCurrent Status = "current"
)
