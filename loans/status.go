package loans

import "cloud.google.com/go/civil"

// Classify derives a client's status from its installments.
//
// Precedence is fixed: settled, then overdue, then current. A fully paid
// schedule is never overdue even when its due dates are past. An
// installment due today is not overdue yet.
func Classify(installments []Installment, today civil.Date) Status {
	if allPaid(installments) {
		return StatusSettled
	}
	for _, inst := range installments {
		if !inst.Paid && inst.DueDate.Before(today) {
			return StatusOverdue
		}
	}
	return StatusCurrent
}

func allPaid(installments []Installment) bool {
	for _, inst := range installments {
		if !inst.Paid {
			return false
		}
	}
	return true
}
