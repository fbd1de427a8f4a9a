package loans

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// =============================================================================
// READ VIEWS - What presentation and export consume
// =============================================================================

// PendingInstallment is an unpaid installment with its 1-based position in
// the schedule.
type PendingInstallment struct {
	Number  int
	Amount  decimal.Decimal
	DueDate civil.Date
}

// Pending lists unpaid installments in schedule order.
func Pending(c Client) []PendingInstallment {
	var out []PendingInstallment
	for i, inst := range c.Installments {
		if inst.Paid {
			continue
		}
		out = append(out, PendingInstallment{Number: i + 1, Amount: inst.Amount, DueDate: inst.DueDate})
	}
	return out
}

// ClientView is a client together with its derived state.
type ClientView struct {
	Client  Client
	Status  Status
	Pending []PendingInstallment
}

// Overview returns every client with status and pending installments,
// classified against a single "today".
func (l *Ledger) Overview() []ClientView {
	today := l.clock.Today()
	clients := l.Clients()

	views := make([]ClientView, len(clients))
	for i, c := range clients {
		views[i] = ClientView{
			Client:  c,
			Status:  Classify(c.Installments, today),
			Pending: Pending(c),
		}
	}
	return views
}

// StatementLine is one installment as shown on an exported document.
type StatementLine struct {
	Number int
	Amount decimal.Decimal
	Paid   bool
}

// Statement is the data an exporter needs to render one client's schedule.
type Statement struct {
	Name  string
	Lines []StatementLine
}

// Statement returns the export view of the named client.
func (l *Ledger) Statement(name string) (Statement, error) {
	c, ok := l.Find(name)
	if !ok {
		return Statement{}, &ClientError{Name: name, Err: ErrNotFound}
	}

	st := Statement{Name: c.Name, Lines: make([]StatementLine, len(c.Installments))}
	for i, inst := range c.Installments {
		st.Lines[i] = StatementLine{Number: i + 1, Amount: inst.Amount, Paid: inst.Paid}
	}
	return st, nil
}

// View returns one client with its derived state.
func (l *Ledger) View(name string) (ClientView, bool) {
	c, ok := l.Find(name)
	if !ok {
		return ClientView{}, false
	}
	return ClientView{
		Client:  c,
		Status:  Classify(c.Installments, l.clock.Today()),
		Pending: Pending(c),
	}, true
}
