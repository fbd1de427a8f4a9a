/*
ledger.go - The authoritative client collection

PURPOSE:
  The Ledger owns every client and is the only way to create, pay or remove
  one. Readers receive copies; nothing outside the Ledger can flip a paid
  flag or reorder a schedule.

CRITICAL INVARIANTS:
  1. UNIQUE NAMES: exact, case-sensitive match
  2. ALL-OR-NOTHING CREATE: invalid input leaves the collection untouched
  3. MONOTONIC PAYMENTS: one installment per Pay call, first unpaid in list
     order, never reverted
  4. INSERTION ORDER: display order is creation order

PERSISTENCE:
  After every mutation the full collection is written to the Store before the
  call returns. If the write fails the mutation stays in memory and the
  error wraps ErrStoreFailed; the next successful save catches the slot up.

CONCURRENCY:
  Operations run to completion one at a time under a mutex, so HTTP handlers
  may call the Ledger from concurrent goroutines.

REMOVE ASYMMETRY:
  Pay on an unknown name is ErrNotFound. Remove on an unknown name is a
  no-op.
*/
package loans

import (
	"context"
	"fmt"
	"sync"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// =============================================================================
// LEDGER
// =============================================================================

type Ledger struct {
	mu      sync.Mutex
	store   Store
	clock   Clock
	log     zerolog.Logger
	clients map[string]*Client
	order   []string
}

type Option func(*Ledger)

// WithClock sets the clock used for start dates and status.
func WithClock(c Clock) Option {
	return func(l *Ledger) { l.clock = c }
}

func WithLogger(log zerolog.Logger) Option {
	return func(l *Ledger) { l.log = log }
}

// NewLedger creates an empty Ledger. store may be nil, in which case nothing
// is persisted.
func NewLedger(store Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:   store,
		clock:   SystemClock(nil),
		log:     zerolog.Nop(),
		clients: make(map[string]*Client),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Open creates a Ledger and fills it from the store.
func Open(ctx context.Context, store Store, opts ...Option) (*Ledger, error) {
	l := NewLedger(store, opts...)
	if store == nil {
		return l, nil
	}

	clients, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load clients: %w", err)
	}
	for _, c := range clients {
		if _, exists := l.clients[c.Name]; exists {
			return nil, fmt.Errorf("%w: duplicate client %q", ErrCorruptSlot, c.Name)
		}
		l.insert(c.Clone())
	}

	l.log.Info().Int("clients", len(l.order)).Msg("ledger loaded")
	return l, nil
}

// =============================================================================
// MUTATIONS
// =============================================================================

// Create validates the input, generates the schedule starting today and
// appends the new client.
func (l *Ledger) Create(ctx context.Context, in CreateInput) (Client, error) {
	if err := in.Validate(); err != nil {
		return Client{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.clients[in.Name]; exists {
		return Client{}, &ClientError{Name: in.Name, Err: ErrDuplicateName}
	}

	installments, err := Generate(in.Principal, in.RatePercent, in.Schedule, in.Installments, l.clock.Today())
	if err != nil {
		return Client{}, err
	}

	client := Client{
		Name:         in.Name,
		Principal:    in.Principal,
		Total:        TotalDue(in.Principal, in.RatePercent),
		Installments: installments,
	}
	l.insert(client)

	l.log.Debug().
		Str("client", client.Name).
		Str("principal", client.Principal.String()).
		Str("total", client.Total.String()).
		Int("installments", len(installments)).
		Msg("client created")

	return client.Clone(), l.persistLocked(ctx)
}

// Payment describes an installment that was just paid.
type Payment struct {
	Client  string
	Number  int // 1-based position in the schedule
	Amount  decimal.Decimal
	DueDate civil.Date
	Settled bool // True when this payment cleared the debt
}

// Pay marks the first unpaid installment, in schedule order, as paid. This is
// list order, not due-date order.
func (l *Ledger) Pay(ctx context.Context, name string) (Payment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[name]
	if !ok {
		return Payment{}, &ClientError{Name: name, Err: ErrNotFound}
	}
	i := c.nextUnpaid()
	if i < 0 {
		return Payment{}, &ClientError{Name: name, Err: ErrAlreadySettled}
	}
	c.Installments[i].Paid = true

	payment := Payment{
		Client:  name,
		Number:  i + 1,
		Amount:  c.Installments[i].Amount,
		DueDate: c.Installments[i].DueDate,
		Settled: c.nextUnpaid() < 0,
	}

	l.log.Debug().
		Str("client", name).
		Int("installment", payment.Number).
		Str("amount", payment.Amount.String()).
		Bool("settled", payment.Settled).
		Msg("installment paid")

	return payment, l.persistLocked(ctx)
}

// Remove deletes the client. Removing an unknown name does nothing.
func (l *Ledger) Remove(ctx context.Context, name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.clients[name]; !ok {
		return nil
	}
	delete(l.clients, name)
	for i, n := range l.order {
		if n == name {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}

	l.log.Debug().Str("client", name).Msg("client removed")
	return l.persistLocked(ctx)
}

// =============================================================================
// QUERIES
// =============================================================================

// Find returns a copy of the named client.
func (l *Ledger) Find(name string) (Client, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[name]
	if !ok {
		return Client{}, false
	}
	return c.Clone(), true
}

// Clients returns copies of all clients in creation order.
func (l *Ledger) Clients() []Client {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.order)
}

// Status classifies the named client against the ledger's clock.
func (l *Ledger) Status(name string) (Status, error) {
	c, ok := l.Find(name)
	if !ok {
		return "", &ClientError{Name: name, Err: ErrNotFound}
	}
	return Classify(c.Installments, l.clock.Today()), nil
}

// Today is the ledger clock's current date.
func (l *Ledger) Today() civil.Date {
	return l.clock.Today()
}

// =============================================================================
// AGGREGATES
// =============================================================================

// Totals summarizes the portfolio. Always computed from current state.
type Totals struct {
	Invested  decimal.Decimal // Sum of principals
	Recovered decimal.Decimal // Sum of paid installment amounts
}

// NetProfit may be negative while debts are outstanding.
func (t Totals) NetProfit() decimal.Decimal {
	return t.Recovered.Sub(t.Invested)
}

func (l *Ledger) Totals() Totals {
	l.mu.Lock()
	defer l.mu.Unlock()

	totals := Totals{Invested: decimal.Zero, Recovered: decimal.Zero}
	for _, name := range l.order {
		c := l.clients[name]
		totals.Invested = totals.Invested.Add(c.Principal)
		totals.Recovered = totals.Recovered.Add(c.Recovered())
	}
	return totals
}

// =============================================================================
// INTERNALS
// =============================================================================

func (l *Ledger) insert(c Client) {
	l.clients[c.Name] = &c
	l.order = append(l.order, c.Name)
}

func (l *Ledger) snapshotLocked() []Client {
	out := make([]Client, 0, len(l.order))
	for _, name := range l.order {
		out = append(out, l.clients[name].Clone())
	}
	return out
}

func (l *Ledger) persistLocked(ctx context.Context) error {
	if l.store == nil {
		return nil
	}
	if err := l.store.Save(ctx, l.snapshotLocked()); err != nil {
		l.log.Error().Err(err).Msg("failed to save clients")
		return fmt.Errorf("%w: %w", ErrStoreFailed, err)
	}
	return nil
}
