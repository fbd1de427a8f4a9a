/*
scheduler.go - Periodic overdue scan

PURPOSE:
  Classifies every client on a fixed interval and logs the ones that are
  overdue, with how much they still owe. The scan only reads the ledger.

CONFIGURATION:
  - CheckInterval: How often to scan (default: 1 hour)
  - Enabled: Whether the monitor runs (default: true)

USAGE:
  monitor := NewOverdueMonitor(ledger, log)
  monitor.Start()
  // ... later
  monitor.Stop()
*/
package api

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/warp/loan-ledger/loans"
)

// OverdueMonitor periodically reports overdue clients.
type OverdueMonitor struct {
	Ledger        *loans.Ledger
	Log           zerolog.Logger
	CheckInterval time.Duration
	Enabled       bool

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewOverdueMonitor creates a new monitor.
func NewOverdueMonitor(ledger *loans.Ledger, log zerolog.Logger) *OverdueMonitor {
	return &OverdueMonitor{
		Ledger:        ledger,
		Log:           log,
		CheckInterval: 1 * time.Hour,
		Enabled:       true,
	}
}

// Start begins the periodic scan. Calling Start twice has no effect.
func (m *OverdueMonitor) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.Enabled || m.CheckInterval <= 0 {
		m.Log.Info().Msg("overdue monitor disabled")
		return
	}
	if m.ticker != nil {
		return
	}

	m.ticker = time.NewTicker(m.CheckInterval)
	m.stop = make(chan struct{})
	m.wg.Add(1)

	go m.run(m.ticker, m.stop)

	m.Log.Info().Dur("interval", m.CheckInterval).Msg("overdue monitor started")
}

// Stop halts the monitor and waits for an in-flight scan.
func (m *OverdueMonitor) Stop() {
	m.mu.Lock()
	if m.ticker == nil {
		m.mu.Unlock()
		return
	}
	m.ticker.Stop()
	close(m.stop)
	m.ticker = nil
	m.mu.Unlock()

	m.wg.Wait()
	m.Log.Info().Msg("overdue monitor stopped")
}

func (m *OverdueMonitor) run(ticker *time.Ticker, stop <-chan struct{}) {
	defer m.wg.Done()

	m.RunOnce()
	for {
		select {
		case <-ticker.C:
			m.RunOnce()
		case <-stop:
			return
		}
	}
}

// RunOnce scans all clients and returns the names of overdue ones in
// display order.
func (m *OverdueMonitor) RunOnce() []string {
	var overdue []string
	for _, v := range m.Ledger.Overview() {
		if v.Status != loans.StatusOverdue {
			continue
		}
		overdue = append(overdue, v.Client.Name)
		m.Log.Warn().
			Str("client", v.Client.Name).
			Int("pending", len(v.Pending)).
			Str("outstanding", v.Client.Outstanding().StringFixed(2)).
			Msg("client overdue")
	}

	m.Log.Debug().Int("overdue", len(overdue)).Msg("overdue scan complete")
	return overdue
}
