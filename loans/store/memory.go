// Package store provides Store implementations.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/warp/loan-ledger/loans"
)

// =============================================================================
// MEMORY STORE - In-memory slot (for testing/dev)
// =============================================================================

// Memory keeps the encoded slot in memory, so every Save/Load goes through
// the same wire format as a durable store.
type Memory struct {
	mu      sync.RWMutex
	payload []byte
	saves   int

	// FailSave, when set, is returned by Save instead of writing.
	FailSave error

	// Location is the zone legacy timestamp due dates are read in.
	Location *time.Location
}

func NewMemory() *Memory {
	return &Memory{}
}

// NewMemoryWithPayload starts from an existing slot payload.
func NewMemoryWithPayload(payload []byte) *Memory {
	return &Memory{payload: append([]byte(nil), payload...)}
}

func (m *Memory) Load(_ context.Context) ([]loans.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return loans.DecodeClients(m.payload, m.Location)
}

// Save overwrites the slot.
func (m *Memory) Save(_ context.Context, clients []loans.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailSave != nil {
		return m.FailSave
	}
	payload, err := loans.EncodeClients(clients)
	if err != nil {
		return err
	}
	m.payload = payload
	m.saves++
	return nil
}

// Payload returns a copy of the raw slot contents.
func (m *Memory) Payload() []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]byte(nil), m.payload...)
}

// Saves counts successful writes.
func (m *Memory) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}
