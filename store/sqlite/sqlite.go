/*
Package sqlite provides a SQLite-backed loan book storage slot.

PURPOSE:
  Implements loans.Store on a single-row-per-slot table. The whole client
  collection is stored as one encoded payload (see loans/codec.go), so the
  database is a durable key-value slot rather than a relational model.

KEY TABLES:
  storage_slots: slot name -> payload, revision, updated_at

SEMANTICS:
  - Load on a slot that was never written returns no clients.
  - Save overwrites the slot in one statement (upsert). Each save gets a
    fresh revision ID.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Readers don't block the writer
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./loans.db", "clientes")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  ledger, err := loans.Open(ctx, store)

SEE ALSO:
  - loans/store.go: Interface definition
  - loans/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/loan-ledger/loans"
)

// DefaultSlot is the slot name used when none is given.
const DefaultSlot = "clientes"

// Store implements loans.Store using SQLite.
type Store struct {
	db   *sql.DB
	slot string
	loc  *time.Location
	mu   sync.RWMutex
}

// New creates a new SQLite store with the given database path and slot.
// Use ":memory:" for an in-memory database.
func New(dbPath, slot string) (*Store, error) {
	if slot == "" {
		slot = DefaultSlot
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A :memory: database exists per connection.
	db.SetMaxOpenConns(1)

	store := &Store{db: db, slot: slot}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SetLocation sets the zone legacy timestamp due dates are read in.
// A nil location means UTC.
func (s *Store) SetLocation(loc *time.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loc = loc
}

// Slot returns the slot this store reads and writes.
func (s *Store) Slot() string {
	return s.slot
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS storage_slots (
		slot TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		revision TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SLOT STORE (loans.Store interface)
// =============================================================================

// Load returns the clients saved in the slot.
func (s *Store) Load(ctx context.Context) ([]loans.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var payload string
	err := s.db.QueryRowContext(ctx,
		"SELECT payload FROM storage_slots WHERE slot = ?",
		s.slot,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return []loans.Client{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %q: %w", s.slot, err)
	}

	return loans.DecodeClients([]byte(payload), s.loc)
}

// Save overwrites the slot with the given clients.
func (s *Store) Save(ctx context.Context, clients []loans.Client) error {
	payload, err := loans.EncodeClients(clients)
	if err != nil {
		return fmt.Errorf("failed to encode clients: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO storage_slots (slot, payload, revision, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			payload = excluded.payload,
			revision = excluded.revision,
			updated_at = excluded.updated_at
	`

	_, err = s.db.ExecContext(ctx, query,
		s.slot,
		string(payload),
		uuid.NewString(),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to write slot %q: %w", s.slot, err)
	}
	return nil
}

// Revision returns the ID of the last save, or "" if the slot is empty.
func (s *Store) Revision(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var revision string
	err := s.db.QueryRowContext(ctx,
		"SELECT revision FROM storage_slots WHERE slot = ?",
		s.slot,
	).Scan(&revision)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return revision, err
}

// Reset clears the slot. Development use only.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM storage_slots WHERE slot = ?", s.slot)
	return err
}
