/*
store.go - Persistence interface for the loan book

PURPOSE:
  The Ledger is the source of truth. A Store is its durable mirror: one
  storage slot holding the whole ordered client list.

CONTRACT:
  - Load returns the saved clients in display order. A slot that was never
    written loads as an empty list, not an error.
  - Save overwrites the whole slot. There is no incremental append.
  - Due dates, amounts and paid flags round-trip exactly.

IMPLEMENTATIONS:
  - loans/store/memory.go: In-memory slot for tests
  - store/sqlite/sqlite.go: SQLite-backed slot
*/
package loans

import "context"

// Store loads and saves the full client collection.
type Store interface {
	Load(ctx context.Context) ([]Client, error)
	Save(ctx context.Context, clients []Client) error
}
