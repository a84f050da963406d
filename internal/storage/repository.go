// Package storage persists the store's collections as a whole: every save
// rewrites the full state, every load replaces it. Two backends implement
// the contract, the canonical single-JSON-document file and a SQLite
// database.
package storage

import (
	"context"

	"budgetbook/internal/core"
)

// Snapshot is the full persisted state: both collections, nothing else.
type Snapshot struct {
	Transactions []core.Transaction
	Budgets      []core.Budget
}

// Repository loads and saves snapshots wholesale.
type Repository interface {
	// Load returns the persisted snapshot, or (nil, nil) when no document
	// has ever been written. A malformed document is a *core.PersistenceError.
	Load(ctx context.Context) (*Snapshot, error)

	// Save overwrites the backing document with the snapshot.
	Save(ctx context.Context, snap Snapshot) error

	Close() error
}
