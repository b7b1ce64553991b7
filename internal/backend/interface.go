// Package backend selects the transaction persistence implementation at
// startup. Users, investments, categories and assets always live in JSON
// files; only the ledger is switchable.
package backend

import (
	"context"

	"fintrack/internal/core"
)

// TransactionStore is the ledger persistence contract every backend
// satisfies.
type TransactionStore interface {
	Add(ctx context.Context, tx core.Transaction) error
	Get(ctx context.Context, id, userID string) (core.Transaction, error)
	ListByUser(ctx context.Context, userID string) ([]core.Transaction, error)
	Delete(ctx context.Context, id, userID string) error
	Close() error
}

// Type is the closed set of supported backends.
type Type string

const (
	JSONBackend   Type = "json"
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

func (t Type) String() string { return string(t) }

func (t Type) IsValid() bool {
	switch t {
	case JSONBackend, SQLiteBackend, MemoryBackend:
		return true
	}
	return false
}
