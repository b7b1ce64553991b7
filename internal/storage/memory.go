package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"fintrack/internal/core"
)

// MemoryTransactionStore is the ephemeral backend, used by tests and by the
// demo configuration. Same semantics as the JSON store without the disk.
type MemoryTransactionStore struct {
	mu      sync.RWMutex
	records []core.Transaction
}

func NewMemoryTransactionStore() *MemoryTransactionStore {
	return &MemoryTransactionStore{}
}

func (s *MemoryTransactionStore) Add(ctx context.Context, tx core.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.ID == tx.ID {
			return fmt.Errorf("transaction %s: %w", tx.ID, ErrDuplicate)
		}
	}
	s.records = append(s.records, tx)
	return nil
}

func (s *MemoryTransactionStore) Get(ctx context.Context, id, userID string) (core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if r.ID == id && r.UserID == userID {
			return r, nil
		}
	}
	return core.Transaction{}, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
}

func (s *MemoryTransactionStore) ListByUser(ctx context.Context, userID string) ([]core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Transaction
	for _, r := range s.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OccurredAt.Before(out[j].OccurredAt) })
	return out, nil
}

func (s *MemoryTransactionStore) Delete(ctx context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.records {
		if r.ID == id && r.UserID == userID {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("transaction %s: %w", id, ErrNotFound)
}

func (s *MemoryTransactionStore) Close() error { return nil }
