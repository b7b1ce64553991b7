package storage

import (
	"context"
	"fmt"
	"sort"

	"fintrack/internal/core"
)

// JSONTransactionStore keeps the ledger in transactions.json.
type JSONTransactionStore struct {
	file *jsonFile[core.Transaction]
}

func NewJSONTransactionStore(dataDir string) (*JSONTransactionStore, error) {
	f, err := newJSONFile[core.Transaction](dataDir, "transactions.json")
	if err != nil {
		return nil, err
	}
	return &JSONTransactionStore{file: f}, nil
}

func (s *JSONTransactionStore) Add(ctx context.Context, tx core.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	return s.file.update(func(records []core.Transaction) ([]core.Transaction, error) {
		for _, r := range records {
			if r.ID == tx.ID {
				return nil, fmt.Errorf("transaction %s: %w", tx.ID, ErrDuplicate)
			}
		}
		return append(records, tx), nil
	})
}

func (s *JSONTransactionStore) Get(ctx context.Context, id, userID string) (core.Transaction, error) {
	records, err := s.file.load()
	if err != nil {
		return core.Transaction{}, err
	}
	for _, r := range records {
		if r.ID == id && r.UserID == userID {
			return r, nil
		}
	}
	return core.Transaction{}, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
}

// ListByUser returns the user's ledger ordered by occurrence time, oldest
// first.
func (s *JSONTransactionStore) ListByUser(ctx context.Context, userID string) ([]core.Transaction, error) {
	records, err := s.file.load()
	if err != nil {
		return nil, err
	}
	var out []core.Transaction
	for _, r := range records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OccurredAt.Before(out[j].OccurredAt) })
	return out, nil
}

// Delete removes the entry if it exists and belongs to the user.
func (s *JSONTransactionStore) Delete(ctx context.Context, id, userID string) error {
	return s.file.update(func(records []core.Transaction) ([]core.Transaction, error) {
		for i, r := range records {
			if r.ID == id && r.UserID == userID {
				return append(records[:i], records[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	})
}

func (s *JSONTransactionStore) Close() error { return nil }
