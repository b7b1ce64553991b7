package storage

import (
	"context"
	"fmt"
	"sort"

	"fintrack/internal/core"
)

// InvestmentStore keeps positions in investments.json.
type InvestmentStore struct {
	file *jsonFile[core.Investment]
}

func NewInvestmentStore(dataDir string) (*InvestmentStore, error) {
	f, err := newJSONFile[core.Investment](dataDir, "investments.json")
	if err != nil {
		return nil, err
	}
	return &InvestmentStore{file: f}, nil
}

func (s *InvestmentStore) Add(ctx context.Context, inv core.Investment) error {
	if err := inv.Validate(); err != nil {
		return err
	}
	return s.file.update(func(records []core.Investment) ([]core.Investment, error) {
		for _, r := range records {
			if r.ID == inv.ID {
				return nil, fmt.Errorf("investment %s: %w", inv.ID, ErrDuplicate)
			}
		}
		return append(records, inv), nil
	})
}

func (s *InvestmentStore) Get(ctx context.Context, id, userID string) (core.Investment, error) {
	records, err := s.file.load()
	if err != nil {
		return core.Investment{}, err
	}
	for _, r := range records {
		if r.ID == id && r.UserID == userID {
			return r, nil
		}
	}
	return core.Investment{}, fmt.Errorf("investment %s: %w", id, ErrNotFound)
}

func (s *InvestmentStore) ListByUser(ctx context.Context, userID string) ([]core.Investment, error) {
	records, err := s.file.load()
	if err != nil {
		return nil, err
	}
	var out []core.Investment
	for _, r := range records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	// Newest positions first.
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

// Replace swaps the stored record carrying the same ID for the given one.
func (s *InvestmentStore) Replace(ctx context.Context, inv core.Investment) error {
	if err := inv.Validate(); err != nil {
		return err
	}
	return s.file.update(func(records []core.Investment) ([]core.Investment, error) {
		for i, r := range records {
			if r.ID == inv.ID && r.UserID == inv.UserID {
				records[i] = inv
				return records, nil
			}
		}
		return nil, fmt.Errorf("investment %s: %w", inv.ID, ErrNotFound)
	})
}

func (s *InvestmentStore) Delete(ctx context.Context, id, userID string) error {
	return s.file.update(func(records []core.Investment) ([]core.Investment, error) {
		for i, r := range records {
			if r.ID == id && r.UserID == userID {
				return append(records[:i], records[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("investment %s: %w", id, ErrNotFound)
	})
}
