package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"fintrack/internal/core"
)

// AssetStore keeps quotable instruments in assets.json.
type AssetStore struct {
	file *jsonFile[core.Asset]
}

func NewAssetStore(dataDir string) (*AssetStore, error) {
	f, err := newJSONFile[core.Asset](dataDir, "assets.json")
	if err != nil {
		return nil, err
	}
	return &AssetStore{file: f}, nil
}

func (s *AssetStore) Add(ctx context.Context, asset core.Asset) error {
	return s.file.update(func(records []core.Asset) ([]core.Asset, error) {
		for _, r := range records {
			if r.UserID == asset.UserID && strings.EqualFold(r.Symbol, asset.Symbol) {
				return nil, fmt.Errorf("asset %s: %w", asset.Symbol, ErrDuplicate)
			}
		}
		return append(records, asset), nil
	})
}

func (s *AssetStore) ListByUser(ctx context.Context, userID string) ([]core.Asset, error) {
	records, err := s.file.load()
	if err != nil {
		return nil, err
	}
	var out []core.Asset
	for _, r := range records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out, nil
}

// ListAll returns every tracked asset. Used by the quote worker, which
// refreshes prices across users.
func (s *AssetStore) ListAll(ctx context.Context) ([]core.Asset, error) {
	return s.file.load()
}

// UpdatePrice stores a fresh quote on every asset carrying the symbol,
// regardless of owner.
func (s *AssetStore) UpdatePrice(ctx context.Context, symbol string, price core.Money, at time.Time) error {
	updated := false
	err := s.file.update(func(records []core.Asset) ([]core.Asset, error) {
		for i, r := range records {
			if strings.EqualFold(r.Symbol, symbol) {
				records[i] = r.WithPrice(price, at)
				updated = true
			}
		}
		return records, nil
	})
	if err != nil {
		return err
	}
	if !updated {
		return fmt.Errorf("asset %s: %w", symbol, ErrNotFound)
	}
	return nil
}

func (s *AssetStore) Delete(ctx context.Context, id, userID string) error {
	return s.file.update(func(records []core.Asset) ([]core.Asset, error) {
		for i, r := range records {
			if r.ID == id && r.UserID == userID {
				return append(records[:i], records[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("asset %s: %w", id, ErrNotFound)
	})
}
