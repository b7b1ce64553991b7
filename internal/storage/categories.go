package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"fintrack/internal/core"
)

// defaultCategories seed a fresh installation so the forms and the CLI have
// something to offer before the user defines their own buckets.
var defaultCategories = []string{
	"Salary",
	"Food",
	"Home",
	"Transport",
	"Health",
	"Leisure",
	"Education",
	"Investments",
	"Other",
}

// CategoryStore keeps the category taxonomy in categories.json. The
// collection is shared across users; seeding happens on first use.
type CategoryStore struct {
	file *jsonFile[core.Category]
}

func NewCategoryStore(dataDir string) (*CategoryStore, error) {
	f, err := newJSONFile[core.Category](dataDir, "categories.json")
	if err != nil {
		return nil, err
	}
	return &CategoryStore{file: f}, nil
}

// List returns all categories sorted by name, seeding the defaults when the
// store is empty.
func (s *CategoryStore) List(ctx context.Context) ([]core.Category, error) {
	var out []core.Category
	err := s.file.update(func(records []core.Category) ([]core.Category, error) {
		if len(records) == 0 {
			for _, name := range defaultCategories {
				records = append(records, core.Category{Name: name})
			}
		}
		out = append([]core.Category(nil), records...)
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *CategoryStore) Add(ctx context.Context, category core.Category) error {
	return s.file.update(func(records []core.Category) ([]core.Category, error) {
		for _, r := range records {
			if strings.EqualFold(r.Name, category.Name) {
				return nil, fmt.Errorf("category %s: %w", category.Name, ErrDuplicate)
			}
		}
		return append(records, category), nil
	})
}

func (s *CategoryStore) Remove(ctx context.Context, name string) error {
	return s.file.update(func(records []core.Category) ([]core.Category, error) {
		for i, r := range records {
			if strings.EqualFold(r.Name, name) {
				return append(records[:i], records[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("category %s: %w", name, ErrNotFound)
	})
}
