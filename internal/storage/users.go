package storage

import (
	"context"
	"fmt"
	"strings"

	"fintrack/internal/core"
)

// UserStore keeps accounts in users.json. Username and email are both
// unique, case-insensitively.
type UserStore struct {
	file *jsonFile[core.User]
}

func NewUserStore(dataDir string) (*UserStore, error) {
	f, err := newJSONFile[core.User](dataDir, "users.json")
	if err != nil {
		return nil, err
	}
	return &UserStore{file: f}, nil
}

func (s *UserStore) Create(ctx context.Context, user core.User) error {
	return s.file.update(func(records []core.User) ([]core.User, error) {
		for _, r := range records {
			if strings.EqualFold(r.Email, user.Email) {
				return nil, fmt.Errorf("user %s: %w", user.Email, ErrDuplicate)
			}
			if strings.EqualFold(r.Username, user.Username) {
				return nil, fmt.Errorf("user %s: %w", user.Username, ErrDuplicate)
			}
		}
		return append(records, user), nil
	})
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (core.User, error) {
	records, err := s.file.load()
	if err != nil {
		return core.User{}, err
	}
	for _, r := range records {
		if strings.EqualFold(r.Email, email) {
			return r, nil
		}
	}
	return core.User{}, fmt.Errorf("user %s: %w", email, ErrNotFound)
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (core.User, error) {
	records, err := s.file.load()
	if err != nil {
		return core.User{}, err
	}
	for _, r := range records {
		if strings.EqualFold(r.Username, username) {
			return r, nil
		}
	}
	return core.User{}, fmt.Errorf("user %s: %w", username, ErrNotFound)
}

func (s *UserStore) GetByID(ctx context.Context, id string) (core.User, error) {
	records, err := s.file.load()
	if err != nil {
		return core.User{}, err
	}
	for _, r := range records {
		if r.ID == id {
			return r, nil
		}
	}
	return core.User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
}
