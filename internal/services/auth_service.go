package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

// ErrInvalidCredentials covers both unknown email and wrong password, so the
// login endpoint never reveals which one failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrEmailTaken is returned when registering with an email that already has
// an account.
var ErrEmailTaken = errors.New("email already registered")

// ErrUsernameTaken is returned when the chosen username belongs to another
// account.
var ErrUsernameTaken = errors.New("username already taken")

// AuthService registers accounts and checks credentials. Token issuance
// lives in the auth package; this service only deals with identities.
type AuthService struct {
	users  UserStore
	logger *log.Logger
}

func NewAuthService(users UserStore, logger *log.Logger) *AuthService {
	return &AuthService{
		users:  users,
		logger: logger.WithComponent(log.ComponentAuth),
	}
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (core.User, error) {
	user, err := core.NewUser(username, email, password)
	if err != nil {
		return core.User{}, err
	}
	if _, err := s.users.GetByUsername(ctx, user.Username); err == nil {
		return core.User{}, ErrUsernameTaken
	} else if !errors.Is(err, storage.ErrNotFound) {
		return core.User{}, fmt.Errorf("lookup username: %w", err)
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return core.User{}, ErrEmailTaken
		}
		return core.User{}, fmt.Errorf("persist user: %w", err)
	}
	s.logger.InfoContext(ctx, "user registered", log.FieldUserID, user.ID)
	return user, nil
}

// Login accepts either a username or an email address. Username wins when
// both would match.
func (s *AuthService) Login(ctx context.Context, login, password string) (core.User, error) {
	user, err := s.users.GetByUsername(ctx, login)
	if errors.Is(err, storage.ErrNotFound) {
		user, err = s.users.GetByEmail(ctx, strings.ToLower(login))
	}
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return core.User{}, ErrInvalidCredentials
		}
		return core.User{}, fmt.Errorf("lookup user: %w", err)
	}
	if !user.VerifyPassword(password) {
		s.logger.WarnContext(ctx, "failed login attempt", log.FieldUserID, user.ID)
		return core.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) GetUser(ctx context.Context, id string) (core.User, error) {
	return s.users.GetByID(ctx, id)
}
