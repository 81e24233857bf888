package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/enum"
	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/kvstore"
	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/model"
)

// Errors returned by the user store.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmptyUsername      = errors.New("username cannot be empty")
	ErrEmptyPassword      = errors.New("password cannot be empty")
	ErrInvalidRole        = errors.New("invalid role")
	ErrAdminProtected     = errors.New("admin account cannot be modified")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// UserStore holds staff accounts. Passwords are bcrypt-hashed; the
// seeded admin account cannot be deleted or have its password changed
// through the management API.
type UserStore struct {
	kv kvstore.Store
	mu sync.Mutex
}

// NewUserStore creates a UserStore over the given key-value store.
func NewUserStore(kv kvstore.Store) *UserStore {
	return &UserStore{kv: kv}
}

// Authenticate checks a username/password pair and returns the user on
// success. Unknown usernames and wrong passwords are indistinguishable.
func (s *UserStore) Authenticate(ctx context.Context, username, password string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load(ctx)
	if err != nil {
		return model.User{}, err
	}
	for _, u := range users {
		if u.Username != username {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
			return model.User{}, ErrInvalidCredentials
		}
		return u, nil
	}
	return model.User{}, ErrInvalidCredentials
}

// GetByID returns a user by id or ErrUserNotFound.
func (s *UserStore) GetByID(ctx context.Context, id string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load(ctx)
	if err != nil {
		return model.User{}, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, ErrUserNotFound
}

// List returns manageable accounts. An empty role returns all waiter
// and kitchen accounts; the admin account is never listed.
func (s *UserStore) List(ctx context.Context, role string) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	var out []model.User
	for _, u := range users {
		if u.Role == enum.RoleAdmin {
			continue
		}
		if role != "" && u.Role != role {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

// Create adds a waiter or kitchen account. Admin accounts are only
// created by seeding, never through the API.
func (s *UserStore) Create(ctx context.Context, username, password, role string) (model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return model.User{}, ErrEmptyUsername
	}
	if strings.TrimSpace(password) == "" {
		return model.User{}, ErrEmptyPassword
	}
	if role != enum.RoleWaiter && role != enum.RoleKitchen {
		return model.User{}, ErrInvalidRole
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load(ctx)
	if err != nil {
		return model.User{}, err
	}
	for _, u := range users {
		if u.Username == username {
			return model.User{}, ErrUsernameTaken
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}
	user := model.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hashed),
		Role:         role,
	}
	users = append(users, user)
	if err := s.save(ctx, users); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// UpdatePassword rehashes and stores a new password for a non-admin
// account.
func (s *UserStore) UpdatePassword(ctx context.Context, id, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return ErrEmptyPassword
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load(ctx)
	if err != nil {
		return err
	}
	for i, u := range users {
		if u.ID != id {
			continue
		}
		if u.Role == enum.RoleAdmin {
			return ErrAdminProtected
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		users[i].PasswordHash = string(hashed)
		return s.save(ctx, users)
	}
	return ErrUserNotFound
}

// Delete removes a non-admin account.
func (s *UserStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load(ctx)
	if err != nil {
		return err
	}
	for i, u := range users {
		if u.ID != id {
			continue
		}
		if u.Role == enum.RoleAdmin {
			return ErrAdminProtected
		}
		users = append(users[:i], users[i+1:]...)
		return s.save(ctx, users)
	}
	return ErrUserNotFound
}

func (s *UserStore) load(ctx context.Context) ([]model.User, error) {
	raw, err := s.kv.Get(ctx, kvstore.KeyUsers)
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load users: %w", err)
	}
	var users []model.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (s *UserStore) save(ctx context.Context, users []model.User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	if err := s.kv.Put(ctx, kvstore.KeyUsers, raw); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}
