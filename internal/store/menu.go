package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/kvstore"
	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/model"
)

// Errors returned by the menu store.
var (
	ErrMenuItemNotFound  = errors.New("menu item not found")
	ErrDuplicateMenuItem = errors.New("menu item with this name already exists")
	ErrInvalidPrice      = errors.New("price must be greater than zero")
	ErrMissingMenuFields = errors.New("name and category are required")
)

// MenuStore holds the menu catalog. Orders copy items out of it, so
// edits and deletions never alter historical orders.
type MenuStore struct {
	kv kvstore.Store
	mu sync.Mutex
}

// NewMenuStore creates a MenuStore over the given key-value store.
func NewMenuStore(kv kvstore.Store) *MenuStore {
	return &MenuStore{kv: kv}
}

// List returns the full catalog.
func (s *MenuStore) List(ctx context.Context) ([]model.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// GetByID returns a single catalog entry or ErrMenuItemNotFound.
func (s *MenuStore) GetByID(ctx context.Context, id string) (model.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return model.MenuItem{}, err
	}
	for _, it := range items {
		if it.ID == id {
			return it, nil
		}
	}
	return model.MenuItem{}, ErrMenuItemNotFound
}

// Add validates and appends a new item. Nothing is written when
// validation fails.
func (s *MenuStore) Add(ctx context.Context, name string, price float64, category string) (model.MenuItem, error) {
	name = strings.TrimSpace(name)
	category = strings.TrimSpace(category)
	if name == "" || category == "" {
		return model.MenuItem{}, ErrMissingMenuFields
	}
	if price <= 0 {
		return model.MenuItem{}, ErrInvalidPrice
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return model.MenuItem{}, err
	}
	for _, it := range items {
		if strings.EqualFold(it.Name, name) {
			return model.MenuItem{}, ErrDuplicateMenuItem
		}
	}

	item := model.MenuItem{
		ID:       uuid.NewString(),
		Name:     name,
		Price:    price,
		Category: category,
	}
	items = append(items, item)
	if err := s.save(ctx, items); err != nil {
		return model.MenuItem{}, err
	}
	return item, nil
}

// Update replaces the named fields of an existing item, keeping its id.
func (s *MenuStore) Update(ctx context.Context, id, name string, price float64, category string) (model.MenuItem, error) {
	name = strings.TrimSpace(name)
	category = strings.TrimSpace(category)
	if name == "" || category == "" {
		return model.MenuItem{}, ErrMissingMenuFields
	}
	if price <= 0 {
		return model.MenuItem{}, ErrInvalidPrice
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return model.MenuItem{}, err
	}
	for _, it := range items {
		if it.ID != id && strings.EqualFold(it.Name, name) {
			return model.MenuItem{}, ErrDuplicateMenuItem
		}
	}
	for i, it := range items {
		if it.ID == id {
			items[i].Name = name
			items[i].Price = price
			items[i].Category = category
			if err := s.save(ctx, items); err != nil {
				return model.MenuItem{}, err
			}
			return items[i], nil
		}
	}
	return model.MenuItem{}, ErrMenuItemNotFound
}

// Delete removes an item from the catalog.
func (s *MenuStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return err
	}
	for i, it := range items {
		if it.ID == id {
			items = append(items[:i], items[i+1:]...)
			return s.save(ctx, items)
		}
	}
	return ErrMenuItemNotFound
}

func (s *MenuStore) load(ctx context.Context) ([]model.MenuItem, error) {
	raw, err := s.kv.Get(ctx, kvstore.KeyMenuItems)
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load menu: %w", err)
	}
	var items []model.MenuItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode menu: %w", err)
	}
	return items, nil
}

func (s *MenuStore) save(ctx context.Context, items []model.MenuItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode menu: %w", err)
	}
	if err := s.kv.Put(ctx, kvstore.KeyMenuItems, raw); err != nil {
		return fmt.Errorf("save menu: %w", err)
	}
	return nil
}
