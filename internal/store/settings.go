package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/kvstore"
	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/model"
)

// Defaults applied when the config blob has never been written.
const (
	DefaultTableCount        = 20
	DefaultTaxRate           = 0.08
	DefaultRestaurantName    = "Gastronomic Gatherer"
	DefaultRestaurantAddress = "123 Foodie Lane, Flavor Town, USA"
)

// Errors returned by the settings store.
var (
	ErrInvalidTableCount = errors.New("table count must be between 1 and 100")
	ErrInvalidTaxRate    = errors.New("tax rate must be between 0 and 100 percent")
	ErrEmptyName         = errors.New("restaurant name cannot be empty")
	ErrEmptyAddress      = errors.New("restaurant address cannot be empty")
)

// SettingsUpdate is a partial update; nil fields keep their current
// value. TaxPercent is entered as a percentage (8 for 8%) and stored as
// a decimal fraction.
type SettingsUpdate struct {
	TableCount        *int
	TaxPercent        *float64
	RestaurantName    *string
	RestaurantAddress *string
}

// SettingsStore holds the singleton restaurant configuration.
type SettingsStore struct {
	kv kvstore.Store
	mu sync.Mutex
}

// NewSettingsStore creates a SettingsStore over the given key-value store.
func NewSettingsStore(kv kvstore.Store) *SettingsStore {
	return &SettingsStore{kv: kv}
}

// Get returns the current configuration, falling back to defaults when
// nothing has been stored yet.
func (s *SettingsStore) Get(ctx context.Context) (model.RestaurantConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// TableNumbers enumerates 1..tableCount for the current configuration.
func (s *SettingsStore) TableNumbers(ctx context.Context) ([]int, error) {
	cfg, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	tables := make([]int, cfg.TableCount)
	for i := range tables {
		tables[i] = i + 1
	}
	return tables, nil
}

// Update validates and applies a partial update. Nothing is written
// when any field fails validation.
func (s *SettingsStore) Update(ctx context.Context, upd SettingsUpdate) (model.RestaurantConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.load(ctx)
	if err != nil {
		return model.RestaurantConfig{}, err
	}

	if upd.TableCount != nil {
		if *upd.TableCount < 1 || *upd.TableCount > 100 {
			return model.RestaurantConfig{}, ErrInvalidTableCount
		}
		cfg.TableCount = *upd.TableCount
	}
	if upd.TaxPercent != nil {
		if *upd.TaxPercent < 0 || *upd.TaxPercent > 100 {
			return model.RestaurantConfig{}, ErrInvalidTaxRate
		}
		cfg.TaxRate = *upd.TaxPercent / 100
	}
	if upd.RestaurantName != nil {
		if strings.TrimSpace(*upd.RestaurantName) == "" {
			return model.RestaurantConfig{}, ErrEmptyName
		}
		cfg.RestaurantName = strings.TrimSpace(*upd.RestaurantName)
	}
	if upd.RestaurantAddress != nil {
		if strings.TrimSpace(*upd.RestaurantAddress) == "" {
			return model.RestaurantConfig{}, ErrEmptyAddress
		}
		cfg.RestaurantAddress = strings.TrimSpace(*upd.RestaurantAddress)
	}

	if err := s.save(ctx, cfg); err != nil {
		return model.RestaurantConfig{}, err
	}
	return cfg, nil
}

func (s *SettingsStore) load(ctx context.Context) (model.RestaurantConfig, error) {
	defaults := model.RestaurantConfig{
		TableCount:        DefaultTableCount,
		TaxRate:           DefaultTaxRate,
		RestaurantName:    DefaultRestaurantName,
		RestaurantAddress: DefaultRestaurantAddress,
	}
	raw, err := s.kv.Get(ctx, kvstore.KeyConfig)
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return defaults, nil
		}
		return model.RestaurantConfig{}, fmt.Errorf("load config: %w", err)
	}
	var cfg model.RestaurantConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return model.RestaurantConfig{}, fmt.Errorf("decode config: %w", err)
	}
	// Fill fields missing from blobs written by older releases.
	if cfg.TableCount == 0 {
		cfg.TableCount = defaults.TableCount
	}
	if cfg.RestaurantName == "" {
		cfg.RestaurantName = defaults.RestaurantName
	}
	if cfg.RestaurantAddress == "" {
		cfg.RestaurantAddress = defaults.RestaurantAddress
	}
	return cfg, nil
}

func (s *SettingsStore) save(ctx context.Context, cfg model.RestaurantConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := s.kv.Put(ctx, kvstore.KeyConfig, raw); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}
