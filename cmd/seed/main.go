// Command seed populates a fresh database with default users, the
// starter menu, and optionally a few demo orders. Existing collections
// are left untouched.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/enum"
	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/kvstore"
	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/model"
)

var defaultMenu = []struct {
	name     string
	price    float64
	category string
}{
	{"Crispy Spring Rolls", 250, "Appetizers"},
	{"Garlic Bread Supreme", 180, "Appetizers"},
	{"Paneer Tikka Skewers", 320, "Appetizers"},
	{"Butter Chicken", 450, "Main Course"},
	{"Lamb Rogan Josh", 520, "Main Course"},
	{"Vegetable Biryani", 380, "Main Course"},
	{"Chocolate Lava Cake", 220, "Desserts"},
	{"Mango Kulfi", 150, "Desserts"},
	{"Margherita Pizza", 400, "Main Course"},
	{"Mushroom Risotto", 550, "Main Course"},
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	withOrders := flag.Bool("demo-orders", false, "also seed a few demo orders")
	flag.Parse()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	kv, err := kvstore.NewPostgres(ctx, databaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer kv.Close()

	if err := seedUsers(ctx, kv); err != nil {
		log.Fatal().Err(err).Msg("seed users")
	}
	if err := seedMenu(ctx, kv); err != nil {
		log.Fatal().Err(err).Msg("seed menu")
	}
	if *withOrders {
		if err := seedOrders(ctx, kv); err != nil {
			log.Fatal().Err(err).Msg("seed orders")
		}
	}

	log.Info().Msg("seeding complete")
}

func collectionExists(ctx context.Context, kv kvstore.Store, key string) (bool, error) {
	_, err := kv.Get(ctx, key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func putJSON(ctx context.Context, kv kvstore.Store, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return kv.Put(ctx, key, raw)
}

func seedUsers(ctx context.Context, kv kvstore.Store) error {
	exists, err := collectionExists(ctx, kv, kvstore.KeyUsers)
	if err != nil {
		return err
	}
	if exists {
		log.Info().Msg("users already present, skipping")
		return nil
	}

	accounts := []struct {
		username string
		password string
		role     string
	}{
		{"admin", "admin", enum.RoleAdmin},
		{"kitchen", "kitchen", enum.RoleKitchen},
		{"waiter1", "password", enum.RoleWaiter},
	}

	users := make([]model.User, 0, len(accounts))
	for _, a := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		users = append(users, model.User{
			ID:           uuid.NewString(),
			Username:     a.username,
			PasswordHash: string(hash),
			Role:         a.role,
		})
		log.Info().Str("username", a.username).Str("role", a.role).Msg("seeded user")
	}
	return putJSON(ctx, kv, kvstore.KeyUsers, users)
}

func seedMenu(ctx context.Context, kv kvstore.Store) error {
	exists, err := collectionExists(ctx, kv, kvstore.KeyMenuItems)
	if err != nil {
		return err
	}
	if exists {
		log.Info().Msg("menu already present, skipping")
		return nil
	}

	items := make([]model.MenuItem, 0, len(defaultMenu))
	for _, m := range defaultMenu {
		items = append(items, model.MenuItem{
			ID:       uuid.NewString(),
			Name:     m.name,
			Price:    m.price,
			Category: m.category,
		})
	}
	log.Info().Int("count", len(items)).Msg("seeded menu items")
	return putJSON(ctx, kv, kvstore.KeyMenuItems, items)
}

func seedOrders(ctx context.Context, kv kvstore.Store) error {
	exists, err := collectionExists(ctx, kv, kvstore.KeyOrders)
	if err != nil {
		return err
	}
	if exists {
		log.Info().Msg("orders already present, skipping")
		return nil
	}

	var menu []model.MenuItem
	raw, err := kv.Get(ctx, kvstore.KeyMenuItems)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, &menu); err != nil {
		return err
	}
	if len(menu) < 2 {
		return errors.New("not enough menu items to seed orders")
	}

	orders := []model.Order{
		{
			ID:          uuid.NewString(),
			TableNumber: 3,
			Items: []model.OrderItem{
				{MenuItem: menu[0], Quantity: 2},
				{MenuItem: menu[1], Quantity: 1, Comment: "extra spicy"},
			},
			Status:    enum.OrderStatusPending,
			Timestamp: time.Now(),
			Type:      enum.OrderTypeDineIn,
		},
		{
			ID:        uuid.NewString(),
			Items:     []model.OrderItem{{MenuItem: menu[1], Quantity: 3}},
			Status:    enum.OrderStatusPreparing,
			Timestamp: time.Now(),
			Type:      enum.OrderTypeTakeaway,

			CustomerName:  "Walk-in",
			CustomerPhone: "555-0100",
		},
	}
	log.Info().Int("count", len(orders)).Msg("seeded demo orders")
	return putJSON(ctx, kv, kvstore.KeyOrders, orders)
}
