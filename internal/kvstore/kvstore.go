// Package kvstore abstracts the persistence medium as a flat key-value
// store holding one JSON blob per logical collection. The web prototype
// this replaces kept the same blobs in browser local storage.
package kvstore

import (
	"context"
	"errors"
)

// Collection keys. Kept verbatim from the previous client so a dump of
// its storage can be imported as-is.
const (
	KeyOrders    = "restaurant_shared_orders_v1"
	KeyMenuItems = "restaurant_menu_items_v1"
	KeyUsers     = "restaurant_users_v3"
	KeyConfig    = "restaurant_config_v1"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("kvstore: key not found")

// Store is the persistence boundary. Implementations must make Put
// atomic per key; callers serialize their own read-modify-write cycles.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}
