// Package store implements the collection stores. Each collection is
// one JSON blob in the key-value store; every mutation is a full
// read-modify-write of that blob, serialized by a per-store mutex.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/enum"
	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/kvstore"
	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/model"
)

// Errors returned by the order store.
var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrEmptyItems     = errors.New("order must have at least one item")
	ErrInvalidStatus  = errors.New("invalid order status")
	ErrInvalidOrdType = errors.New("invalid order type")
)

// TransitionError reports a status change the lifecycle does not allow.
type TransitionError struct {
	OrderID string
	From    string
	To      string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("order %s: cannot transition from %s to %s", e.OrderID, e.From, e.To)
}

// allowedTransitions maps current status to permitted next statuses,
// per order type. Dine-in runs the full kitchen + billing lifecycle;
// takeaway skips served and bill_requested and is paid directly.
var dineInTransitions = map[string][]string{
	enum.OrderStatusPending:       {enum.OrderStatusPreparing, enum.OrderStatusBillRequested, enum.OrderStatusCancelled},
	enum.OrderStatusPreparing:     {enum.OrderStatusReady, enum.OrderStatusBillRequested, enum.OrderStatusCancelled},
	enum.OrderStatusReady:         {enum.OrderStatusServed, enum.OrderStatusBillRequested, enum.OrderStatusCancelled},
	enum.OrderStatusServed:        {enum.OrderStatusBillRequested, enum.OrderStatusCancelled},
	enum.OrderStatusBillRequested: {enum.OrderStatusPaid, enum.OrderStatusCancelled},
}

var takeawayTransitions = map[string][]string{
	enum.OrderStatusPending:   {enum.OrderStatusPreparing, enum.OrderStatusPaid, enum.OrderStatusCancelled},
	enum.OrderStatusPreparing: {enum.OrderStatusReady, enum.OrderStatusCancelled},
	enum.OrderStatusReady:     {enum.OrderStatusPaid, enum.OrderStatusCancelled},
}

// transitionAllowed reports whether an order of the given type may move
// from one status to another. Re-setting the current status is always
// allowed: it is an idempotent retry that only refreshes the timestamp.
func transitionAllowed(orderType, from, to string) bool {
	if from == to {
		return true
	}
	table := dineInTransitions
	if orderType == enum.OrderTypeTakeaway {
		table = takeawayTransitions
	}
	for _, s := range table[from] {
		if s == to {
			return true
		}
	}
	return false
}

// OrderStore is the single source of truth for orders across all roles.
type OrderStore struct {
	kv kvstore.Store
	mu sync.Mutex
}

// NewOrderStore creates an OrderStore over the given key-value store.
func NewOrderStore(kv kvstore.Store) *OrderStore {
	return &OrderStore{kv: kv}
}

// List returns all persisted orders. Callers filter by status or type.
func (s *OrderStore) List(ctx context.Context) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// GetByID returns the order with the given id or ErrOrderNotFound.
func (s *OrderStore) GetByID(ctx context.Context, id string) (model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load(ctx)
	if err != nil {
		return model.Order{}, err
	}
	for _, o := range orders {
		if o.ID == id {
			return o, nil
		}
	}
	return model.Order{}, ErrOrderNotFound
}

// FindActiveByTable returns the non-terminal order for a dine-in table,
// if any. A table holds at most one active order at a time; submission
// merges into it instead of opening a second one.
func (s *OrderStore) FindActiveByTable(ctx context.Context, table int) (model.Order, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load(ctx)
	if err != nil {
		return model.Order{}, false, err
	}
	for _, o := range orders {
		if o.Type == enum.OrderTypeDineIn && o.TableNumber == table && !enum.IsTerminalStatus(o.Status) {
			return o, true, nil
		}
	}
	return model.Order{}, false, nil
}

// Upsert replaces the order with the same id wholesale, or appends it.
// The timestamp is refreshed; an order without items is rejected before
// anything is written.
func (s *OrderStore) Upsert(ctx context.Context, order model.Order) error {
	if len(order.Items) == 0 {
		return ErrEmptyItems
	}
	if !enum.IsValidOrderType(order.Type) {
		return ErrInvalidOrdType
	}
	if !enum.IsValidOrderStatus(order.Status) {
		return ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load(ctx)
	if err != nil {
		return err
	}

	order.Timestamp = time.Now().UTC()
	replaced := false
	for i, o := range orders {
		if o.ID == order.ID {
			orders[i] = order
			replaced = true
			break
		}
	}
	if !replaced {
		orders = append(orders, order)
	}
	return s.save(ctx, orders)
}

// SetStatus moves an order to a new status, refreshing its timestamp.
// Disallowed moves return a *TransitionError and write nothing; a
// missing id returns ErrOrderNotFound.
func (s *OrderStore) SetStatus(ctx context.Context, id, status string) (model.Order, error) {
	if !enum.IsValidOrderStatus(status) {
		return model.Order{}, ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load(ctx)
	if err != nil {
		return model.Order{}, err
	}
	for i, o := range orders {
		if o.ID != id {
			continue
		}
		if !transitionAllowed(o.Type, o.Status, status) {
			return model.Order{}, &TransitionError{OrderID: id, From: o.Status, To: status}
		}
		orders[i].Status = status
		orders[i].Timestamp = time.Now().UTC()
		if err := s.save(ctx, orders); err != nil {
			return model.Order{}, err
		}
		return orders[i], nil
	}
	return model.Order{}, ErrOrderNotFound
}

// load reads and decodes the collection blob. Callers hold s.mu.
func (s *OrderStore) load(ctx context.Context) ([]model.Order, error) {
	raw, err := s.kv.Get(ctx, kvstore.KeyOrders)
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load orders: %w", err)
	}
	var orders []model.Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	for i := range orders {
		// Older releases wrote "billed" as a terminal status.
		if orders[i].Status == enum.OrderStatusBilled {
			orders[i].Status = enum.OrderStatusPaid
		}
	}
	return orders, nil
}

// save encodes and writes the collection blob. Callers hold s.mu.
func (s *OrderStore) save(ctx context.Context, orders []model.Order) error {
	raw, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("encode orders: %w", err)
	}
	if err := s.kv.Put(ctx, kvstore.KeyOrders, raw); err != nil {
		return fmt.Errorf("save orders: %w", err)
	}
	return nil
}
