// Package service implements order submission business rules that sit
// above the stores: menu snapshotting, merging into the active order of
// a dine-in table, and the re-acknowledge reset.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/enum"
	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/model"
	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/store"
)

// Errors returned by the order service.
var (
	ErrEmptyItems       = errors.New("items are required")
	ErrInvalidQuantity  = errors.New("quantity must be >= 1")
	ErrInvalidOrderType = errors.New("invalid order type")
	ErrInvalidTable     = errors.New("table number out of range")
	ErrUnknownMenuItem  = errors.New("menu item not found")
	ErrOrderClosed      = errors.New("order is closed")
)

// Orders is the order-store surface the service needs.
type Orders interface {
	GetByID(ctx context.Context, id string) (model.Order, error)
	FindActiveByTable(ctx context.Context, table int) (model.Order, bool, error)
	Upsert(ctx context.Context, order model.Order) error
	SetStatus(ctx context.Context, id, status string) (model.Order, error)
}

// Menu is the catalog surface the service needs.
type Menu interface {
	GetByID(ctx context.Context, id string) (model.MenuItem, error)
}

// Settings is the configuration surface the service needs.
type Settings interface {
	Get(ctx context.Context) (model.RestaurantConfig, error)
}

// SubmitItem is one requested order line.
type SubmitItem struct {
	MenuItemID string
	Quantity   int
	Comment    string
}

// SubmitRequest creates a new order, or merges into the active order of
// the requested dine-in table.
type SubmitRequest struct {
	Type           string
	TableNumber    int
	WaiterID       string
	WaiterUsername string
	CustomerName   string
	CustomerPhone  string
	Items          []SubmitItem
}

// OrderService coordinates order submission across the stores.
type OrderService struct {
	orders   Orders
	menu     Menu
	settings Settings
}

// NewOrderService creates a new OrderService.
func NewOrderService(orders Orders, menu Menu, settings Settings) *OrderService {
	return &OrderService{orders: orders, menu: menu, settings: settings}
}

// Submit validates the request, snapshots menu items, and persists the
// order. For a dine-in table with an active order the new lines are
// merged into it instead of opening a second order; the returned bool
// is true when a new order was created.
func (s *OrderService) Submit(ctx context.Context, req SubmitRequest) (model.Order, bool, error) {
	if !enum.IsValidOrderType(req.Type) {
		return model.Order{}, false, ErrInvalidOrderType
	}

	lines, err := s.buildLines(ctx, req.Items)
	if err != nil {
		return model.Order{}, false, err
	}

	if req.Type == enum.OrderTypeDineIn {
		cfg, err := s.settings.Get(ctx)
		if err != nil {
			return model.Order{}, false, err
		}
		if req.TableNumber < 1 || req.TableNumber > cfg.TableCount {
			return model.Order{}, false, ErrInvalidTable
		}

		existing, found, err := s.orders.FindActiveByTable(ctx, req.TableNumber)
		if err != nil {
			return model.Order{}, false, err
		}
		if found {
			merged, err := s.mergeInto(ctx, existing, lines)
			return merged, false, err
		}
	}

	order := model.Order{
		ID:             uuid.NewString(),
		Items:          lines,
		Status:         enum.OrderStatusPending,
		Type:           req.Type,
		WaiterID:       req.WaiterID,
		WaiterUsername: req.WaiterUsername,
	}
	if req.Type == enum.OrderTypeDineIn {
		order.TableNumber = req.TableNumber
	} else {
		order.CustomerName = req.CustomerName
		order.CustomerPhone = req.CustomerPhone
	}
	if err := s.orders.Upsert(ctx, order); err != nil {
		return model.Order{}, false, err
	}

	created, err := s.orders.GetByID(ctx, order.ID)
	if err != nil {
		return model.Order{}, false, err
	}
	return created, true, nil
}

// AddItems merges additional lines into an existing open order.
func (s *OrderService) AddItems(ctx context.Context, orderID string, items []SubmitItem) (model.Order, error) {
	lines, err := s.buildLines(ctx, items)
	if err != nil {
		return model.Order{}, err
	}
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return model.Order{}, err
	}
	if enum.IsTerminalStatus(order.Status) {
		return model.Order{}, ErrOrderClosed
	}
	return s.mergeInto(ctx, order, lines)
}

// Pay finalizes payment on an order. For dine-in this is the
// bill_requested→paid step; takeaway orders are paid directly from
// pending or ready. Transition legality is enforced by the store.
func (s *OrderService) Pay(ctx context.Context, orderID string) (model.Order, error) {
	return s.orders.SetStatus(ctx, orderID, enum.OrderStatusPaid)
}

// buildLines resolves requested items against the catalog, copying each
// menu item into the order so later menu edits cannot rewrite history.
func (s *OrderService) buildLines(ctx context.Context, items []SubmitItem) ([]model.OrderItem, error) {
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}
	lines := make([]model.OrderItem, 0, len(items))
	for i, it := range items {
		if it.Quantity < 1 {
			return nil, fmt.Errorf("items[%d]: %w", i, ErrInvalidQuantity)
		}
		menuItem, err := s.menu.GetByID(ctx, it.MenuItemID)
		if err != nil {
			if errors.Is(err, store.ErrMenuItemNotFound) {
				return nil, fmt.Errorf("items[%d]: %w", i, ErrUnknownMenuItem)
			}
			return nil, err
		}
		lines = append(lines, model.OrderItem{
			MenuItem: menuItem,
			Quantity: it.Quantity,
			Comment:  it.Comment,
		})
	}
	return lines, nil
}

// mergeInto folds new lines into an existing order. Lines sharing a
// menu item id and comment increment quantity; others append. If the
// order had already left pending, it drops back so the kitchen
// re-acknowledges the additions.
func (s *OrderService) mergeInto(ctx context.Context, order model.Order, lines []model.OrderItem) (model.Order, error) {
	order.Items = mergeItems(order.Items, lines)
	switch order.Status {
	case enum.OrderStatusReady, enum.OrderStatusServed, enum.OrderStatusBillRequested:
		order.Status = enum.OrderStatusPending
	}
	if err := s.orders.Upsert(ctx, order); err != nil {
		return model.Order{}, err
	}
	return s.orders.GetByID(ctx, order.ID)
}

func mergeItems(existing, incoming []model.OrderItem) []model.OrderItem {
	merged := make([]model.OrderItem, len(existing))
	copy(merged, existing)
	for _, line := range incoming {
		matched := false
		for i, cur := range merged {
			if cur.ID == line.ID && cur.Comment == line.Comment {
				merged[i].Quantity += line.Quantity
				matched = true
				break
			}
		}
		if !matched {
			merged = append(merged, line)
		}
	}
	return merged
}
