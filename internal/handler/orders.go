package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/billing"
	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/enum"
	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/middleware"
	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/model"
	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/service"
	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/store"
	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/ws"
)

// OrderServicer is the submission side of the order workflow.
type OrderServicer interface {
	Submit(ctx context.Context, req service.SubmitRequest) (model.Order, bool, error)
	AddItems(ctx context.Context, orderID string, items []service.SubmitItem) (model.Order, error)
	Pay(ctx context.Context, orderID string) (model.Order, error)
}

// OrderReader is the query and lifecycle side of the order store.
type OrderReader interface {
	List(ctx context.Context) ([]model.Order, error)
	GetByID(ctx context.Context, id string) (model.Order, error)
	SetStatus(ctx context.Context, id, status string) (model.Order, error)
}

// TaxRateSource yields the configured tax rate for bill computation.
type TaxRateSource interface {
	Get(ctx context.Context) (model.RestaurantConfig, error)
}

// Broadcaster pushes order events to connected clients.
type Broadcaster interface {
	Broadcast(event ws.Event)
}

type OrderHandler struct {
	svc      OrderServicer
	orders   OrderReader
	settings TaxRateSource
	hub      Broadcaster
}

func NewOrderHandler(svc OrderServicer, orders OrderReader, settings TaxRateSource, hub Broadcaster) *OrderHandler {
	return &OrderHandler{svc: svc, orders: orders, settings: settings, hub: hub}
}

type orderItemRequest struct {
	MenuItemID string `json:"menuItemId"`
	Quantity   int    `json:"quantity"`
	Comment    string `json:"comment"`
}

type createOrderRequest struct {
	Type          string             `json:"type"`
	TableNumber   int                `json:"tableNumber"`
	CustomerName  string             `json:"customerName"`
	CustomerPhone string             `json:"customerPhone"`
	Items         []orderItemRequest `json:"items"`
}

func toSubmitItems(items []orderItemRequest) []service.SubmitItem {
	out := make([]service.SubmitItem, 0, len(items))
	for _, it := range items {
		out = append(out, service.SubmitItem{MenuItemID: it.MenuItemID, Quantity: it.Quantity, Comment: it.Comment})
	}
	return out
}

// Create submits an order. When the target dine-in table already has an
// active order the items are merged into it and 200 is returned; a
// fresh order returns 201.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	sub := service.SubmitRequest{
		Type:          req.Type,
		TableNumber:   req.TableNumber,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Items:         toSubmitItems(req.Items),
	}
	if req.Type == enum.OrderTypeDineIn || claims.Role == enum.RoleWaiter {
		sub.WaiterID = claims.UserID
		sub.WaiterUsername = claims.Username
	}

	order, created, err := h.svc.Submit(r.Context(), sub)
	if err != nil {
		h.writeOrderError(w, err)
		return
	}

	if created {
		h.hub.Broadcast(ws.NewEvent(ws.EventOrderCreated, order))
		writeJSON(w, http.StatusCreated, order)
		return
	}
	h.hub.Broadcast(ws.NewEvent(ws.EventOrderUpdated, order))
	writeJSON(w, http.StatusOK, order)
}

// List returns all orders, optionally filtered by ?status= and ?type=.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list orders")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	status := r.URL.Query().Get("status")
	orderType := r.URL.Query().Get("type")

	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if status != "" && o.Status != status {
			continue
		}
		if orderType != "" && o.Type != orderType {
			continue
		}
		out = append(out, o)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeOrderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

type addItemsRequest struct {
	Items []orderItemRequest `json:"items"`
}

func (h *OrderHandler) AddItems(w http.ResponseWriter, r *http.Request) {
	var req addItemsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	order, err := h.svc.AddItems(r.Context(), chi.URLParam(r, "id"), toSubmitItems(req.Items))
	if err != nil {
		h.writeOrderError(w, err)
		return
	}
	h.hub.Broadcast(ws.NewEvent(ws.EventOrderUpdated, order))
	writeJSON(w, http.StatusOK, order)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	order, err := h.orders.SetStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.writeOrderError(w, err)
		return
	}
	h.hub.Broadcast(ws.NewEvent(ws.EventOrderStatusChanged, order))
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) Pay(w http.ResponseWriter, r *http.Request) {
	order, err := h.svc.Pay(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeOrderError(w, err)
		return
	}
	h.hub.Broadcast(ws.NewEvent(ws.EventOrderStatusChanged, order))
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.SetStatus(r.Context(), chi.URLParam(r, "id"), enum.OrderStatusCancelled)
	if err != nil {
		h.writeOrderError(w, err)
		return
	}
	h.hub.Broadcast(ws.NewEvent(ws.EventOrderStatusChanged, order))
	writeJSON(w, http.StatusOK, order)
}

// billResponse renders every monetary amount as a fixed two-decimal
// string so clients never see float artifacts.
type billResponse struct {
	OrderID        string `json:"orderId"`
	Subtotal       string `json:"subtotal"`
	TaxRate        string `json:"taxRate"`
	TaxAmount      string `json:"taxAmount"`
	DiscountAmount string `json:"discountAmount"`
	TotalAmount    string `json:"totalAmount"`
	PaymentStatus  string `json:"paymentStatus"`
}

func (h *OrderHandler) Bill(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeOrderError(w, err)
		return
	}

	cfg, err := h.settings.Get(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("load settings for bill")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	discount := 0.0
	if raw := r.URL.Query().Get("discount_percent"); raw != "" {
		discount, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "discount_percent must be a number"})
			return
		}
	}

	bill, err := billing.Compute(order, cfg.TaxRate, discount)
	if err != nil {
		if errors.Is(err, billing.ErrInvalidDiscount) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Error().Err(err).Str("order_id", order.ID).Msg("compute bill")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, billResponse{
		OrderID:        bill.OrderID,
		Subtotal:       money(bill.Subtotal),
		TaxRate:        bill.TaxRate.String(),
		TaxAmount:      money(bill.TaxAmount),
		DiscountAmount: money(bill.DiscountAmount),
		TotalAmount:    money(bill.TotalAmount),
		PaymentStatus:  bill.PaymentStatus,
	})
}

func (h *OrderHandler) writeOrderError(w http.ResponseWriter, err error) {
	var transErr *store.TransitionError
	switch {
	case errors.As(err, &transErr):
		writeJSON(w, http.StatusConflict, map[string]string{"error": transErr.Error()})
	case errors.Is(err, store.ErrOrderNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrOrderClosed):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrEmptyItems),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidOrderType),
		errors.Is(err, service.ErrInvalidTable),
		errors.Is(err, service.ErrUnknownMenuItem),
		errors.Is(err, store.ErrEmptyItems),
		errors.Is(err, store.ErrInvalidStatus),
		errors.Is(err, store.ErrInvalidOrdType):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		log.Error().Err(err).Msg("order operation")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
