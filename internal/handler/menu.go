package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/model"
	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/store"
)

type MenuStore interface {
	List(ctx context.Context) ([]model.MenuItem, error)
	Add(ctx context.Context, name string, price float64, category string) (model.MenuItem, error)
	Update(ctx context.Context, id, name string, price float64, category string) (model.MenuItem, error)
	Delete(ctx context.Context, id string) error
}

type MenuHandler struct {
	menu MenuStore
}

func NewMenuHandler(menu MenuStore) *MenuHandler {
	return &MenuHandler{menu: menu}
}

func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.menu.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list menu items")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if items == nil {
		items = []model.MenuItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

type menuItemRequest struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req menuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	item, err := h.menu.Add(r.Context(), req.Name, req.Price, req.Category)
	if err != nil {
		h.writeMenuError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req menuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	item, err := h.menu.Update(r.Context(), id, req.Name, req.Price, req.Category)
	if err != nil {
		h.writeMenuError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.menu.Delete(r.Context(), id); err != nil {
		h.writeMenuError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "menu item deleted"})
}

func (h *MenuHandler) writeMenuError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrMenuItemNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, store.ErrDuplicateMenuItem):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, store.ErrInvalidPrice), errors.Is(err, store.ErrMissingMenuFields):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		log.Error().Err(err).Msg("menu store")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
