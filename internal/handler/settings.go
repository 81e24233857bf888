package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/model"
	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/store"
)

type SettingsStore interface {
	Get(ctx context.Context) (model.RestaurantConfig, error)
	Update(ctx context.Context, upd store.SettingsUpdate) (model.RestaurantConfig, error)
	TableNumbers(ctx context.Context) ([]int, error)
}

type SettingsHandler struct {
	settings SettingsStore
}

func NewSettingsHandler(settings SettingsStore) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.settings.Get(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("load settings")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// updateSettingsRequest carries partial updates; absent fields are left
// unchanged. taxPercent is a percentage (8 means 8%).
type updateSettingsRequest struct {
	TableCount        *int     `json:"tableCount"`
	TaxPercent        *float64 `json:"taxPercent"`
	RestaurantName    *string  `json:"restaurantName"`
	RestaurantAddress *string  `json:"restaurantAddress"`
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	cfg, err := h.settings.Update(r.Context(), store.SettingsUpdate{
		TableCount:        req.TableCount,
		TaxPercent:        req.TaxPercent,
		RestaurantName:    req.RestaurantName,
		RestaurantAddress: req.RestaurantAddress,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrInvalidTableCount),
			errors.Is(err, store.ErrInvalidTaxRate),
			errors.Is(err, store.ErrEmptyName),
			errors.Is(err, store.ErrEmptyAddress):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			log.Error().Err(err).Msg("update settings")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (h *SettingsHandler) Tables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.settings.TableNumbers(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list tables")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string][]int{"tables": tables})
}
