package handler

import (
	"net/http"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/enum"
)

type ReportsHandler struct {
	orders   OrderReader
	settings TaxRateSource
}

func NewReportsHandler(orders OrderReader, settings TaxRateSource) *ReportsHandler {
	return &ReportsHandler{orders: orders, settings: settings}
}

type topItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Revenue  string `json:"revenue"`
}

type salesReport struct {
	OrdersPaid     int       `json:"ordersPaid"`
	DineInOrders   int       `json:"dineInOrders"`
	TakeawayOrders int       `json:"takeawayOrders"`
	GrossSales     string    `json:"grossSales"`
	TaxCollected   string    `json:"taxCollected"`
	TotalRevenue   string    `json:"totalRevenue"`
	TopItems       []topItem `json:"topItems"`
}

// Sales summarizes paid orders, optionally restricted by ?start_date=
// and ?end_date= (YYYY-MM-DD, end date inclusive).
func (h *ReportsHandler) Sales(w http.ResponseWriter, r *http.Request) {
	var start, end time.Time
	if raw := r.URL.Query().Get("start_date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "start_date must be YYYY-MM-DD"})
			return
		}
		start = t
	}
	if raw := r.URL.Query().Get("end_date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "end_date must be YYYY-MM-DD"})
			return
		}
		end = t.Add(24 * time.Hour)
	}

	orders, err := h.orders.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list orders for report")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	cfg, err := h.settings.Get(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("load settings for report")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	report := salesReport{TopItems: []topItem{}}
	gross := decimal.Zero

	type itemAgg struct {
		quantity int
		revenue  decimal.Decimal
	}
	byName := map[string]*itemAgg{}

	for _, o := range orders {
		if o.Status != enum.OrderStatusPaid {
			continue
		}
		if !start.IsZero() && o.Timestamp.Before(start) {
			continue
		}
		if !end.IsZero() && !o.Timestamp.Before(end) {
			continue
		}

		report.OrdersPaid++
		switch o.Type {
		case enum.OrderTypeDineIn:
			report.DineInOrders++
		case enum.OrderTypeTakeaway:
			report.TakeawayOrders++
		}

		for _, it := range o.Items {
			line := decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity)))
			gross = gross.Add(line)

			agg := byName[it.Name]
			if agg == nil {
				agg = &itemAgg{}
				byName[it.Name] = agg
			}
			agg.quantity += it.Quantity
			agg.revenue = agg.revenue.Add(line)
		}
	}

	tax := gross.Mul(decimal.NewFromFloat(cfg.TaxRate))
	report.GrossSales = money(gross)
	report.TaxCollected = money(tax)
	report.TotalRevenue = money(gross.Add(tax))

	for name, agg := range byName {
		report.TopItems = append(report.TopItems, topItem{
			Name:     name,
			Quantity: agg.quantity,
			Revenue:  money(agg.revenue),
		})
	}
	sort.Slice(report.TopItems, func(i, j int) bool {
		if report.TopItems[i].Quantity != report.TopItems[j].Quantity {
			return report.TopItems[i].Quantity > report.TopItems[j].Quantity
		}
		return report.TopItems[i].Name < report.TopItems[j].Name
	})

	writeJSON(w, http.StatusOK, report)
}
