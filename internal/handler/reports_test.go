package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/enum"
	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/kvstore"
	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/model"
	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/store"
)

func seedPaidOrders(t *testing.T, kv kvstore.Store) {
	t.Helper()
	pizza := model.MenuItem{ID: "m1", Name: "Margherita Pizza", Price: 400, Category: "Main Course"}
	kulfi := model.MenuItem{ID: "m2", Name: "Mango Kulfi", Price: 150, Category: "Desserts"}

	orders := []model.Order{
		{
			ID:          "paid-dine-in",
			TableNumber: 1,
			Items:       []model.OrderItem{{MenuItem: pizza, Quantity: 2}},
			Status:      enum.OrderStatusPaid,
			Timestamp:   time.Now(),
			Type:        enum.OrderTypeDineIn,
		},
		{
			ID:        "paid-takeaway",
			Items:     []model.OrderItem{{MenuItem: kulfi, Quantity: 4}},
			Status:    enum.OrderStatusPaid,
			Timestamp: time.Now(),
			Type:      enum.OrderTypeTakeaway,
		},
		{
			ID:          "still-open",
			TableNumber: 2,
			Items:       []model.OrderItem{{MenuItem: pizza, Quantity: 5}},
			Status:      enum.OrderStatusPreparing,
			Timestamp:   time.Now(),
			Type:        enum.OrderTypeDineIn,
		},
	}
	raw, err := json.Marshal(orders)
	if err != nil {
		t.Fatal(err)
	}
	if err := kv.Put(context.Background(), kvstore.KeyOrders, raw); err != nil {
		t.Fatal(err)
	}
}

func TestSalesReport(t *testing.T) {
	kv := kvstore.NewMemory()
	seedPaidOrders(t, kv)
	h := NewReportsHandler(store.NewOrderStore(kv), store.NewSettingsStore(kv))

	req := httptest.NewRequest(http.MethodGet, "/reports/sales", nil)
	rec := httptest.NewRecorder()
	h.Sales(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var report salesReport
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatal(err)
	}
	if report.OrdersPaid != 2 || report.DineInOrders != 1 || report.TakeawayOrders != 1 {
		t.Errorf("counts = %+v", report)
	}
	// 2*400 + 4*150 = 1400, tax 8% = 112.
	if report.GrossSales != "1400.00" {
		t.Errorf("grossSales = %s, want 1400.00", report.GrossSales)
	}
	if report.TaxCollected != "112.00" {
		t.Errorf("taxCollected = %s, want 112.00", report.TaxCollected)
	}
	if report.TotalRevenue != "1512.00" {
		t.Errorf("totalRevenue = %s, want 1512.00", report.TotalRevenue)
	}

	if len(report.TopItems) != 2 {
		t.Fatalf("topItems = %+v", report.TopItems)
	}
	if report.TopItems[0].Name != "Mango Kulfi" || report.TopItems[0].Quantity != 4 {
		t.Errorf("topItems[0] = %+v, want the kulfi line first", report.TopItems[0])
	}
}

func TestSalesReportDateFilter(t *testing.T) {
	kv := kvstore.NewMemory()
	seedPaidOrders(t, kv)
	h := NewReportsHandler(store.NewOrderStore(kv), store.NewSettingsStore(kv))

	req := httptest.NewRequest(http.MethodGet, "/reports/sales?start_date=2099-01-01", nil)
	rec := httptest.NewRecorder()
	h.Sales(rec, req)

	var report salesReport
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatal(err)
	}
	if report.OrdersPaid != 0 || report.GrossSales != "0.00" {
		t.Errorf("future window report = %+v, want empty", report)
	}

	req = httptest.NewRequest(http.MethodGet, "/reports/sales?start_date=bogus", nil)
	rec = httptest.NewRecorder()
	h.Sales(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad start_date: status = %d, want 400", rec.Code)
	}
}
