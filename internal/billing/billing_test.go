package billing

import (
	"errors"
	"testing"

	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/enum"
	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/model"
)

func orderWith(status string, items ...model.OrderItem) model.Order {
	return model.Order{ID: "o1", Items: items, Status: status, Type: enum.OrderTypeDineIn}
}

func line(price float64, qty int) model.OrderItem {
	return model.OrderItem{MenuItem: model.MenuItem{ID: "m", Name: "x", Price: price}, Quantity: qty}
}

func TestComputeBasic(t *testing.T) {
	order := orderWith(enum.OrderStatusBillRequested, line(400, 2))

	bill, err := Compute(order, 0.08, 0)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if got := bill.Subtotal.StringFixed(2); got != "800.00" {
		t.Errorf("subtotal = %s, want 800.00", got)
	}
	if got := bill.TaxAmount.StringFixed(2); got != "64.00" {
		t.Errorf("tax = %s, want 64.00", got)
	}
	if got := bill.TotalAmount.StringFixed(2); got != "864.00" {
		t.Errorf("total = %s, want 864.00", got)
	}
	if !bill.DiscountAmount.IsZero() {
		t.Errorf("discount = %s, want 0", bill.DiscountAmount)
	}
	if bill.PaymentStatus != enum.PaymentStatusPending {
		t.Errorf("paymentStatus = %s, want pending", bill.PaymentStatus)
	}
}

func TestComputeWithDiscount(t *testing.T) {
	order := orderWith(enum.OrderStatusBillRequested, line(400, 2))

	bill, err := Compute(order, 0.08, 10)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if got := bill.DiscountAmount.StringFixed(2); got != "80.00" {
		t.Errorf("discount = %s, want 80.00", got)
	}
	if got := bill.TotalAmount.StringFixed(2); got != "784.00" {
		t.Errorf("total = %s, want 784.00", got)
	}
}

func TestComputeMultipleLines(t *testing.T) {
	order := orderWith(enum.OrderStatusPending, line(250, 2), line(150, 3))

	bill, err := Compute(order, 0.05, 0)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if got := bill.Subtotal.StringFixed(2); got != "950.00" {
		t.Errorf("subtotal = %s, want 950.00", got)
	}
	if got := bill.TaxAmount.StringFixed(2); got != "47.50" {
		t.Errorf("tax = %s, want 47.50", got)
	}
}

func TestComputeFullDiscount(t *testing.T) {
	order := orderWith(enum.OrderStatusPending, line(100, 1))

	bill, err := Compute(order, 0, 100)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if !bill.TotalAmount.IsZero() {
		t.Errorf("total = %s, want 0", bill.TotalAmount)
	}
}

func TestComputeInvalidDiscount(t *testing.T) {
	order := orderWith(enum.OrderStatusPending, line(100, 1))

	for _, pct := range []float64{-0.01, 100.01, 150} {
		if _, err := Compute(order, 0.08, pct); !errors.Is(err, ErrInvalidDiscount) {
			t.Errorf("Compute(discount=%v) = %v, want ErrInvalidDiscount", pct, err)
		}
	}
}

func TestComputePaymentStatusMirrorsOrder(t *testing.T) {
	paid := orderWith(enum.OrderStatusPaid, line(100, 1))
	bill, err := Compute(paid, 0.08, 0)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if bill.PaymentStatus != enum.PaymentStatusPaid {
		t.Errorf("paymentStatus = %s, want paid", bill.PaymentStatus)
	}
}

func TestComputeEmptyOrder(t *testing.T) {
	bill, err := Compute(orderWith(enum.OrderStatusPending), 0.08, 0)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if !bill.Subtotal.IsZero() || !bill.TotalAmount.IsZero() {
		t.Errorf("empty order bill = %+v, want zero amounts", bill)
	}
}
