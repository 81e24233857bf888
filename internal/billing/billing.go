// Package billing computes bills from orders. Bills are derived views:
// they are never persisted and are recomputed whenever the order or the
// discount changes.
package billing

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/enum"
	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/model"
)

// ErrInvalidDiscount is returned for discount percentages outside [0, 100].
var ErrInvalidDiscount = errors.New("discount percent must be between 0 and 100")

// Bill is the monetary summary of one order. PaymentStatus mirrors the
// order's own status and is never an independent source of truth.
type Bill struct {
	OrderID        string
	Subtotal       decimal.Decimal
	TaxRate        decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
	PaymentStatus  string
}

// Compute derives a Bill from an order, the configured tax rate (as a
// decimal fraction) and an admin-entered discount percentage.
//
//	subtotal = sum of price*qty
//	tax      = subtotal * taxRate
//	discount = subtotal * discountPercent / 100
//	total    = subtotal + tax - discount, clamped at zero
func Compute(order model.Order, taxRate, discountPercent float64) (Bill, error) {
	if discountPercent < 0 || discountPercent > 100 {
		return Bill{}, ErrInvalidDiscount
	}

	subtotal := decimal.Zero
	for _, item := range order.Items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
	}

	rate := decimal.NewFromFloat(taxRate)
	tax := subtotal.Mul(rate)
	discount := subtotal.Mul(decimal.NewFromFloat(discountPercent)).Div(decimal.NewFromInt(100))

	total := subtotal.Add(tax).Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	paymentStatus := enum.PaymentStatusPending
	if order.Status == enum.OrderStatusPaid {
		paymentStatus = enum.PaymentStatusPaid
	}

	return Bill{
		OrderID:        order.ID,
		Subtotal:       subtotal,
		TaxRate:        rate,
		TaxAmount:      tax,
		DiscountAmount: discount,
		TotalAmount:    total,
		PaymentStatus:  paymentStatus,
	}, nil
}
