package enum

// ── Order lifecycle ──

const (
	OrderStatusPending       = "pending"
	OrderStatusPreparing     = "preparing"
	OrderStatusReady         = "ready"
	OrderStatusServed        = "served"
	OrderStatusBillRequested = "bill_requested"
	OrderStatusPaid          = "paid"
	OrderStatusCancelled     = "cancelled"

	// OrderStatusBilled appears in blobs written by older releases.
	// It is normalized to "paid" on read and never written back.
	OrderStatusBilled = "billed"
)

const (
	OrderTypeDineIn   = "dine-in"
	OrderTypeTakeaway = "takeaway"
)

// ── Roles ──

const (
	RoleAdmin   = "admin"
	RoleWaiter  = "waiter"
	RoleKitchen = "kitchen"
)

// ── Bill payment mirror ──

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// IsTerminalStatus reports whether an order in this status accepts no
// further mutations.
func IsTerminalStatus(s string) bool {
	return s == OrderStatusPaid || s == OrderStatusCancelled
}

// IsValidOrderStatus reports whether s is a status the API accepts as a
// transition target. The legacy "billed" value is excluded on purpose.
func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusReady,
		OrderStatusServed, OrderStatusBillRequested,
		OrderStatusPaid, OrderStatusCancelled:
		return true
	}
	return false
}

// IsValidOrderType reports whether s is a known order type.
func IsValidOrderType(s string) bool {
	return s == OrderTypeDineIn || s == OrderTypeTakeaway
}

// IsValidRole reports whether s is a known user role.
func IsValidRole(s string) bool {
	return s == RoleAdmin || s == RoleWaiter || s == RoleKitchen
}
