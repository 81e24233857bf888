// Package model holds the persisted entity types. JSON tags match the
// blob layout the previous web client wrote to its key-value storage,
// so existing data keeps decoding.
package model

import "time"

// MenuItem is a catalog entry. Names are unique case-insensitively.
type MenuItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

// OrderItem is a MenuItem snapshot plus quantity and an optional
// kitchen comment. The snapshot is a copy: later menu edits do not
// change historical orders. Two lines may share a menu item id when
// their comments differ.
type OrderItem struct {
	MenuItem
	Quantity int    `json:"quantity"`
	Comment  string `json:"comment,omitempty"`
}

// Order is the unit the whole system revolves around.
type Order struct {
	ID             string      `json:"id"`
	TableNumber    int         `json:"tableNumber,omitempty"` // dine-in only
	Items          []OrderItem `json:"items"`
	Status         string      `json:"status"`
	Timestamp      time.Time   `json:"timestamp"` // last mutation
	Type           string      `json:"type"`
	WaiterID       string      `json:"waiterId,omitempty"`
	WaiterUsername string      `json:"waiterUsername,omitempty"`
	CustomerName   string      `json:"customerName,omitempty"`  // takeaway only
	CustomerPhone  string      `json:"customerPhone,omitempty"` // takeaway only
}

// User is a staff account. PasswordHash is a bcrypt hash; it stays in
// the blob and must never reach an API response.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash,omitempty"`
	Role         string `json:"role"`
}

// RestaurantConfig is the singleton restaurant-wide configuration.
// TaxRate is stored as a decimal fraction (0.08 for 8%).
type RestaurantConfig struct {
	TableCount        int     `json:"tableCount"`
	TaxRate           float64 `json:"taxRate"`
	RestaurantName    string  `json:"restaurantName"`
	RestaurantAddress string  `json:"restaurantAddress"`
}
