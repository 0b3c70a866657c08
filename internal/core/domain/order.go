package domain

import (
	"errors"
	"time"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// StaleAfter is how long a non-terminal order may sit without a status
// change before it is flagged for attention.
const StaleAfter = 48 * time.Hour

var ErrOrderNotFound = errors.New("order not found")
var ErrInvalidStatus = errors.New("invalid status")
var ErrInsufficientStock = errors.New("insufficient stock")

// ValidStatus reports whether s is one of the five known statuses. The set
// is closed but the transitions are not: any status may move to any other,
// including delivered back to pending. Operators use this as an escape
// hatch for correcting mistakes.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Order is the aggregate root of the checkout workflow. Customer and
// shipping fields are snapshots taken at creation time and never re-derived
// from the owning user. Total is supplied by the client at checkout and is
// not recomputed from the line items.
type Order struct {
	ID               int64       `json:"id"`
	CustomerID       int64       `json:"customerId"`
	CustomerName     string      `json:"customerName"`
	CustomerEmail    string      `json:"customerEmail,omitempty"`
	CustomerPhone    string      `json:"customerPhone,omitempty"`
	ShippingAddress  string      `json:"shippingAddress,omitempty"`
	ShippingCity     string      `json:"shippingCity,omitempty"`
	ShippingState    string      `json:"shippingState,omitempty"`
	Total            int64       `json:"total"`
	Status           OrderStatus `json:"status"`
	Date             time.Time   `json:"date"`
	LastStatusUpdate time.Time   `json:"lastStatusUpdate"`
	Items            []OrderItem `json:"items,omitempty"`
}

// OrderItem is a line item owned by its order. ProductName and Price are
// snapshots at order time, independent of later catalog edits.
type OrderItem struct {
	ID          int64  `json:"id"`
	OrderID     int64  `json:"orderId"`
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int64  `json:"quantity"`
	Price       int64  `json:"price"`
}

// Stale reports whether the order needs operator attention: its status is
// neither delivered nor cancelled and has not changed in StaleAfter or
// longer. Falls back to the creation date when the order was never updated.
func (o *Order) Stale(now time.Time) bool {
	if o.Status == StatusDelivered || o.Status == StatusCancelled {
		return false
	}
	last := o.LastStatusUpdate
	if last.IsZero() {
		last = o.Date
	}
	return now.Sub(last) >= StaleAfter
}
