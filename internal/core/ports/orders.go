package ports

import (
	"context"
	"time"

	"github.com/savemypet/storefront/internal/core/domain"
)

// OrderRepository defines persistence operations for the order aggregate.
type OrderRepository interface {
	// Create inserts the order, its items, and decrements each product's
	// stock inside a single transaction. The decrement is conditional: a
	// product with insufficient stock aborts the whole transaction with
	// domain.ErrInsufficientStock and no rows are left behind. Fills the
	// order's ID and its items' IDs on success.
	Create(ctx context.Context, order *domain.Order) error
	// ListByCustomer returns the customer's orders, newest first, without items.
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error)
	// ListAll returns every order, newest first, without items.
	ListAll(ctx context.Context) ([]domain.Order, error)
	// FindByID returns the order with its items attached. When customerID
	// is non-zero the lookup is additionally scoped to that customer, and
	// another customer's order surfaces as domain.ErrOrderNotFound — the
	// same error as true absence, so existence is never leaked.
	FindByID(ctx context.Context, id, customerID int64) (*domain.Order, error)
	// UpdateStatus sets status and lastStatusUpdate. Returns
	// domain.ErrOrderNotFound when no row matched.
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus, now time.Time) error
}

// OrderItemInput is one checkout line. ProductName and Price are recorded
// as snapshots exactly as submitted.
type OrderItemInput struct {
	ProductID   int64
	ProductName string
	Quantity    int64
	Price       int64
}

// CreateOrderInput carries everything needed to place an order. Total is
// client-supplied and stored as-is.
type CreateOrderInput struct {
	CustomerID       int64
	CustomerName     string
	CustomerEmail    string
	CustomerPhone    string
	ShippingAddress  string
	ShippingCity     string
	ShippingState    string
	Total            int64
	Items            []OrderItemInput
	PaymentReference string
}

// OrderView is an order enriched with the server-computed staleness flag.
type OrderView struct {
	domain.Order
	Stale bool `json:"stale"`
}

// OrderService defines the order and inventory workflow.
type OrderService interface {
	Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	ListForCustomer(ctx context.Context, customerID int64) ([]OrderView, error)
	GetForCustomer(ctx context.Context, customerID, id int64) (*OrderView, error)
	ListAll(ctx context.Context) ([]OrderView, error)
	Get(ctx context.Context, id int64) (*OrderView, error)
	// UpdateStatus accepts any of the five statuses from any current
	// status; it refreshes lastStatusUpdate even when the value is
	// unchanged.
	UpdateStatus(ctx context.Context, actorID, id int64, status domain.OrderStatus) error
}
