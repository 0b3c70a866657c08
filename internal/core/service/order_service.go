package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/savemypet/storefront/internal/api/metrics"
	"github.com/savemypet/storefront/internal/core/domain"
	"github.com/savemypet/storefront/internal/core/ports"
)

// OrderService implements the order and inventory workflow.
type OrderService struct {
	orders   ports.OrderRepository
	activity ports.ActivityRepository
	log      zerolog.Logger
	now      func() time.Time
}

func NewOrderService(orders ports.OrderRepository, activity ports.ActivityRepository, log zerolog.Logger) *OrderService {
	return &OrderService{
		orders:   orders,
		activity: activity,
		log:      log,
		now:      time.Now,
	}
}

// Create places an order: the order row, its line items, and the stock
// decrements commit or roll back together. A product with insufficient
// stock aborts the whole order. The client-supplied total is stored as-is.
func (s *OrderService) Create(ctx context.Context, in ports.CreateOrderInput) (*domain.Order, error) {
	now := s.now().UTC().Truncate(time.Second)

	items := make([]domain.OrderItem, len(in.Items))
	for i, item := range in.Items {
		items[i] = domain.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		}
	}

	order := &domain.Order{
		CustomerID:       in.CustomerID,
		CustomerName:     in.CustomerName,
		CustomerEmail:    in.CustomerEmail,
		CustomerPhone:    in.CustomerPhone,
		ShippingAddress:  in.ShippingAddress,
		ShippingCity:     in.ShippingCity,
		ShippingState:    in.ShippingState,
		Total:            in.Total,
		Status:           domain.StatusPending,
		Date:             now,
		LastStatusUpdate: now,
		Items:            items,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			metrics.StockConflictsTotal.Inc()
			s.log.Info().Int64("customer_id", in.CustomerID).Err(err).Msg("order rejected on stock")
		} else {
			s.log.Error().Err(err).Msg("failed to create order")
		}
		return nil, err
	}

	payment := "none"
	action := fmt.Sprintf("Created order ID: %d", order.ID)
	if in.PaymentReference != "" {
		payment = "paystack"
		action = fmt.Sprintf("Created order ID: %d with payment ref: %s", order.ID, in.PaymentReference)
	}
	metrics.OrdersCreatedTotal.WithLabelValues(payment).Inc()
	s.recordActivity(ctx, in.CustomerID, action)

	s.log.Info().
		Int64("order_id", order.ID).
		Int64("customer_id", in.CustomerID).
		Int("items", len(order.Items)).
		Msg("order created")

	return order, nil
}

// ListForCustomer returns the caller's own orders, newest first.
func (s *OrderService) ListForCustomer(ctx context.Context, customerID int64) ([]ports.OrderView, error) {
	orders, err := s.orders.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return s.views(orders), nil
}

// GetForCustomer returns the caller's order with items. Another customer's
// order is reported as not found, never as forbidden.
func (s *OrderService) GetForCustomer(ctx context.Context, customerID, id int64) (*ports.OrderView, error) {
	order, err := s.orders.FindByID(ctx, id, customerID)
	if err != nil {
		return nil, err
	}
	v := s.view(*order)
	return &v, nil
}

func (s *OrderService) ListAll(ctx context.Context) ([]ports.OrderView, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.views(orders), nil
}

func (s *OrderService) Get(ctx context.Context, id int64) (*ports.OrderView, error) {
	order, err := s.orders.FindByID(ctx, id, 0)
	if err != nil {
		return nil, err
	}
	v := s.view(*order)
	return &v, nil
}

// UpdateStatus moves the order to any of the five statuses — the set is
// closed but transitions are unrestricted, so operators can walk a
// delivered order back to pending to correct a mistake. lastStatusUpdate
// refreshes even when the value is unchanged.
func (s *OrderService) UpdateStatus(ctx context.Context, actorID, id int64, status domain.OrderStatus) error {
	if !domain.ValidStatus(status) {
		return domain.ErrInvalidStatus
	}

	if err := s.orders.UpdateStatus(ctx, id, status, s.now().UTC()); err != nil {
		return err
	}

	metrics.StatusUpdatesTotal.WithLabelValues(string(status)).Inc()
	s.recordActivity(ctx, actorID, fmt.Sprintf("Updated order %d status to %s", id, status))
	s.log.Info().Int64("order_id", id).Str("status", string(status)).Msg("order status updated")
	return nil
}

func (s *OrderService) views(orders []domain.Order) []ports.OrderView {
	now := s.now()
	views := make([]ports.OrderView, len(orders))
	for i, o := range orders {
		views[i] = ports.OrderView{Order: o, Stale: o.Stale(now)}
	}
	return views
}

func (s *OrderService) view(o domain.Order) ports.OrderView {
	return ports.OrderView{Order: o, Stale: o.Stale(s.now())}
}

func (s *OrderService) recordActivity(ctx context.Context, userID int64, action string) {
	if err := s.activity.Record(ctx, &userID, action); err != nil {
		s.log.Warn().Err(err).Str("action", action).Msg("failed to record activity")
	}
}
