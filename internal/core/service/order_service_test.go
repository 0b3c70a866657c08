package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/savemypet/storefront/internal/core/domain"
	"github.com/savemypet/storefront/internal/core/ports"
)

type stubOrderRepo struct {
	orders   map[int64]*domain.Order
	nextID   int64
	stock    map[int64]int64
	statuses []domain.OrderStatus
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{
		orders: make(map[int64]*domain.Order),
		nextID: 1,
		stock:  map[int64]int64{1: 10, 2: 5},
	}
}

func (r *stubOrderRepo) Create(_ context.Context, order *domain.Order) error {
	for _, item := range order.Items {
		available, ok := r.stock[item.ProductID]
		if !ok {
			return domain.ErrProductNotFound
		}
		if available < item.Quantity {
			return fmt.Errorf("%w: product %d", domain.ErrInsufficientStock, item.ProductID)
		}
	}
	for _, item := range order.Items {
		r.stock[item.ProductID] -= item.Quantity
	}
	order.ID = r.nextID
	r.nextID++
	clone := *order
	r.orders[clone.ID] = &clone
	return nil
}

func (r *stubOrderRepo) ListByCustomer(_ context.Context, customerID int64) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range r.orders {
		if o.CustomerID == customerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) ListAll(_ context.Context) ([]domain.Order, error) {
	out := make([]domain.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id, customerID int64) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok || (customerID != 0 && o.CustomerID != customerID) {
		return nil, domain.ErrOrderNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id int64, status domain.OrderStatus, now time.Time) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.Status = status
	o.LastStatusUpdate = now
	r.statuses = append(r.statuses, status)
	return nil
}

func newOrderService(repo ports.OrderRepository) *OrderService {
	return NewOrderService(repo, &stubActivityRepo{}, zerolog.Nop())
}

func TestOrderService_Create_Success(t *testing.T) {
	repo := newStubOrderRepo()
	svc := newOrderService(repo)

	order, err := svc.Create(context.Background(), ports.CreateOrderInput{
		CustomerID:   7,
		CustomerName: "Alice",
		Total:        4500,
		Items: []ports.OrderItemInput{
			{ProductID: 1, ProductName: "Puppy Chow", Quantity: 2, Price: 1500},
			{ProductID: 2, ProductName: "Cat Litter", Quantity: 1, Price: 1500},
		},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if order.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if order.Status != domain.StatusPending {
		t.Fatalf("expected pending status, got %s", order.Status)
	}
	if order.Date.IsZero() || order.LastStatusUpdate.IsZero() {
		t.Fatalf("expected timestamps to be set")
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(order.Items))
	}
	if repo.stock[1] != 8 || repo.stock[2] != 4 {
		t.Fatalf("stock not decremented: %v", repo.stock)
	}
	// Total is stored exactly as submitted, never recomputed.
	if order.Total != 4500 {
		t.Fatalf("expected total 4500, got %d", order.Total)
	}
}

func TestOrderService_Create_InsufficientStock(t *testing.T) {
	repo := newStubOrderRepo()
	svc := newOrderService(repo)

	_, err := svc.Create(context.Background(), ports.CreateOrderInput{
		CustomerID:   7,
		CustomerName: "Alice",
		Total:        100,
		Items: []ports.OrderItemInput{
			{ProductID: 2, ProductName: "Cat Litter", Quantity: 6, Price: 100},
		},
	})
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if len(repo.orders) != 0 {
		t.Fatalf("no order should be stored on a stock conflict")
	}
}

func TestOrderService_GetForCustomer_ScopesToOwner(t *testing.T) {
	repo := newStubOrderRepo()
	svc := newOrderService(repo)

	order, err := svc.Create(context.Background(), ports.CreateOrderInput{
		CustomerID:   7,
		CustomerName: "Alice",
		Total:        100,
		Items:        []ports.OrderItemInput{{ProductID: 1, ProductName: "Puppy Chow", Quantity: 1, Price: 100}},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.GetForCustomer(context.Background(), 7, order.ID); err != nil {
		t.Fatalf("owner should see their order: %v", err)
	}
	// Another customer's order is reported as not found, never forbidden.
	if _, err := svc.GetForCustomer(context.Background(), 8, order.ID); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderService_UpdateStatus(t *testing.T) {
	repo := newStubOrderRepo()
	svc := newOrderService(repo)

	order, err := svc.Create(context.Background(), ports.CreateOrderInput{
		CustomerID:   7,
		CustomerName: "Alice",
		Total:        100,
		Items:        []ports.OrderItemInput{{ProductID: 1, ProductName: "Puppy Chow", Quantity: 1, Price: 100}},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.UpdateStatus(context.Background(), 1, order.ID, domain.StatusDelivered); err != nil {
		t.Fatalf("update to delivered failed: %v", err)
	}
	// Transitions are unrestricted: delivered can walk back to pending.
	if err := svc.UpdateStatus(context.Background(), 1, order.ID, domain.StatusPending); err != nil {
		t.Fatalf("update back to pending failed: %v", err)
	}

	if err := svc.UpdateStatus(context.Background(), 1, order.ID, "refunded"); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if err := svc.UpdateStatus(context.Background(), 1, 999, domain.StatusShipped); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderService_StaleFlag(t *testing.T) {
	repo := newStubOrderRepo()
	svc := newOrderService(repo)

	order, err := svc.Create(context.Background(), ports.CreateOrderInput{
		CustomerID:   7,
		CustomerName: "Alice",
		Total:        100,
		Items:        []ports.OrderItemInput{{ProductID: 1, ProductName: "Puppy Chow", Quantity: 1, Price: 100}},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	view, err := svc.Get(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if view.Stale {
		t.Fatalf("fresh order should not be stale")
	}

	// Advance the clock past the staleness threshold.
	svc.now = func() time.Time { return order.Date.Add(domain.StaleAfter + time.Minute) }

	view, err = svc.Get(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !view.Stale {
		t.Fatalf("pending order past the threshold should be stale")
	}

	// Terminal statuses are never stale, however old.
	if err := repo.UpdateStatus(context.Background(), order.ID, domain.StatusDelivered, order.Date); err != nil {
		t.Fatalf("seed status failed: %v", err)
	}
	view, err = svc.Get(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if view.Stale {
		t.Fatalf("delivered order should never be stale")
	}
}
