package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/savemypet/storefront/internal/core/domain"
)

func TestOrderRepository_Create_DecrementsStock(t *testing.T) {
	db := openTestDB(t)
	repo := NewOrderRepository(db)
	products := NewProductRepository(db)
	ctx := context.Background()

	customer := seedUser(t, db, "alice@example.com", domain.RoleCustomer)
	chow := seedProduct(t, db, "Puppy Chow", 1500, 10)
	litter := seedProduct(t, db, "Cat Litter", 900, 3)

	now := time.Date(2026, time.August, 28, 10, 0, 0, 0, time.UTC)
	order := &domain.Order{
		CustomerID:       customer,
		CustomerName:     "Alice",
		CustomerEmail:    "alice@example.com",
		Total:            3900,
		Status:           domain.StatusPending,
		Date:             now,
		LastStatusUpdate: now,
		Items: []domain.OrderItem{
			{ProductID: chow, ProductName: "Puppy Chow", Quantity: 2, Price: 1500},
			{ProductID: litter, ProductName: "Cat Litter", Quantity: 1, Price: 900},
		},
	}
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("create: %v", err)
	}
	if order.ID == 0 {
		t.Fatalf("expected assigned order id")
	}
	for _, item := range order.Items {
		if item.ID == 0 || item.OrderID != order.ID {
			t.Fatalf("item ids not filled: %+v", item)
		}
	}

	p, err := products.FindByID(ctx, chow)
	if err != nil {
		t.Fatalf("find product: %v", err)
	}
	if p.Stock != 8 {
		t.Fatalf("expected stock 8, got %d", p.Stock)
	}
	p, err = products.FindByID(ctx, litter)
	if err != nil {
		t.Fatalf("find product: %v", err)
	}
	if p.Stock != 2 {
		t.Fatalf("expected stock 2, got %d", p.Stock)
	}
}

func TestOrderRepository_Create_StockConflictRollsBackEverything(t *testing.T) {
	db := openTestDB(t)
	repo := NewOrderRepository(db)
	products := NewProductRepository(db)
	ctx := context.Background()

	customer := seedUser(t, db, "bob@example.com", domain.RoleCustomer)
	chow := seedProduct(t, db, "Puppy Chow", 1500, 10)
	litter := seedProduct(t, db, "Cat Litter", 900, 3)

	now := time.Now().UTC()
	order := &domain.Order{
		CustomerID:       customer,
		CustomerName:     "Bob",
		Total:            100,
		Status:           domain.StatusPending,
		Date:             now,
		LastStatusUpdate: now,
		Items: []domain.OrderItem{
			// The first line succeeds, the second exceeds stock.
			{ProductID: chow, ProductName: "Puppy Chow", Quantity: 2, Price: 1500},
			{ProductID: litter, ProductName: "Cat Litter", Quantity: 4, Price: 900},
		},
	}
	err := repo.Create(ctx, order)
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	// The whole transaction rolled back: no order rows, no item rows, and
	// the first product's decrement undone.
	var orderCount, itemCount int64
	if err := db.QueryRow(`SELECT COUNT(*) FROM orders`).Scan(&orderCount); err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM order_items`).Scan(&itemCount); err != nil {
		t.Fatalf("count items: %v", err)
	}
	if orderCount != 0 || itemCount != 0 {
		t.Fatalf("rows left behind: orders=%d items=%d", orderCount, itemCount)
	}

	p, err := products.FindByID(ctx, chow)
	if err != nil {
		t.Fatalf("find product: %v", err)
	}
	if p.Stock != 10 {
		t.Fatalf("expected stock back at 10, got %d", p.Stock)
	}
}

func TestOrderRepository_Create_UnknownProduct(t *testing.T) {
	db := openTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	customer := seedUser(t, db, "carol@example.com", domain.RoleCustomer)

	now := time.Now().UTC()
	order := &domain.Order{
		CustomerID:       customer,
		CustomerName:     "Carol",
		Total:            100,
		Status:           domain.StatusPending,
		Date:             now,
		LastStatusUpdate: now,
		Items: []domain.OrderItem{
			{ProductID: 999, ProductName: "Ghost", Quantity: 1, Price: 100},
		},
	}
	if err := repo.Create(ctx, order); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestOrderRepository_FindByID_ScopesToCustomer(t *testing.T) {
	db := openTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice@example.com", domain.RoleCustomer)
	bob := seedUser(t, db, "bob@example.com", domain.RoleCustomer)
	chow := seedProduct(t, db, "Puppy Chow", 1500, 10)

	id := seedOrder(t, db, alice, chow, domain.StatusPending, 1500, time.Now().UTC())

	own, err := repo.FindByID(ctx, id, alice)
	if err != nil {
		t.Fatalf("owner lookup: %v", err)
	}
	if len(own.Items) != 1 || own.Items[0].ProductName != "Seeded Item" {
		t.Fatalf("items not attached: %+v", own.Items)
	}

	// Someone else's order is indistinguishable from absence.
	if _, err := repo.FindByID(ctx, id, bob); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for other customer, got %v", err)
	}

	// Zero customerID skips the scope (admin path).
	if _, err := repo.FindByID(ctx, id, 0); err != nil {
		t.Fatalf("unscoped lookup: %v", err)
	}

	if _, err := repo.FindByID(ctx, 999, 0); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for missing order, got %v", err)
	}
}

func TestOrderRepository_ListOrdering(t *testing.T) {
	db := openTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice@example.com", domain.RoleCustomer)
	bob := seedUser(t, db, "bob@example.com", domain.RoleCustomer)
	chow := seedProduct(t, db, "Puppy Chow", 1500, 10)

	base := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)
	old := seedOrder(t, db, alice, chow, domain.StatusPending, 100, base)
	recent := seedOrder(t, db, alice, chow, domain.StatusPending, 200, base.AddDate(0, 0, 3))
	seedOrder(t, db, bob, chow, domain.StatusPending, 300, base.AddDate(0, 0, 1))

	mine, err := repo.ListByCustomer(ctx, alice)
	if err != nil {
		t.Fatalf("list by customer: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(mine))
	}
	if mine[0].ID != recent || mine[1].ID != old {
		t.Fatalf("expected newest first, got %d then %d", mine[0].ID, mine[1].ID)
	}

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(all))
	}
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	db := openTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice@example.com", domain.RoleCustomer)
	chow := seedProduct(t, db, "Puppy Chow", 1500, 10)

	created := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)
	id := seedOrder(t, db, alice, chow, domain.StatusPending, 1500, created)

	later := created.Add(3 * time.Hour)
	if err := repo.UpdateStatus(ctx, id, domain.StatusShipped, later); err != nil {
		t.Fatalf("update status: %v", err)
	}

	o, err := repo.FindByID(ctx, id, 0)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if o.Status != domain.StatusShipped {
		t.Fatalf("status not updated: %s", o.Status)
	}
	if !o.LastStatusUpdate.Equal(later) {
		t.Fatalf("lastStatusUpdate = %v, want %v", o.LastStatusUpdate, later)
	}

	// Re-applying the same status still refreshes the timestamp.
	evenLater := later.Add(time.Hour)
	if err := repo.UpdateStatus(ctx, id, domain.StatusShipped, evenLater); err != nil {
		t.Fatalf("repeat update: %v", err)
	}
	o, err = repo.FindByID(ctx, id, 0)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !o.LastStatusUpdate.Equal(evenLater) {
		t.Fatalf("lastStatusUpdate not refreshed: %v", o.LastStatusUpdate)
	}

	if err := repo.UpdateStatus(ctx, 999, domain.StatusShipped, evenLater); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}
