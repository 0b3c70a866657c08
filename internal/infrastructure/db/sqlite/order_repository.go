package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/savemypet/storefront/internal/core/domain"
)

const orderColumns = `id, customerId, customerName, COALESCE(customerEmail, ''),
	COALESCE(customerPhone, ''), COALESCE(shippingAddress, ''), COALESCE(shippingCity, ''),
	COALESCE(shippingState, ''), total, status, date, lastStatusUpdate`

// OrderRepository persists the order aggregate: orders, their items, and
// the inventory adjustment that accompanies creation.
type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts the order, its items, and decrements each product's stock
// in one transaction. The decrement only succeeds when the resulting stock
// stays non-negative; a short row aborts the transaction with
// domain.ErrInsufficientStock, rolling back the order and every item.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("create order: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO orders (customerId, customerName, customerEmail, customerPhone,
		 shippingAddress, shippingCity, shippingState, total, status, date, lastStatusUpdate)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.CustomerID, order.CustomerName, nullString(order.CustomerEmail),
		nullString(order.CustomerPhone), nullString(order.ShippingAddress),
		nullString(order.ShippingCity), nullString(order.ShippingState),
		order.Total, string(order.Status), formatTime(order.Date), formatTime(order.LastStatusUpdate),
	)
	if err != nil {
		return fmt.Errorf("create order: insert order: %w", err)
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = orderID

		itemRes, err := tx.ExecContext(ctx,
			`INSERT INTO order_items (orderId, productId, productName, quantity, price)
			 VALUES (?, ?, ?, ?, ?)`,
			orderID, item.ProductID, item.ProductName, item.Quantity, item.Price,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrProductNotFound
			}
			return fmt.Errorf("create order: insert item: %w", err)
		}
		if item.ID, err = itemRes.LastInsertId(); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		upd, err := tx.ExecContext(ctx,
			`UPDATE products SET stock = stock - ? WHERE id = ? AND stock >= ?`,
			item.Quantity, item.ProductID, item.Quantity,
		)
		if err != nil {
			return fmt.Errorf("create order: decrement stock: %w", err)
		}
		n, err := upd.RowsAffected()
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("%w: product %d", domain.ErrInsufficientStock, item.ProductID)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("create order: commit: %w", err)
	}
	order.ID = orderID
	return nil
}

// ListByCustomer returns the customer's orders, newest first, without items.
func (r *OrderRepository) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	return r.list(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE customerId = ? ORDER BY date DESC`,
		customerID,
	)
}

// ListAll returns every order, newest first, without items.
func (r *OrderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY date DESC`)
}

func (r *OrderRepository) list(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("list orders: %w", err)
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

// FindByID returns the order with its items attached. A non-zero
// customerID scopes the lookup to that customer; someone else's order
// surfaces as domain.ErrOrderNotFound, indistinguishable from absence.
func (r *OrderRepository) FindByID(ctx context.Context, id, customerID int64) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = ?`
	args := []any{id}
	if customerID != 0 {
		query += ` AND customerId = ?`
		args = append(args, customerID)
	}

	o, err := scanOrder(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, orderId, COALESCE(productId, 0), productName, quantity, price
		 FROM order_items WHERE orderId = ? ORDER BY id`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("find order items: %w", err)
	}
	defer rows.Close()

	o.Items = []domain.OrderItem{}
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("find order items: %w", err)
		}
		o.Items = append(o.Items, item)
	}
	return o, rows.Err()
}

// UpdateStatus sets the status and refreshes lastStatusUpdate, even when
// the status value is unchanged.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus, now time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = ?, lastStatusUpdate = ? WHERE id = ?`,
		string(status), formatTime(now), id,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if n == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var o domain.Order
	var status, date, lastUpdate string
	err := row.Scan(
		&o.ID, &o.CustomerID, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone,
		&o.ShippingAddress, &o.ShippingCity, &o.ShippingState, &o.Total,
		&status, &date, &lastUpdate,
	)
	if err != nil {
		return nil, err
	}
	o.Status = domain.OrderStatus(status)
	o.Date = parseTime(date)
	o.LastStatusUpdate = parseTime(lastUpdate)
	return &o, nil
}

func isForeignKeyViolation(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintForeignKey
}
