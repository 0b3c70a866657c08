package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/savemypet/storefront/internal/core/ports"
)

// ReportRepository runs the aggregate queries behind the dashboards.
// Revenue figures count delivered orders only; nothing is cached.
type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) DashboardSummary(ctx context.Context) (*ports.DashboardSummary, error) {
	var s ports.DashboardSummary
	err := r.db.QueryRowContext(ctx, `SELECT
		(SELECT COALESCE(SUM(total), 0) FROM orders WHERE status = 'delivered'),
		(SELECT COUNT(*) FROM orders),
		(SELECT COUNT(*) FROM products),
		(SELECT COUNT(*) FROM users WHERE role = 'customer')`,
	).Scan(&s.Revenue, &s.OrdersCount, &s.ProductsCount, &s.CustomersCount)
	if err != nil {
		return nil, fmt.Errorf("dashboard summary: %w", err)
	}
	return &s, nil
}

// BusinessMetrics gathers the raw counts; the derived rate fields are left
// zero for the service layer to fill in.
func (r *ReportRepository) BusinessMetrics(ctx context.Context, w ports.RevenueWindows) (*ports.BusinessMetrics, error) {
	var m ports.BusinessMetrics
	err := r.db.QueryRowContext(ctx, `SELECT
		(SELECT COALESCE(SUM(total), 0) FROM orders WHERE date >= ? AND status = 'delivered'),
		(SELECT COALESCE(SUM(total), 0) FROM orders WHERE date >= ? AND status = 'delivered'),
		(SELECT COALESCE(SUM(total), 0) FROM orders WHERE date >= ? AND status = 'delivered'),
		(SELECT COALESCE(SUM(total), 0) FROM orders WHERE date >= ? AND status = 'delivered'),
		(SELECT COALESCE(SUM(total), 0) FROM orders WHERE date >= ? AND status = 'delivered'),
		(SELECT COALESCE(SUM(total), 0) FROM orders WHERE date >= ? AND status = 'delivered'),
		(SELECT COUNT(*) FROM users WHERE role = 'customer'),
		(SELECT COUNT(*) FROM users WHERE role = 'customer' AND id >= (SELECT MAX(id) - 10 FROM users)),
		(SELECT COUNT(*) FROM orders),
		(SELECT COUNT(*) FROM orders WHERE status = 'cancelled'),
		(SELECT COUNT(*) FROM products),
		(SELECT COUNT(*) FROM products WHERE stock = 0)`,
		formatTime(w.TodayStart), formatTime(w.WeekStart), formatTime(w.MonthStart),
		formatTime(w.SixMonthsAgo), formatTime(w.YearStart), formatTime(w.TwelveMonthsAgo),
	).Scan(
		&m.TodayRevenue, &m.WeekRevenue, &m.MonthRevenue,
		&m.SixMonthRevenue, &m.YearRevenue, &m.TwelveMonthRevenue,
		&m.TotalCustomers, &m.NewCustomers,
		&m.TotalOrders, &m.CancelledOrders, &m.TotalProducts, &m.Stockouts,
	)
	if err != nil {
		return nil, fmt.Errorf("business metrics: %w", err)
	}
	return &m, nil
}

// CategorySales aggregates the catalog per category; the revenue share
// percentage is computed by the service layer.
func (r *ReportRepository) CategorySales(ctx context.Context) ([]ports.CategorySales, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category, COUNT(*), SUM(price)
		 FROM products
		 GROUP BY category
		 ORDER BY SUM(price) DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("category sales: %w", err)
	}
	defer rows.Close()

	sales := []ports.CategorySales{}
	for rows.Next() {
		var c ports.CategorySales
		if err := rows.Scan(&c.Category, &c.UnitsSold, &c.Revenue); err != nil {
			return nil, fmt.Errorf("category sales: %w", err)
		}
		sales = append(sales, c)
	}
	return sales, rows.Err()
}

// RevenueDetails joins delivered orders with their items and groups the
// flat rows per order, newest first.
func (r *ReportRepository) RevenueDetails(ctx context.Context) (*ports.RevenueDetails, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT o.id, o.date, o.customerName, o.total,
		        oi.productName, oi.quantity, oi.price, (oi.quantity * oi.price)
		 FROM orders o
		 JOIN order_items oi ON o.id = oi.orderId
		 WHERE o.status = 'delivered'
		 ORDER BY o.date DESC, o.id DESC, oi.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("revenue details: %w", err)
	}
	defer rows.Close()

	details := &ports.RevenueDetails{Orders: []ports.RevenueOrder{}}
	index := map[int64]int{}
	for rows.Next() {
		var (
			orderID      int64
			date         string
			customerName string
			total        int64
			item         ports.RevenueItem
		)
		if err := rows.Scan(&orderID, &date, &customerName, &total,
			&item.ProductName, &item.Quantity, &item.Price, &item.ItemTotal); err != nil {
			return nil, fmt.Errorf("revenue details: %w", err)
		}

		i, ok := index[orderID]
		if !ok {
			details.Orders = append(details.Orders, ports.RevenueOrder{
				OrderID:      orderID,
				Date:         parseTime(date),
				CustomerName: customerName,
				Total:        total,
				Items:        []ports.RevenueItem{},
			})
			i = len(details.Orders) - 1
			index[orderID] = i
			details.TotalRevenue += total
		}
		details.Orders[i].Items = append(details.Orders[i].Items, item)
	}
	details.TotalOrders = len(details.Orders)
	return details, rows.Err()
}

func (r *ReportRepository) MonthlyRevenue(ctx context.Context, since time.Time) ([]ports.MonthlyRevenuePoint, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT strftime('%Y-%m', date), COALESCE(SUM(total), 0), COUNT(*)
		 FROM orders
		 WHERE date >= ? AND status = 'delivered'
		 GROUP BY strftime('%Y-%m', date)
		 ORDER BY strftime('%Y-%m', date) ASC`,
		formatTime(since),
	)
	if err != nil {
		return nil, fmt.Errorf("monthly revenue: %w", err)
	}
	defer rows.Close()

	points := []ports.MonthlyRevenuePoint{}
	for rows.Next() {
		var p ports.MonthlyRevenuePoint
		if err := rows.Scan(&p.Month, &p.Revenue, &p.OrderCount); err != nil {
			return nil, fmt.Errorf("monthly revenue: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func (r *ReportRepository) StockLevels(ctx context.Context) ([]ports.StockLevel, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, animal, category, stock FROM products ORDER BY stock ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("stock levels: %w", err)
	}
	defer rows.Close()

	levels := []ports.StockLevel{}
	for rows.Next() {
		var l ports.StockLevel
		if err := rows.Scan(&l.ID, &l.Name, &l.Animal, &l.Category, &l.Stock); err != nil {
			return nil, fmt.Errorf("stock levels: %w", err)
		}
		levels = append(levels, l)
	}
	return levels, rows.Err()
}
