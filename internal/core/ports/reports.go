package ports

import (
	"context"
	"time"

	"github.com/savemypet/storefront/internal/core/domain"
)

// DashboardSummary backs the admin landing page.
type DashboardSummary struct {
	Revenue        int64 `json:"revenue"`
	OrdersCount    int64 `json:"ordersCount"`
	ProductsCount  int64 `json:"productsCount"`
	CustomersCount int64 `json:"customersCount"`
}

// RevenueWindows holds the lower bounds for each revenue snapshot. All
// sums count delivered orders only.
type RevenueWindows struct {
	TodayStart      time.Time
	WeekStart       time.Time
	MonthStart      time.Time
	SixMonthsAgo    time.Time
	YearStart       time.Time
	TwelveMonthsAgo time.Time
}

// BusinessMetrics is the superadmin metrics snapshot. The two rate fields
// are derived by the service, rounded to one decimal.
type BusinessMetrics struct {
	TodayRevenue          int64   `json:"todayRevenue"`
	WeekRevenue           int64   `json:"weekRevenue"`
	MonthRevenue          int64   `json:"monthRevenue"`
	SixMonthRevenue       int64   `json:"sixMonthRevenue"`
	YearRevenue           int64   `json:"yearRevenue"`
	TwelveMonthRevenue    int64   `json:"twelveMonthRevenue"`
	TotalCustomers        int64   `json:"totalCustomers"`
	NewCustomers          int64   `json:"newCustomers"`
	TotalOrders           int64   `json:"totalOrders"`
	CancelledOrders       int64   `json:"cancelledOrders"`
	TotalProducts         int64   `json:"totalProducts"`
	Stockouts             int64   `json:"stockouts"`
	ReturningCustomerRate float64 `json:"returningCustomerRate"`
	RefundRate            float64 `json:"refundRate"`
}

// CategorySales is one row of the category revenue-share table.
type CategorySales struct {
	Category       string  `json:"category"`
	UnitsSold      int64   `json:"unitsSold"`
	Revenue        int64   `json:"revenue"`
	PercentOfTotal float64 `json:"percentOfTotal"`
}

// RevenueItem is one line of a delivered order in the revenue breakdown.
type RevenueItem struct {
	ProductName string `json:"productName"`
	Quantity    int64  `json:"quantity"`
	Price       int64  `json:"price"`
	ItemTotal   int64  `json:"itemTotal"`
}

// RevenueOrder groups a delivered order with its items.
type RevenueOrder struct {
	OrderID      int64         `json:"orderId"`
	Date         time.Time     `json:"date"`
	CustomerName string        `json:"customerName"`
	Total        int64         `json:"total"`
	Items        []RevenueItem `json:"items"`
}

// RevenueDetails is the full delivered-revenue breakdown.
type RevenueDetails struct {
	Orders       []RevenueOrder `json:"orders"`
	TotalRevenue int64          `json:"totalRevenue"`
	TotalOrders  int            `json:"totalOrders"`
}

// MonthlyRevenuePoint is one point of the 12-month chart series.
type MonthlyRevenuePoint struct {
	Month      string `json:"month"`
	Revenue    int64  `json:"revenue"`
	OrderCount int64  `json:"orderCount"`
}

// StockLevel is one row of the stock report, lowest stock first.
type StockLevel struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Animal   string `json:"animal"`
	Category string `json:"category"`
	Stock    int64  `json:"stock"`
}

// ReportRepository runs the aggregate queries behind the dashboards.
// Nothing is cached; every call hits the live store.
type ReportRepository interface {
	DashboardSummary(ctx context.Context) (*DashboardSummary, error)
	BusinessMetrics(ctx context.Context, windows RevenueWindows) (*BusinessMetrics, error)
	CategorySales(ctx context.Context) ([]CategorySales, error)
	RevenueDetails(ctx context.Context) (*RevenueDetails, error)
	MonthlyRevenue(ctx context.Context, since time.Time) ([]MonthlyRevenuePoint, error)
	StockLevels(ctx context.Context) ([]StockLevel, error)
}

// ReportService exposes the reporting use cases.
type ReportService interface {
	Dashboard(ctx context.Context) (*DashboardSummary, error)
	Metrics(ctx context.Context, now time.Time) (*BusinessMetrics, error)
	CategorySales(ctx context.Context) ([]CategorySales, error)
	RevenueDetails(ctx context.Context) (*RevenueDetails, error)
	MonthlyRevenue(ctx context.Context, now time.Time) ([]MonthlyRevenuePoint, error)
	StockLevels(ctx context.Context) ([]StockLevel, error)
}

// ActivityRepository is the append-only audit trail.
type ActivityRepository interface {
	Record(ctx context.Context, userID *int64, action string) error
	// Latest returns up to limit entries, newest first, with user email
	// and name joined in when the account still exists.
	Latest(ctx context.Context, limit int) ([]domain.ActivityEntry, error)
}
