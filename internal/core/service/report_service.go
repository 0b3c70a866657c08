package service

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/savemypet/storefront/internal/core/ports"
)

// ReportService runs the read-only dashboard aggregates. Every call
// recomputes from the live store; results are never cached.
type ReportService struct {
	reports ports.ReportRepository
	log     zerolog.Logger
}

func NewReportService(reports ports.ReportRepository, log zerolog.Logger) *ReportService {
	return &ReportService{reports: reports, log: log}
}

func (s *ReportService) Dashboard(ctx context.Context) (*ports.DashboardSummary, error) {
	return s.reports.DashboardSummary(ctx)
}

// Metrics returns the superadmin snapshot for the windows anchored at now,
// filling in the derived rate fields at one-decimal precision.
func (s *ReportService) Metrics(ctx context.Context, now time.Time) (*ports.BusinessMetrics, error) {
	now = now.UTC()
	windows := ports.RevenueWindows{
		TodayStart:      time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		WeekStart:       now.Add(-7 * 24 * time.Hour),
		MonthStart:      time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
		SixMonthsAgo:    time.Date(now.Year(), now.Month()-6, 1, 0, 0, 0, 0, time.UTC),
		YearStart:       time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC),
		TwelveMonthsAgo: time.Date(now.Year(), now.Month()-12, 1, 0, 0, 0, 0, time.UTC),
	}

	m, err := s.reports.BusinessMetrics(ctx, windows)
	if err != nil {
		return nil, err
	}

	if m.TotalCustomers > 0 {
		m.ReturningCustomerRate = round1(float64(m.TotalCustomers-m.NewCustomers) / float64(m.TotalCustomers) * 100)
	}
	if m.TotalOrders > 0 {
		m.RefundRate = round1(float64(m.CancelledOrders) / float64(m.TotalOrders) * 100)
	}
	return m, nil
}

// CategorySales attaches each category's share of total catalog revenue.
func (s *ReportService) CategorySales(ctx context.Context) ([]ports.CategorySales, error) {
	sales, err := s.reports.CategorySales(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, c := range sales {
		total += c.Revenue
	}
	if total > 0 {
		for i := range sales {
			sales[i].PercentOfTotal = round1(float64(sales[i].Revenue) / float64(total) * 100)
		}
	}
	return sales, nil
}

func (s *ReportService) RevenueDetails(ctx context.Context) (*ports.RevenueDetails, error) {
	return s.reports.RevenueDetails(ctx)
}

func (s *ReportService) MonthlyRevenue(ctx context.Context, now time.Time) ([]ports.MonthlyRevenuePoint, error) {
	return s.reports.MonthlyRevenue(ctx, now.UTC().AddDate(0, -12, 0))
}

func (s *ReportService) StockLevels(ctx context.Context) ([]ports.StockLevel, error) {
	return s.reports.StockLevels(ctx)
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
