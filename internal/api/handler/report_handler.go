package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/savemypet/storefront/internal/core/ports"
)

// ReportHandler serves the admin dashboard and the superadmin analytics
// views. Every response is computed from the live store on each call.
type ReportHandler struct {
	reports ports.ReportService
}

func NewReportHandler(reports ports.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Dashboard handles GET /api/dashboard (admin/superadmin).
//
// @Summary      Dashboard summary counters
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.DashboardSummary
// @Router       /api/dashboard [get]
func (h *ReportHandler) Dashboard(c echo.Context) error {
	summary, err := h.reports.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// Metrics handles GET /api/metrics (superadmin). Revenue windows are
// anchored to the request time.
func (h *ReportHandler) Metrics(c echo.Context) error {
	metrics, err := h.reports.Metrics(c.Request().Context(), time.Now().UTC())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, metrics)
}

// Categories handles GET /api/metrics/categories (superadmin).
func (h *ReportHandler) Categories(c echo.Context) error {
	sales, err := h.reports.CategorySales(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sales)
}

// RevenueDetails handles GET /api/metrics/revenue-details (superadmin).
func (h *ReportHandler) RevenueDetails(c echo.Context) error {
	details, err := h.reports.RevenueDetails(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, details)
}

// MonthlyRevenue handles GET /api/metrics/monthly-revenue (superadmin).
func (h *ReportHandler) MonthlyRevenue(c echo.Context) error {
	series, err := h.reports.MonthlyRevenue(c.Request().Context(), time.Now().UTC())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, series)
}

// Stock handles GET /api/stock (admin/superadmin), lowest stock first.
func (h *ReportHandler) Stock(c echo.Context) error {
	levels, err := h.reports.StockLevels(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, levels)
}
