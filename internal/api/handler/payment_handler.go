package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/savemypet/storefront/internal/core/ports"
)

// PaymentHandler proxies transaction verification to the payment provider.
type PaymentHandler struct {
	payments ports.PaymentService
}

func NewPaymentHandler(payments ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// Verify handles GET /api/verify-payment/:reference. The provider's JSON
// body is relayed verbatim so the client sees the same fields it would
// see calling the provider directly.
//
// @Summary      Verify a payment transaction
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        reference  path      string  true  "Provider transaction reference"
// @Success      200        {object}  object
// @Failure      401        {object}  map[string]string
// @Failure      500        {object}  map[string]string
// @Router       /api/verify-payment/{reference} [get]
func (h *PaymentHandler) Verify(c echo.Context) error {
	reference := c.Param("reference")
	if reference == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing payment reference")
	}

	body, err := h.payments.Verify(c.Request().Context(), reference)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, body)
}
