package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/savemypet/storefront/internal/core/domain"
	"github.com/savemypet/storefront/internal/core/ports"
)

// OrderHandler handles checkout, order reads, and status updates.
type OrderHandler struct {
	orders ports.OrderService
}

func NewOrderHandler(orders ports.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type orderItemRequest struct {
	ProductID   int64  `json:"productId"   validate:"required,gt=0"`
	ProductName string `json:"productName" validate:"required"`
	Quantity    int64  `json:"quantity"    validate:"required,gt=0"`
	Price       int64  `json:"price"       validate:"gte=0"`
}

type createOrderRequest struct {
	CustomerName     string             `json:"customerName" validate:"required"`
	CustomerEmail    string             `json:"customerEmail" validate:"omitempty,email"`
	CustomerPhone    string             `json:"customerPhone"`
	ShippingAddress  string             `json:"shippingAddress"`
	ShippingCity     string             `json:"shippingCity"`
	ShippingState    string             `json:"shippingState"`
	Total            int64              `json:"total" validate:"required,gt=0"`
	Items            []orderItemRequest `json:"items" validate:"required,min=1,dive"`
	PaymentReference string             `json:"paymentReference"`
}

type createOrderResponse struct {
	OrderID          int64              `json:"orderId"`
	ID               int64              `json:"id"`
	CustomerName     string             `json:"customerName"`
	Total            int64              `json:"total"`
	Status           domain.OrderStatus `json:"status"`
	Date             time.Time          `json:"date"`
	Items            []domain.OrderItem `json:"items"`
	PaymentReference string             `json:"paymentReference,omitempty"`
	CustomerPhone    string             `json:"customerPhone,omitempty"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type updateStatusResponse struct {
	ID     int64              `json:"id"`
	Status domain.OrderStatus `json:"status"`
}

// Create handles POST /api/orders for any authenticated role. The order,
// its items, and the stock decrements succeed or fail together.
//
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOrderRequest  true  "Order details"
// @Success      201   {object}  createOrderResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	items := make([]ports.OrderItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = ports.OrderItemInput{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		}
	}

	order, err := h.orders.Create(c.Request().Context(), ports.CreateOrderInput{
		CustomerID:       userID,
		CustomerName:     req.CustomerName,
		CustomerEmail:    req.CustomerEmail,
		CustomerPhone:    req.CustomerPhone,
		ShippingAddress:  req.ShippingAddress,
		ShippingCity:     req.ShippingCity,
		ShippingState:    req.ShippingState,
		Total:            req.Total,
		Items:            items,
		PaymentReference: req.PaymentReference,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createOrderResponse{
		OrderID:          order.ID,
		ID:               order.ID,
		CustomerName:     order.CustomerName,
		Total:            order.Total,
		Status:           order.Status,
		Date:             order.Date,
		Items:            order.Items,
		PaymentReference: req.PaymentReference,
		CustomerPhone:    order.CustomerPhone,
	})
}

// ListMine handles GET /api/user/orders — the caller's own orders only.
func (h *OrderHandler) ListMine(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	views, err := h.orders.ListForCustomer(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// GetMine handles GET /api/user/orders/:id. Another customer's order is a
// 404 — the same as true absence, so existence never leaks.
func (h *OrderHandler) GetMine(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	view, err := h.orders.GetForCustomer(c.Request().Context(), userID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// List handles GET /api/orders (admin/superadmin) — every order.
func (h *OrderHandler) List(c echo.Context) error {
	views, err := h.orders.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// Get handles GET /api/orders/:id (admin/superadmin) with items attached.
func (h *OrderHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	view, err := h.orders.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// UpdateStatus handles PUT /api/orders/:id/status (admin/superadmin). Any
// of the five statuses is accepted from any current status.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	status := domain.OrderStatus(req.Status)
	if err := h.orders.UpdateStatus(c.Request().Context(), userID, id, status); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updateStatusResponse{ID: id, Status: status})
}
