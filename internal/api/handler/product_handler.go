package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/savemypet/storefront/internal/core/domain"
	"github.com/savemypet/storefront/internal/core/ports"
)

// ProductHandler handles catalog reads (public) and writes (superadmin).
type ProductHandler struct {
	catalog ports.CatalogService
}

func NewProductHandler(catalog ports.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// productRequest covers both create and update: every column is written.
// Stock is a pointer so a present-but-zero stock passes validation.
type productRequest struct {
	Name        string  `json:"name"      validate:"required"`
	Animal      string  `json:"animal"    validate:"required,oneof=Dogs Cats Birds"`
	Category    string  `json:"category"  validate:"required"`
	Price       int64   `json:"price"     validate:"required,gt=0"`
	Image       string  `json:"image"     validate:"required"`
	Stock       *int64  `json:"stock"     validate:"required,gte=0"`
	Rating      float64 `json:"rating"    validate:"required,gte=0,lte=5"`
	Brand       string  `json:"brand"`
	LifeStage   string  `json:"lifeStage"`
	SKU         string  `json:"sku"`
	Description string  `json:"description"`
	Ingredients string  `json:"ingredients"`
}

func (r productRequest) toInput() ports.ProductInput {
	return ports.ProductInput{
		Name:        r.Name,
		Animal:      r.Animal,
		Category:    r.Category,
		Price:       r.Price,
		Image:       r.Image,
		Stock:       *r.Stock,
		Rating:      r.Rating,
		Brand:       r.Brand,
		LifeStage:   r.LifeStage,
		SKU:         r.SKU,
		Description: r.Description,
		Ingredients: r.Ingredients,
	}
}

// List handles GET /api/products with optional exact-match filters.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        animal    query     string  false  "Filter by animal (Dogs, Cats, Birds)"
// @Param        category  query     string  false  "Filter by category label"
// @Success      200       {array}   domain.Product
// @Router       /api/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	filter := domain.ProductFilter{
		Animal:   c.QueryParam("animal"),
		Category: c.QueryParam("category"),
	}

	products, err := h.catalog.ListProducts(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Get handles GET /api/products/:id.
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	product, err := h.catalog.GetProduct(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Create handles POST /api/products (superadmin).
func (h *ProductHandler) Create(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.catalog.CreateProduct(c.Request().Context(), userID, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

// Update handles PUT /api/products/:id (superadmin). Every column is
// overwritten with the request values.
func (h *ProductHandler) Update(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.catalog.UpdateProduct(c.Request().Context(), userID, id, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Delete handles DELETE /api/products/:id (superadmin). Deletion is physical.
func (h *ProductHandler) Delete(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.catalog.DeleteProduct(c.Request().Context(), userID, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Product deleted successfully"})
}
