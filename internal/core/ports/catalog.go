package ports

import (
	"context"

	"github.com/savemypet/storefront/internal/core/domain"
)

// ProductRepository defines persistence operations for the catalog.
type ProductRepository interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	// Create inserts the product and fills its ID.
	Create(ctx context.Context, p *domain.Product) error
	// Update overwrites every column. Returns domain.ErrProductNotFound
	// when no row matched.
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id int64) error
}

// ProductInput carries a catalog write. Brand and LifeStage fall back to
// the server defaults when empty.
type ProductInput struct {
	Name        string
	Animal      string
	Category    string
	Price       int64
	Image       string
	Stock       int64
	Rating      float64
	Brand       string
	LifeStage   string
	SKU         string
	Description string
	Ingredients string
}

// CatalogService defines catalog use cases. Writes are superadmin-only;
// the role check happens at the transport layer.
type CatalogService interface {
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, actorID int64, in ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, actorID, id int64, in ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, actorID, id int64) error
}
