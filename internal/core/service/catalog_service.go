package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/savemypet/storefront/internal/core/domain"
	"github.com/savemypet/storefront/internal/core/ports"
)

// CatalogService implements product reads and superadmin catalog writes.
type CatalogService struct {
	products ports.ProductRepository
	activity ports.ActivityRepository
	log      zerolog.Logger
}

func NewCatalogService(products ports.ProductRepository, activity ports.ActivityRepository, log zerolog.Logger) *CatalogService {
	return &CatalogService{products: products, activity: activity, log: log}
}

func (s *CatalogService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	return s.products.List(ctx, filter)
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *CatalogService) CreateProduct(ctx context.Context, actorID int64, in ports.ProductInput) (*domain.Product, error) {
	p := productFromInput(in)
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, actorID, fmt.Sprintf("Created product: %s", p.Name))
	s.log.Info().Int64("product_id", p.ID).Str("name", p.Name).Msg("product created")
	return p, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, actorID, id int64, in ports.ProductInput) (*domain.Product, error) {
	p := productFromInput(in)
	p.ID = id
	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, actorID, fmt.Sprintf("Updated product ID: %d", id))
	return p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, actorID, id int64) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.recordActivity(ctx, actorID, fmt.Sprintf("Deleted product ID: %d", id))
	return nil
}

// productFromInput maps a catalog write, applying the server defaults for
// brand and life stage when the request omitted them.
func productFromInput(in ports.ProductInput) *domain.Product {
	brand := in.Brand
	if brand == "" {
		brand = domain.DefaultBrand
	}
	lifeStage := in.LifeStage
	if lifeStage == "" {
		lifeStage = domain.DefaultLifeStage
	}
	return &domain.Product{
		Name:        in.Name,
		Animal:      in.Animal,
		Category:    in.Category,
		Price:       in.Price,
		Image:       in.Image,
		Stock:       in.Stock,
		Rating:      in.Rating,
		Brand:       brand,
		LifeStage:   lifeStage,
		SKU:         in.SKU,
		Description: in.Description,
		Ingredients: in.Ingredients,
	}
}

func (s *CatalogService) recordActivity(ctx context.Context, userID int64, action string) {
	if err := s.activity.Record(ctx, &userID, action); err != nil {
		s.log.Warn().Err(err).Str("action", action).Msg("failed to record activity")
	}
}
