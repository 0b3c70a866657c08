package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/savemypet/storefront/internal/core/domain"
)

const productColumns = `id, name, animal, category, price, image, stock, rating,
	brand, lifeStage, COALESCE(sku, ''), COALESCE(description, ''), COALESCE(ingredients, '')`

// ProductRepository persists catalog entries in the products table.
type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// List returns products matching the filter. Empty filter fields match
// everything; non-empty fields are exact-match and AND-combined.
func (r *ProductRepository) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []any{}

	if filter.Animal != "" {
		query += ` AND animal = ?`
		args = append(args, filter.Animal)
	}
	if filter.Category != "" {
		query += ` AND category = ?`
		args = append(args, filter.Category)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ?`, id,
	)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO products (name, animal, category, price, image, stock, rating, brand, lifeStage, sku, description, ingredients)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Animal, p.Category, p.Price, p.Image, p.Stock, p.Rating,
		p.Brand, p.LifeStage, nullString(p.SKU), nullString(p.Description), nullString(p.Ingredients),
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	p.ID = id
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET name = ?, animal = ?, category = ?, price = ?, image = ?,
		 stock = ?, rating = ?, brand = ?, lifeStage = ?, sku = ?, description = ?, ingredients = ?
		 WHERE id = ?`,
		p.Name, p.Animal, p.Category, p.Price, p.Image, p.Stock, p.Rating,
		p.Brand, p.LifeStage, nullString(p.SKU), nullString(p.Description), nullString(p.Ingredients),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if n == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if n == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Animal, &p.Category, &p.Price, &p.Image, &p.Stock,
		&p.Rating, &p.Brand, &p.LifeStage, &p.SKU, &p.Description, &p.Ingredients,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
