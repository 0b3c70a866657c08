package domain

import "errors"

// Animal categories carried in the catalog.
const (
	AnimalDogs  = "Dogs"
	AnimalCats  = "Cats"
	AnimalBirds = "Birds"
)

// Server-applied defaults when a catalog write omits the fields.
const (
	DefaultBrand     = "Save My Pet"
	DefaultLifeStage = "Adult"
)

var ErrProductNotFound = errors.New("product not found")

// Product is a catalog entry. Price is in minor currency units (no
// decimals); Stock is adjusted by the order workflow.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Animal      string  `json:"animal"`
	Category    string  `json:"category"`
	Price       int64   `json:"price"`
	Image       string  `json:"image"`
	Stock       int64   `json:"stock"`
	Rating      float64 `json:"rating"`
	Brand       string  `json:"brand"`
	LifeStage   string  `json:"lifeStage"`
	SKU         string  `json:"sku,omitempty"`
	Description string  `json:"description,omitempty"`
	Ingredients string  `json:"ingredients,omitempty"`
}

// ProductFilter narrows catalog listings. Empty fields match everything;
// non-empty fields are exact-match and AND-combined.
type ProductFilter struct {
	Animal   string
	Category string
}
