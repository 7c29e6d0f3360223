// Package product provides the Product catalog.
package product

import (
	"tradebook/internal/core/entity"
)

// DefaultUnit is the unit of measure assigned to new products.
// The business trades bulk goods, so everything is weighed.
const DefaultUnit = "kg"

// Product represents a traded good.
type Product struct {
	entity.Catalog

	// Unit is the unit of measure for quantities of this product
	Unit string `db:"unit" json:"unit"`
}

// New creates a new Product with the default unit.
func New(name string) *Product {
	return &Product{
		Catalog: entity.NewCatalog(name),
		Unit:    DefaultUnit,
	}
}
