// Package warehouse provides the Warehouse catalog.
// Warehouses represent physical locations for storing goods.
package warehouse

import (
	"tradebook/internal/core/entity"
)

// Warehouse represents a storage location for goods.
type Warehouse struct {
	entity.Catalog
}

// New creates a new Warehouse with required fields.
func New(name string) *Warehouse {
	return &Warehouse{
		Catalog: entity.NewCatalog(name),
	}
}
