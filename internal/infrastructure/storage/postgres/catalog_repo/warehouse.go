package catalog_repo

import (
	"tradebook/internal/domain"
	"tradebook/internal/domain/catalogs/warehouse"
	"tradebook/internal/infrastructure/storage/postgres"
)

const warehousesTable = "cat_warehouses"

// Ensure interface compliance.
var _ domain.CatalogRepository[*warehouse.Warehouse] = (*WarehouseRepo)(nil)

// WarehouseRepo implements warehouse persistence.
type WarehouseRepo struct {
	*BaseCatalogRepo[*warehouse.Warehouse]
}

// NewWarehouseRepo creates a new warehouse repository.
func NewWarehouseRepo(txManager *postgres.TxManager) *WarehouseRepo {
	return &WarehouseRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*warehouse.Warehouse](txManager, warehousesTable, "warehouse"),
	}
}
