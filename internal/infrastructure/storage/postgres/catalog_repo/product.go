package catalog_repo

import (
	"tradebook/internal/domain"
	"tradebook/internal/domain/catalogs/product"
	"tradebook/internal/infrastructure/storage/postgres"
)

const productsTable = "cat_products"

// Ensure interface compliance.
var _ domain.CatalogRepository[*product.Product] = (*ProductRepo)(nil)

// ProductRepo implements product persistence.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txManager *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*product.Product](txManager, productsTable, "product"),
	}
}
