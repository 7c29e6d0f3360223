package dto

import (
	"tradebook/internal/domain/catalogs/account"
	"tradebook/internal/domain/catalogs/customer"
	"tradebook/internal/domain/catalogs/product"
	"tradebook/internal/domain/catalogs/warehouse"
)

// CreateWarehouseRequest creates a warehouse ahead of its first document.
type CreateWarehouseRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateProductRequest creates a product ahead of its first document.
type CreateProductRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateAccountRequest creates an account ahead of its first document.
type CreateAccountRequest struct {
	Name     string  `json:"name" binding:"required"`
	Type     string  `json:"type" binding:"required,oneof=cash bank ip"`
	BankName *string `json:"bankName,omitempty"`
}

// WarehouseResponse is the API shape of a warehouse.
type WarehouseResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FromWarehouse creates WarehouseResponse.
func FromWarehouse(w *warehouse.Warehouse) WarehouseResponse {
	return WarehouseResponse{ID: w.ID.String(), Name: w.Name}
}

// ProductResponse is the API shape of a product.
type ProductResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Unit string `json:"unit"`
}

// FromProduct creates ProductResponse.
func FromProduct(p *product.Product) ProductResponse {
	return ProductResponse{ID: p.ID.String(), Name: p.Name, Unit: p.Unit}
}

// AccountResponse is the API shape of an account.
type AccountResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	BankName *string `json:"bankName,omitempty"`
}

// FromAccount creates AccountResponse.
func FromAccount(a *account.Account) AccountResponse {
	return AccountResponse{
		ID:       a.ID.String(),
		Name:     a.Name,
		Type:     string(a.Type),
		BankName: a.BankName,
	}
}

// CustomerResponse is the API shape of a customer.
type CustomerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// FromCustomer creates CustomerResponse.
func FromCustomer(c *customer.Customer) CustomerResponse {
	return CustomerResponse{ID: c.ID.String(), Name: c.Name, Phone: c.Phone}
}
