package dto

import (
	"time"

	"tradebook/internal/core/types"
	"tradebook/internal/domain/documents/sale"
)

// --- Request DTOs ---

// SaleRequest carries the full field set of a sale. The same shape serves
// create and edit; an edit replaces every field.
type SaleRequest struct {
	Date          time.Time      `json:"date"`
	CustomerName  string         `json:"customerName"`
	CustomerPhone string         `json:"customerPhone"`
	Warehouse     string         `json:"warehouse" binding:"required"`
	Product       string         `json:"product" binding:"required"`
	Quantity      types.Quantity `json:"quantity" binding:"required"`
	PricePerUnit  types.Money    `json:"pricePerUnit"`
	DeliveryCost  types.Money    `json:"deliveryCost"`
	IsPaid        bool           `json:"isPaid"`
	Account       string         `json:"account"`
	AccountType   string         `json:"accountType"`
	Comment       string         `json:"comment"`
}

// ToFields converts the request to the domain field set.
func (r *SaleRequest) ToFields() sale.Fields {
	return sale.Fields{
		Date:          r.Date,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Warehouse:     r.Warehouse,
		Product:       r.Product,
		Quantity:      r.Quantity,
		PricePerUnit:  r.PricePerUnit,
		DeliveryCost:  r.DeliveryCost,
		IsPaid:        r.IsPaid,
		Account:       r.Account,
		AccountType:   r.AccountType,
		Comment:       r.Comment,
	}
}

// --- Response DTOs ---

// SaleResponse is the API shape of a sale document.
type SaleResponse struct {
	ID           string         `json:"id"`
	Date         time.Time      `json:"date"`
	CustomerID   string         `json:"customerId"`
	WarehouseID  string         `json:"warehouseId"`
	ProductID    string         `json:"productId"`
	Quantity     types.Quantity `json:"quantity"`
	PricePerUnit types.Money    `json:"pricePerUnit"`
	DeliveryCost types.Money    `json:"deliveryCost"`
	Total        types.Money    `json:"total"`
	IsPaid       bool           `json:"isPaid"`
	AccountID    *string        `json:"accountId,omitempty"`
	Comment      string         `json:"comment,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// FromSale creates SaleResponse from a sale document.
func FromSale(doc *sale.Sale) *SaleResponse {
	resp := &SaleResponse{
		ID:           doc.ID.String(),
		Date:         doc.Date,
		CustomerID:   doc.CustomerID.String(),
		WarehouseID:  doc.WarehouseID.String(),
		ProductID:    doc.ProductID.String(),
		Quantity:     doc.Quantity,
		PricePerUnit: doc.PricePerUnit,
		DeliveryCost: doc.DeliveryCost,
		Total:        doc.Total,
		IsPaid:       doc.IsPaid,
		Comment:      doc.Comment,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
	if doc.AccountID != nil {
		s := doc.AccountID.String()
		resp.AccountID = &s
	}
	return resp
}
