package dto

import (
	"time"

	"tradebook/internal/core/types"
	"tradebook/internal/domain/documents/income"
)

// --- Request DTOs ---

// IncomeRequest carries the full field set of an income. The same shape
// serves create and edit.
type IncomeRequest struct {
	Date          time.Time      `json:"date"`
	SupplierName  string         `json:"supplierName"`
	Warehouse     string         `json:"warehouse" binding:"required"`
	Product       string         `json:"product" binding:"required"`
	Quantity      types.Quantity `json:"quantity" binding:"required"`
	PricePerUnit  types.Money    `json:"pricePerUnit"`
	DeliveryCost  types.Money    `json:"deliveryCost"`
	RecordExpense bool           `json:"recordExpense"`
	Account       string         `json:"account"`
	AccountType   string         `json:"accountType"`
	Comment       string         `json:"comment"`
}

// ToFields converts the request to the domain field set.
func (r *IncomeRequest) ToFields() income.Fields {
	return income.Fields{
		Date:          r.Date,
		SupplierName:  r.SupplierName,
		Warehouse:     r.Warehouse,
		Product:       r.Product,
		Quantity:      r.Quantity,
		PricePerUnit:  r.PricePerUnit,
		DeliveryCost:  r.DeliveryCost,
		RecordExpense: r.RecordExpense,
		Account:       r.Account,
		AccountType:   r.AccountType,
		Comment:       r.Comment,
	}
}

// --- Response DTOs ---

// IncomeResponse is the API shape of an income document.
type IncomeResponse struct {
	ID            string         `json:"id"`
	Date          time.Time      `json:"date"`
	SupplierName  string         `json:"supplierName"`
	WarehouseID   string         `json:"warehouseId"`
	ProductID     string         `json:"productId"`
	Quantity      types.Quantity `json:"quantity"`
	PricePerUnit  types.Money    `json:"pricePerUnit"`
	DeliveryCost  types.Money    `json:"deliveryCost"`
	Total         types.Money    `json:"total"`
	RecordExpense bool           `json:"recordExpense"`
	AccountID     *string        `json:"accountId,omitempty"`
	Comment       string         `json:"comment,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// FromIncome creates IncomeResponse from an income document.
func FromIncome(doc *income.Income) *IncomeResponse {
	resp := &IncomeResponse{
		ID:            doc.ID.String(),
		Date:          doc.Date,
		SupplierName:  doc.SupplierName,
		WarehouseID:   doc.WarehouseID.String(),
		ProductID:     doc.ProductID.String(),
		Quantity:      doc.Quantity,
		PricePerUnit:  doc.PricePerUnit,
		DeliveryCost:  doc.DeliveryCost,
		Total:         doc.Total,
		RecordExpense: doc.RecordExpense,
		Comment:       doc.Comment,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
	if doc.AccountID != nil {
		s := doc.AccountID.String()
		resp.AccountID = &s
	}
	return resp
}
