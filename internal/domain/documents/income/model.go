// Package income provides the Income document: incoming stock, outgoing money.
package income

import (
	"context"
	"strings"
	"time"

	"tradebook/internal/core/apperror"
	"tradebook/internal/core/entity"
	"tradebook/internal/core/id"
	"tradebook/internal/core/types"
)

// Income represents one incoming goods receipt from a supplier.
// It owns exactly one stock movement (receipt, its quantity) and, when the
// purchase expense is recorded, exactly one cash movement (expense, its
// total).
type Income struct {
	entity.Document

	SupplierName string `db:"supplier_name" json:"supplierName"`
	WarehouseID  id.ID  `db:"warehouse_id" json:"warehouseId"`
	ProductID    id.ID  `db:"product_id" json:"productId"`

	Quantity     types.Quantity `db:"quantity" json:"quantity"`
	PricePerUnit types.Money    `db:"price_per_unit" json:"pricePerUnit"`
	DeliveryCost types.Money    `db:"delivery_cost" json:"deliveryCost"`

	// Total = quantity × price. Delivery is tracked separately.
	Total types.Money `db:"total" json:"total"`

	// RecordExpense means the purchase was paid out of an account and a cash
	// expense movement was written alongside the stock receipt.
	RecordExpense bool   `db:"record_expense" json:"recordExpense"`
	AccountID     *id.ID `db:"account_id" json:"accountId,omitempty"`
}

// Fields is the full replaceable field set of an income, as collected by
// the presentation layer.
type Fields struct {
	Date          time.Time
	SupplierName  string
	Warehouse     string
	Product       string
	Quantity      types.Quantity
	PricePerUnit  types.Money
	DeliveryCost  types.Money
	RecordExpense bool
	Account       string
	AccountType   string
	Comment       string
}

// Validate re-checks the ranges the boundary has already promised.
func (f *Fields) Validate(ctx context.Context) error {
	if !f.Quantity.IsPositive() {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity")
	}
	if f.PricePerUnit.IsNegative() {
		return apperror.NewValidation("price must not be negative").
			WithDetail("field", "pricePerUnit")
	}
	if f.DeliveryCost.IsNegative() {
		return apperror.NewValidation("delivery cost must not be negative").
			WithDetail("field", "deliveryCost")
	}
	if strings.TrimSpace(f.Warehouse) == "" {
		return apperror.NewValidation("warehouse is required").
			WithDetail("field", "warehouse")
	}
	if strings.TrimSpace(f.Product) == "" {
		return apperror.NewValidation("product is required").
			WithDetail("field", "product")
	}
	if f.RecordExpense && strings.TrimSpace(f.Account) == "" {
		return apperror.NewValidation("account is required when recording the expense").
			WithDetail("field", "account")
	}
	return nil
}

// TotalAmount computes quantity × price.
func (f *Fields) TotalAmount() types.Money {
	return f.Quantity.Decimal().Mul(f.PricePerUnit)
}

// New builds an income document from a validated field set.
func New(f Fields, warehouseID, productID id.ID) *Income {
	doc := &Income{
		Document:      entity.NewDocument(f.Date),
		SupplierName:  strings.TrimSpace(f.SupplierName),
		WarehouseID:   warehouseID,
		ProductID:     productID,
		Quantity:      f.Quantity,
		PricePerUnit:  f.PricePerUnit,
		DeliveryCost:  f.DeliveryCost,
		Total:         f.TotalAmount(),
		RecordExpense: f.RecordExpense,
	}
	doc.Comment = strings.TrimSpace(f.Comment)
	return doc
}

// StockMovement generates the single receipt movement this income owns.
func (inc *Income) StockMovement() entity.StockMovement {
	return entity.NewStockMovement(
		entity.DocTypeIncome,
		inc.ID,
		inc.Date,
		entity.RecordTypeReceipt,
		inc.WarehouseID,
		inc.ProductID,
		inc.Quantity,
	)
}

// CashMovement generates the single expense movement of a paid purchase.
// Must only be called when AccountID is set.
func (inc *Income) CashMovement(note string) entity.CashMovement {
	return entity.NewCashMovement(
		entity.DocTypeIncome,
		inc.ID,
		inc.Date,
		entity.RecordTypeExpense,
		*inc.AccountID,
		inc.Total,
		note,
	)
}
