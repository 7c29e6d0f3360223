// Package sale provides the Sale document: outgoing stock, incoming money.
package sale

import (
	"context"
	"strings"
	"time"

	"tradebook/internal/core/apperror"
	"tradebook/internal/core/entity"
	"tradebook/internal/core/id"
	"tradebook/internal/core/types"
)

// Sale represents one outgoing shipment to a customer.
// It owns exactly one stock movement (expense, its quantity) and, when
// paid, exactly one cash movement (receipt, its total). An unpaid sale
// owns an open debtor record instead.
type Sale struct {
	entity.Document

	CustomerID  id.ID `db:"customer_id" json:"customerId"`
	WarehouseID id.ID `db:"warehouse_id" json:"warehouseId"`
	ProductID   id.ID `db:"product_id" json:"productId"`

	Quantity     types.Quantity `db:"quantity" json:"quantity"`
	PricePerUnit types.Money    `db:"price_per_unit" json:"pricePerUnit"`
	DeliveryCost types.Money    `db:"delivery_cost" json:"deliveryCost"`

	// Total = quantity × price. Delivery is tracked separately and is not
	// folded into the total.
	Total types.Money `db:"total" json:"total"`

	IsPaid    bool   `db:"is_paid" json:"isPaid"`
	AccountID *id.ID `db:"account_id" json:"accountId,omitempty"`
}

// Fields is the full replaceable field set of a sale, as collected by the
// presentation layer. Edit passes the same shape with an existing id.
type Fields struct {
	Date          time.Time
	CustomerName  string
	CustomerPhone string
	Warehouse     string
	Product       string
	Quantity      types.Quantity
	PricePerUnit  types.Money
	DeliveryCost  types.Money
	IsPaid        bool
	Account       string
	AccountType   string
	Comment       string
}

// Validate re-checks the ranges the boundary has already promised;
// the core never trusts the collaborator layer on this.
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
	if f.IsPaid && strings.TrimSpace(f.Account) == "" {
		return apperror.NewValidation("account is required for a paid sale").
			WithDetail("field", "account")
	}
	return nil
}

// TotalAmount computes quantity × price.
func (f *Fields) TotalAmount() types.Money {
	return f.Quantity.Decimal().Mul(f.PricePerUnit)
}

// New builds a sale document from a validated field set.
// Catalog references are resolved by the service.
func New(f Fields, customerID, warehouseID, productID id.ID) *Sale {
	doc := &Sale{
		Document:     entity.NewDocument(f.Date),
		CustomerID:   customerID,
		WarehouseID:  warehouseID,
		ProductID:    productID,
		Quantity:     f.Quantity,
		PricePerUnit: f.PricePerUnit,
		DeliveryCost: f.DeliveryCost,
		Total:        f.TotalAmount(),
		IsPaid:       f.IsPaid,
	}
	doc.Comment = strings.TrimSpace(f.Comment)
	return doc
}

// StockMovement generates the single expense movement this sale owns.
func (s *Sale) StockMovement() entity.StockMovement {
	return entity.NewStockMovement(
		entity.DocTypeSale,
		s.ID,
		s.Date,
		entity.RecordTypeExpense,
		s.WarehouseID,
		s.ProductID,
		s.Quantity,
	)
}

// CashMovement generates the single receipt movement of a paid sale.
// Must only be called when AccountID is set.
func (s *Sale) CashMovement(note string) entity.CashMovement {
	return entity.NewCashMovement(
		entity.DocTypeSale,
		s.ID,
		s.Date,
		entity.RecordTypeReceipt,
		*s.AccountID,
		s.Total,
		note,
	)
}
