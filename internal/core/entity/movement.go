// Package entity provides core domain entities.
package entity

import (
	"time"

	"tradebook/internal/core/id"
	"tradebook/internal/core/types"
)

// RecordType defines movement direction for accumulation registers.
type RecordType string

const (
	// RecordTypeReceipt increases balance
	RecordTypeReceipt RecordType = "receipt"
	// RecordTypeExpense decreases balance
	RecordTypeExpense RecordType = "expense"
)

// MovementBase contains common fields for all register movements.
// Movements are immutable: they are never updated, only deleted together
// with the document that recorded them and recreated.
type MovementBase struct {
	// LineID is unique identifier for this movement line (UUIDv7)
	LineID id.ID `db:"line_id" json:"lineId"`

	// DocType and DocID reference the document that recorded the movement
	DocType DocType `db:"doc_type" json:"docType"`
	DocID   id.ID   `db:"doc_id" json:"docId"`

	// EntryDate is the business date for the movement (for period-based queries)
	EntryDate time.Time `db:"entry_date" json:"entryDate"`

	// RecordType: receipt or expense
	RecordType RecordType `db:"record_type" json:"recordType"`

	// CreatedAt is when the movement was recorded
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewMovementBase creates a new movement base with generated LineID.
func NewMovementBase(docType DocType, docID id.ID, entryDate time.Time, recordType RecordType) MovementBase {
	return MovementBase{
		LineID:     id.New(),
		DocType:    docType,
		DocID:      docID,
		EntryDate:  entryDate,
		RecordType: recordType,
		CreatedAt:  time.Now().UTC(),
	}
}

// StockMovement represents a movement in the stock register.
// Tracks quantity changes for products in warehouses.
type StockMovement struct {
	MovementBase

	// Dimensions
	WarehouseID id.ID `db:"warehouse_id" json:"warehouseId"`
	ProductID   id.ID `db:"product_id" json:"productId"`

	// Resources
	Quantity types.Quantity `db:"quantity" json:"quantity"`
}

// NewStockMovement creates a new stock movement.
// Quantity is always positive; direction comes from the record type.
func NewStockMovement(
	docType DocType,
	docID id.ID,
	entryDate time.Time,
	recordType RecordType,
	warehouseID, productID id.ID,
	quantity types.Quantity,
) StockMovement {
	return StockMovement{
		MovementBase: NewMovementBase(docType, docID, entryDate, recordType),
		WarehouseID:  warehouseID,
		ProductID:    productID,
		Quantity:     quantity,
	}
}

// SignedQuantity returns quantity with sign based on record type.
// Receipt = positive, Expense = negative.
func (m *StockMovement) SignedQuantity() types.Quantity {
	if m.RecordType == RecordTypeExpense {
		return m.Quantity.Neg()
	}
	return m.Quantity
}

// StockBalance represents current balance in the stock register.
// This is a materialized view for fast balance queries; it always equals
// the sum of signed movements for its (warehouse, product) pair and is
// reconstructible from the movement log.
type StockBalance struct {
	// Dimensions
	WarehouseID id.ID `db:"warehouse_id" json:"warehouseId"`
	ProductID   id.ID `db:"product_id" json:"productId"`

	// Balances
	Quantity types.Quantity `db:"quantity" json:"quantity"`

	// Metadata
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// CashMovement represents a movement in the cash register.
// Exists only when a document settles in money (paid sale, recorded
// expense on income, debt settlement).
type CashMovement struct {
	MovementBase

	// Dimension
	AccountID id.ID `db:"account_id" json:"accountId"`

	// Resource
	Amount types.Money `db:"amount" json:"amount"`

	// Note is a short free-form annotation ("sale", "debt settled", ...)
	Note string `db:"note" json:"note,omitempty"`
}

// NewCashMovement creates a new cash movement.
// Amount is non-negative; direction comes from the record type.
func NewCashMovement(
	docType DocType,
	docID id.ID,
	entryDate time.Time,
	recordType RecordType,
	accountID id.ID,
	amount types.Money,
	note string,
) CashMovement {
	return CashMovement{
		MovementBase: NewMovementBase(docType, docID, entryDate, recordType),
		AccountID:    accountID,
		Amount:       amount,
		Note:         note,
	}
}

// SignedAmount returns amount with sign based on record type.
func (m *CashMovement) SignedAmount() types.Money {
	if m.RecordType == RecordTypeExpense {
		return m.Amount.Neg()
	}
	return m.Amount
}

// CashBalance represents current balance of one account.
type CashBalance struct {
	AccountID id.ID       `db:"account_id" json:"accountId"`
	Amount    types.Money `db:"amount" json:"amount"`
	UpdatedAt time.Time   `db:"updated_at" json:"updatedAt"`
}
