// Package debtors provides the receivables ledger: one open debtor per
// unpaid sale, closed exactly once when the debt is settled.
package debtors

import (
	"time"

	"tradebook/internal/core/entity"
	"tradebook/internal/core/id"
	"tradebook/internal/core/types"
)

// Debtor is an open receivable created by an unpaid sale.
// It references its sale directly; matching by (name, phone, total) is
// ambiguous when two debts share identical amounts.
type Debtor struct {
	entity.BaseDocument

	// SaleID is the originating sale (unique: one debtor per sale).
	SaleID id.ID `db:"sale_id" json:"saleId"`

	DocDate time.Time `db:"doc_date" json:"docDate"`

	// Customer identity, denormalized for display.
	CustomerID    id.ID  `db:"customer_id" json:"customerId"`
	CustomerName  string `db:"customer_name" json:"customerName"`
	CustomerPhone string `db:"customer_phone" json:"customerPhone"`

	// What was sold.
	Description string         `db:"description" json:"description"`
	Quantity    types.Quantity `db:"quantity" json:"quantity"`
	Price       types.Money    `db:"price" json:"price"`
	Total       types.Money    `db:"total" json:"total"`

	IsPaid bool `db:"is_paid" json:"isPaid"`
}
