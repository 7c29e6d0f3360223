package dto

import (
	"time"

	"tradebook/internal/core/types"
	"tradebook/internal/domain/debtors"
)

// --- Request DTOs ---

// SettleDebtRequest names the account the settlement money lands in.
type SettleDebtRequest struct {
	Account     string `json:"account" binding:"required"`
	AccountType string `json:"accountType"`
}

// --- Response DTOs ---

// DebtorResponse is the API shape of a debtor record.
type DebtorResponse struct {
	ID            string         `json:"id"`
	SaleID        string         `json:"saleId"`
	DocDate       time.Time      `json:"docDate"`
	CustomerID    string         `json:"customerId"`
	CustomerName  string         `json:"customerName"`
	CustomerPhone string         `json:"customerPhone"`
	Description   string         `json:"description"`
	Quantity      types.Quantity `json:"quantity"`
	Price         types.Money    `json:"price"`
	Total         types.Money    `json:"total"`
	IsPaid        bool           `json:"isPaid"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// FromDebtor creates DebtorResponse from a debtor record.
func FromDebtor(d *debtors.Debtor) *DebtorResponse {
	return &DebtorResponse{
		ID:            d.ID.String(),
		SaleID:        d.SaleID.String(),
		DocDate:       d.DocDate,
		CustomerID:    d.CustomerID.String(),
		CustomerName:  d.CustomerName,
		CustomerPhone: d.CustomerPhone,
		Description:   d.Description,
		Quantity:      d.Quantity,
		Price:         d.Price,
		Total:         d.Total,
		IsPaid:        d.IsPaid,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// SettleDebtResponse reports the settlement outcome. AlreadySettled is
// true when the debt had been settled before this call; the call is then
// a no-op and the response still carries the debtor state.
type SettleDebtResponse struct {
	Debtor         *DebtorResponse `json:"debtor"`
	AlreadySettled bool            `json:"alreadySettled"`
}
