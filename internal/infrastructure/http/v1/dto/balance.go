package dto

import (
	"time"

	"tradebook/internal/core/entity"
	"tradebook/internal/core/types"
)

// StockBalanceResponse is one materialized stock balance row.
type StockBalanceResponse struct {
	WarehouseID string         `json:"warehouseId"`
	ProductID   string         `json:"productId"`
	Quantity    types.Quantity `json:"quantity"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// FromStockBalance creates StockBalanceResponse from a balance row.
func FromStockBalance(b entity.StockBalance) StockBalanceResponse {
	return StockBalanceResponse{
		WarehouseID: b.WarehouseID.String(),
		ProductID:   b.ProductID.String(),
		Quantity:    b.Quantity,
		UpdatedAt:   b.UpdatedAt,
	}
}

// CashBalanceResponse is one materialized account balance row.
type CashBalanceResponse struct {
	AccountID string      `json:"accountId"`
	Amount    types.Money `json:"amount"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// FromCashBalance creates CashBalanceResponse from a balance row.
func FromCashBalance(b entity.CashBalance) CashBalanceResponse {
	return CashBalanceResponse{
		AccountID: b.AccountID.String(),
		Amount:    b.Amount,
		UpdatedAt: b.UpdatedAt,
	}
}
