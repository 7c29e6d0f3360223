package handlers

import (
	"github.com/gin-gonic/gin"

	"tradebook/internal/domain/registers/cash"
	"tradebook/internal/domain/registers/stock"
	"tradebook/internal/infrastructure/http/v1/dto"
)

// BalanceHandler serves materialized register balances.
type BalanceHandler struct {
	*BaseHandler
	stockReg *stock.Service
	cashReg  *cash.Service
}

// NewBalanceHandler creates a new balance handler.
func NewBalanceHandler(base *BaseHandler, stockReg *stock.Service, cashReg *cash.Service) *BalanceHandler {
	return &BalanceHandler{BaseHandler: base, stockReg: stockReg, cashReg: cashReg}
}

// StockBalances returns all non-zero stock balances. With both
// warehouse_id and product_id query parameters it returns the one
// balance for that pair (zero when no movement has touched it yet).
func (h *BalanceHandler) StockBalances(c *gin.Context) {
	if c.Query("warehouse_id") != "" || c.Query("product_id") != "" {
		h.stockBalance(c)
		return
	}

	balances, err := h.stockReg.ListBalances(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.StockBalanceResponse, len(balances))
	for i, b := range balances {
		items[i] = dto.FromStockBalance(b)
	}

	h.OK(c, dto.ListResponse{Items: items, TotalCount: int64(len(items))})
}

func (h *BalanceHandler) stockBalance(c *gin.Context) {
	warehouseID, ok := h.ParseQueryID(c, "warehouse_id")
	if !ok {
		return
	}
	productID, ok := h.ParseQueryID(c, "product_id")
	if !ok {
		return
	}

	balance, err := h.stockReg.GetBalance(c.Request.Context(), warehouseID, productID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromStockBalance(balance))
}

// CashBalances returns all account balances. With an account_id query
// parameter it returns the one balance for that account.
func (h *BalanceHandler) CashBalances(c *gin.Context) {
	if c.Query("account_id") != "" {
		h.cashBalance(c)
		return
	}

	balances, err := h.cashReg.ListBalances(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.CashBalanceResponse, len(balances))
	for i, b := range balances {
		items[i] = dto.FromCashBalance(b)
	}

	h.OK(c, dto.ListResponse{Items: items, TotalCount: int64(len(items))})
}

func (h *BalanceHandler) cashBalance(c *gin.Context) {
	accountID, ok := h.ParseQueryID(c, "account_id")
	if !ok {
		return
	}

	balance, err := h.cashReg.GetBalance(c.Request.Context(), accountID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromCashBalance(balance))
}

// RebuildStock regenerates stock balances from the movement log.
// Maintenance endpoint; safe to run at any time.
func (h *BalanceHandler) RebuildStock(c *gin.Context) {
	if err := h.stockReg.Rebuild(c.Request.Context()); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "stock balances rebuilt")
}

// RebuildCash regenerates cash balances from the movement log.
func (h *BalanceHandler) RebuildCash(c *gin.Context) {
	if err := h.cashReg.Rebuild(c.Request.Context()); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "cash balances rebuilt")
}

// RegisterRoutes registers balance routes.
func (h *BalanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stock", h.StockBalances)
	rg.GET("/cash", h.CashBalances)
	rg.POST("/stock/rebuild", h.RebuildStock)
	rg.POST("/cash/rebuild", h.RebuildCash)
}
