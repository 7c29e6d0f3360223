package handlers

import (
	"github.com/gin-gonic/gin"

	"tradebook/internal/core/apperror"
	"tradebook/internal/domain/catalogs/account"
	"tradebook/internal/domain/debtors"
	"tradebook/internal/infrastructure/http/v1/dto"
)

// DebtorHandler handles HTTP requests for debtors.
type DebtorHandler struct {
	*BaseHandler
	service *debtors.Service
}

// NewDebtorHandler creates a new debtor handler.
func NewDebtorHandler(base *BaseHandler, service *debtors.Service) *DebtorHandler {
	return &DebtorHandler{BaseHandler: base, service: service}
}

// Settle marks a debt paid and records the cash inflow. Retrying a
// settled debt returns 200 with alreadySettled set; nothing changes.
func (h *DebtorHandler) Settle(c *gin.Context) {
	ctx := c.Request.Context()

	debtorID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.SettleDebtRequest
	if !h.BindJSON(c, &req) {
		return
	}

	accType := account.Type(req.AccountType)
	if req.AccountType == "" {
		accType = account.TypeCash
	}

	settled, err := h.service.Settle(ctx, debtorID, req.Account, accType)
	if err != nil {
		if apperror.IsAlreadySettled(err) {
			d, getErr := h.service.GetByID(ctx, debtorID)
			if getErr != nil {
				h.Error(c, getErr)
				return
			}
			h.OK(c, dto.SettleDebtResponse{
				Debtor:         dto.FromDebtor(d),
				AlreadySettled: true,
			})
			return
		}
		h.Error(c, err)
		return
	}

	h.OK(c, dto.SettleDebtResponse{Debtor: dto.FromDebtor(settled)})
}

// Get retrieves a debtor.
func (h *DebtorHandler) Get(c *gin.Context) {
	debtorID, ok := h.ParseID(c)
	if !ok {
		return
	}

	d, err := h.service.GetByID(c.Request.Context(), debtorID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromDebtor(d))
}

// List returns debtors. With ?open=true only unpaid debts are returned.
func (h *DebtorHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		list []*debtors.Debtor
		err  error
	)
	if c.Query("open") == "true" {
		list, err = h.service.ListOpen(ctx)
	} else {
		list, err = h.service.List(ctx)
	}
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]*dto.DebtorResponse, len(list))
	for i, d := range list {
		items[i] = dto.FromDebtor(d)
	}

	h.OK(c, dto.ListResponse{
		Items:      items,
		TotalCount: int64(len(items)),
	})
}

// RegisterRoutes registers debtor routes.
func (h *DebtorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.POST("/:id/settle", h.Settle)
}
