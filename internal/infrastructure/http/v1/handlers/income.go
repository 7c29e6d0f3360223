package handlers

import (
	"github.com/gin-gonic/gin"

	"tradebook/internal/domain/documents/income"
	"tradebook/internal/infrastructure/http/v1/dto"
)

// IncomeHandler handles HTTP requests for Income documents.
type IncomeHandler struct {
	*BaseHandler
	service *income.Service
}

// NewIncomeHandler creates a new income handler.
func NewIncomeHandler(base *BaseHandler, service *income.Service) *IncomeHandler {
	return &IncomeHandler{BaseHandler: base, service: service}
}

// Create records a new income.
func (h *IncomeHandler) Create(c *gin.Context) {
	var req dto.IncomeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.Create(c.Request.Context(), req.ToFields())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromIncome(doc))
}

// Update replaces an income with a new field set.
func (h *IncomeHandler) Update(c *gin.Context) {
	docID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.IncomeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.Edit(c.Request.Context(), docID, req.ToFields())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromIncome(doc))
}

// Delete rolls an income back.
func (h *IncomeHandler) Delete(c *gin.Context) {
	docID, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), docID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// Get retrieves an income.
func (h *IncomeHandler) Get(c *gin.Context) {
	docID, ok := h.ParseID(c)
	if !ok {
		return
	}

	doc, err := h.service.GetByID(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromIncome(doc))
}

// List retrieves incomes, most recent first.
func (h *IncomeHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context(), h.ListFilter(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]*dto.IncomeResponse, len(result.Items))
	for i, doc := range result.Items {
		items[i] = dto.FromIncome(doc)
	}

	h.OK(c, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// RegisterRoutes registers income routes.
func (h *IncomeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}
