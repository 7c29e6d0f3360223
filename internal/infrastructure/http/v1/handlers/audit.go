package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"tradebook/internal/core/apperror"
	"tradebook/internal/core/id"
	"tradebook/internal/infrastructure/http/v1/dto"
	"tradebook/internal/infrastructure/storage/postgres"
)

// AuditHistory retrieves the audit trail of one entity, newest first.
type AuditHistory interface {
	GetEntityHistory(ctx context.Context, entityType string, entityID id.ID, limit int) ([]postgres.AuditEntry, error)
}

// ReadOnlyRunner executes a function inside a read-only transaction.
type ReadOnlyRunner interface {
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// AuditHandler serves the audit trail. Rolled-back documents stay
// reconstructible here after their rows are gone.
type AuditHandler struct {
	*BaseHandler
	audit  AuditHistory
	runner ReadOnlyRunner
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(base *BaseHandler, audit AuditHistory, runner ReadOnlyRunner) *AuditHandler {
	return &AuditHandler{BaseHandler: base, audit: audit, runner: runner}
}

// EntityHistory returns the audit entries for one entity, newest first.
func (h *AuditHandler) EntityHistory(c *gin.Context) {
	entityType := c.Param("entity_type")
	switch entityType {
	case "sale", "income", "debtor":
	default:
		h.Error(c, apperror.NewValidation("unknown entity type").
			WithDetail("value", entityType))
		return
	}

	entityID, ok := h.ParseID(c)
	if !ok {
		return
	}
	limit := h.ParseIntQuery(c, "limit", 50)

	var entries []postgres.AuditEntry
	err := h.runner.ReadOnly(c.Request.Context(), func(ctx context.Context) error {
		var err error
		entries, err = h.audit.GetEntityHistory(ctx, entityType, entityID, limit)
		return err
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.AuditEntryResponse, len(entries))
	for i, e := range entries {
		items[i] = dto.FromAuditEntry(e)
	}
	h.OK(c, dto.ListResponse{Items: items, TotalCount: int64(len(items))})
}

// RegisterRoutes registers audit routes.
func (h *AuditHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:entity_type/:id", h.EntityHistory)
}
