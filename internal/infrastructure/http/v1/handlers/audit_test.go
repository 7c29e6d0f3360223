package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradebook/internal/core/id"
	"tradebook/internal/domain"
	"tradebook/internal/infrastructure/http/v1/handlers"
	"tradebook/internal/infrastructure/http/v1/middleware"
	"tradebook/internal/infrastructure/storage/postgres"
)

type fakeAuditSource struct {
	entries    []postgres.AuditEntry
	gotType    string
	gotID      id.ID
	gotLimit   int
	queryCalls int
}

func (f *fakeAuditSource) GetEntityHistory(ctx context.Context, entityType string, entityID id.ID, limit int) ([]postgres.AuditEntry, error) {
	f.queryCalls++
	f.gotType = entityType
	f.gotID = entityID
	f.gotLimit = limit
	return f.entries, nil
}

type fakeReadOnlyRunner struct {
	calls int
}

func (f *fakeReadOnlyRunner) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

func auditRouter(source *fakeAuditSource, runner *fakeReadOnlyRunner) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler())

	h := handlers.NewAuditHandler(handlers.NewBaseHandler(50), source, runner)
	h.RegisterRoutes(router.Group("/audit"))
	return router
}

func TestAuditEntityHistory(t *testing.T) {
	entityID := id.New()
	source := &fakeAuditSource{entries: []postgres.AuditEntry{{
		ID:         id.New(),
		EntityType: "sale",
		EntityID:   entityID,
		Action:     domain.AuditActionCreate,
		Snapshot:   json.RawMessage(`{"total":"100"}`),
		CreatedAt:  time.Now().UTC(),
	}}}
	runner := &fakeReadOnlyRunner{}
	router := auditRouter(source, runner)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/audit/sale/"+entityID.String()+"?limit=5", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// The query runs inside a read-only transaction.
	assert.Equal(t, 1, runner.calls)
	assert.Equal(t, 1, source.queryCalls)
	assert.Equal(t, "sale", source.gotType)
	assert.Equal(t, entityID, source.gotID)
	assert.Equal(t, 5, source.gotLimit)

	var body struct {
		Items      []map[string]any `json:"items"`
		TotalCount int64            `json:"totalCount"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "create", body.Items[0]["action"])
	assert.Equal(t, entityID.String(), body.Items[0]["entityId"])
}

func TestAuditEntityHistoryUnknownType(t *testing.T) {
	source := &fakeAuditSource{}
	runner := &fakeReadOnlyRunner{}
	router := auditRouter(source, runner)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/audit/warehouse/"+id.New().String(), nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, runner.calls)
}

func TestAuditEntityHistoryBadID(t *testing.T) {
	source := &fakeAuditSource{}
	runner := &fakeReadOnlyRunner{}
	router := auditRouter(source, runner)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/audit/sale/not-an-id", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, source.queryCalls)
}
