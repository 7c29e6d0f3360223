package handlers_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"tradebook/internal/domain"
	"tradebook/internal/infrastructure/http/v1/handlers"
)

func listContext(t *testing.T, query string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/sales"+query, nil)
	return c
}

func TestListFilterUsesConfiguredDefault(t *testing.T) {
	h := handlers.NewBaseHandler(25)

	filter := h.ListFilter(listContext(t, ""))

	assert.Equal(t, 25, filter.Limit)
	assert.Equal(t, 0, filter.Offset)
}

func TestListFilterQueryOverridesDefault(t *testing.T) {
	h := handlers.NewBaseHandler(25)

	filter := h.ListFilter(listContext(t, "?limit=10&offset=40"))

	assert.Equal(t, 10, filter.Limit)
	assert.Equal(t, 40, filter.Offset)
}

func TestListFilterZeroConfigFallsBack(t *testing.T) {
	h := handlers.NewBaseHandler(0)

	filter := h.ListFilter(listContext(t, ""))

	assert.Equal(t, domain.DefaultListFilter().Limit, filter.Limit)
}
