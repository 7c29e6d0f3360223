package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tradebook/internal/domain/catalogs/account"
	"tradebook/internal/domain/documents/sale"
)

func TestExtractDBColumnsFlat(t *testing.T) {
	type row struct {
		ID      string `db:"id"`
		Name    string `db:"name"`
		Skipped string `db:"-"`
		NoTag   string
	}

	assert.Equal(t, []string{"id", "name"}, ExtractDBColumns[row]())
}

func TestExtractDBColumnsEmbedded(t *testing.T) {
	// Documents inherit id/version/timestamps through several embedding
	// levels; the walk must flatten all of them.
	cols := ExtractDBColumns[sale.Sale]()

	assert.Contains(t, cols, "id")
	assert.Contains(t, cols, "version")
	assert.Contains(t, cols, "created_at")
	assert.Contains(t, cols, "doc_date")
	assert.Contains(t, cols, "quantity")
	assert.Contains(t, cols, "is_paid")
	assert.NotContains(t, cols, "-")
}

func TestStructToMap(t *testing.T) {
	acc := account.New("Till", account.TypeCash)

	m := StructToMap(acc)

	assert.Equal(t, acc.ID, m["id"])
	assert.Equal(t, "Till", m["name"])
	assert.Equal(t, account.TypeCash, m["type"])
	assert.NotContains(t, m, "-")
}

func TestStructToMapCachedAcrossCalls(t *testing.T) {
	first := StructToMap(account.New("A", account.TypeCash))
	second := StructToMap(account.New("B", account.TypeBank))

	assert.Equal(t, "A", first["name"])
	assert.Equal(t, "B", second["name"])
	assert.Equal(t, len(first), len(second))
}

func TestStructToMapNonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
	assert.Nil(t, StructToMap("x"))
}
