package stock_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradebook/internal/core/apperror"
	"tradebook/internal/core/entity"
	"tradebook/internal/core/id"
	"tradebook/internal/core/types"
	"tradebook/internal/domain/domaintest"
	"tradebook/internal/domain/registers/stock"
)

func qty(v float64) types.Quantity { return types.NewQuantityFromFloat64(v) }

func movement(docType entity.DocType, docID id.ID, rt entity.RecordType, wh, pr id.ID, q types.Quantity) entity.StockMovement {
	return entity.NewStockMovement(docType, docID, time.Now().UTC(), rt, wh, pr, q)
}

func TestRecordUpdatesBalance(t *testing.T) {
	ctx := context.Background()
	repo := domaintest.NewStockRepo()
	svc := stock.NewService(repo)

	wh, pr := id.New(), id.New()

	require.NoError(t, svc.Record(ctx, []entity.StockMovement{
		movement(entity.DocTypeIncome, id.New(), entity.RecordTypeReceipt, wh, pr, qty(100)),
	}))
	require.NoError(t, svc.Record(ctx, []entity.StockMovement{
		movement(entity.DocTypeSale, id.New(), entity.RecordTypeExpense, wh, pr, qty(30)),
	}))

	balance, err := svc.GetBalance(ctx, wh, pr)
	require.NoError(t, err)
	assert.Equal(t, qty(70), balance.Quantity)
}

func TestRecordRejectsNonPositiveQuantity(t *testing.T) {
	ctx := context.Background()
	svc := stock.NewService(domaintest.NewStockRepo())

	err := svc.Record(ctx, []entity.StockMovement{
		movement(entity.DocTypeIncome, id.New(), entity.RecordTypeReceipt, id.New(), id.New(), 0),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestReverseRestoresBalance(t *testing.T) {
	ctx := context.Background()
	repo := domaintest.NewStockRepo()
	svc := stock.NewService(repo)

	wh, pr := id.New(), id.New()
	incomeID, saleID := id.New(), id.New()

	require.NoError(t, svc.Record(ctx, []entity.StockMovement{
		movement(entity.DocTypeIncome, incomeID, entity.RecordTypeReceipt, wh, pr, qty(100)),
	}))
	require.NoError(t, svc.Record(ctx, []entity.StockMovement{
		movement(entity.DocTypeSale, saleID, entity.RecordTypeExpense, wh, pr, qty(40)),
	}))

	require.NoError(t, svc.Reverse(ctx, entity.DocTypeSale, saleID))

	balance, err := svc.GetBalance(ctx, wh, pr)
	require.NoError(t, err)
	assert.Equal(t, qty(100), balance.Quantity)

	left, err := repo.GetMovementsByDoc(ctx, entity.DocTypeSale, saleID)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestReverseUnknownDocIsNoop(t *testing.T) {
	ctx := context.Background()
	repo := domaintest.NewStockRepo()
	svc := stock.NewService(repo)

	wh, pr := id.New(), id.New()
	require.NoError(t, svc.Record(ctx, []entity.StockMovement{
		movement(entity.DocTypeIncome, id.New(), entity.RecordTypeReceipt, wh, pr, qty(10)),
	}))

	require.NoError(t, svc.Reverse(ctx, entity.DocTypeSale, id.New()))

	balance, err := svc.GetBalance(ctx, wh, pr)
	require.NoError(t, err)
	assert.Equal(t, qty(10), balance.Quantity)
}

func TestCheckAvailability(t *testing.T) {
	ctx := context.Background()
	svc := stock.NewService(domaintest.NewStockRepo())

	wh, pr := id.New(), id.New()
	require.NoError(t, svc.Record(ctx, []entity.StockMovement{
		movement(entity.DocTypeIncome, id.New(), entity.RecordTypeReceipt, wh, pr, qty(5)),
	}))

	assert.NoError(t, svc.CheckAvailability(ctx, wh, pr, qty(5)))

	err := svc.CheckAvailability(ctx, wh, pr, qty(5.0001))
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	// A pair never touched reads as zero stock, not an error.
	err = svc.CheckAvailability(ctx, id.New(), id.New(), qty(1))
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))
}

func TestRebuildMatchesIncrementalBalances(t *testing.T) {
	ctx := context.Background()
	repo := domaintest.NewStockRepo()
	svc := stock.NewService(repo)

	wh := id.New()
	prA, prB := id.New(), id.New()

	require.NoError(t, svc.Record(ctx, []entity.StockMovement{
		movement(entity.DocTypeIncome, id.New(), entity.RecordTypeReceipt, wh, prA, qty(100)),
		movement(entity.DocTypeIncome, id.New(), entity.RecordTypeReceipt, wh, prB, qty(50)),
	}))
	require.NoError(t, svc.Record(ctx, []entity.StockMovement{
		movement(entity.DocTypeSale, id.New(), entity.RecordTypeExpense, wh, prA, qty(25)),
	}))

	before, err := svc.ListBalances(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.Rebuild(ctx))

	after, err := svc.ListBalances(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, before, after)
}
