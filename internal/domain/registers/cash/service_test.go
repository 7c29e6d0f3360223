package cash_test

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
	"tradebook/internal/domain/registers/cash"
)

func movement(docID id.ID, rt entity.RecordType, acc id.ID, amount types.Money) entity.CashMovement {
	return entity.NewCashMovement(entity.DocTypeSale, docID, time.Now().UTC(), rt, acc, amount, "")
}

func TestRecordUpdatesBalance(t *testing.T) {
	ctx := context.Background()
	svc := cash.NewService(domaintest.NewCashRepo())

	acc := id.New()
	require.NoError(t, svc.Record(ctx, []entity.CashMovement{
		movement(id.New(), entity.RecordTypeReceipt, acc, types.MustMoney("1500.00")),
	}))
	require.NoError(t, svc.Record(ctx, []entity.CashMovement{
		movement(id.New(), entity.RecordTypeExpense, acc, types.MustMoney("400.50")),
	}))

	balance, err := svc.GetBalance(ctx, acc)
	require.NoError(t, err)
	assert.True(t, balance.Amount.Equal(types.MustMoney("1099.50")), "got %s", balance.Amount)
}

func TestBalanceMayGoNegative(t *testing.T) {
	// Expenses recorded ahead of income are legitimate.
	ctx := context.Background()
	svc := cash.NewService(domaintest.NewCashRepo())

	acc := id.New()
	require.NoError(t, svc.Record(ctx, []entity.CashMovement{
		movement(id.New(), entity.RecordTypeExpense, acc, types.MustMoney("200.00")),
	}))

	balance, err := svc.GetBalance(ctx, acc)
	require.NoError(t, err)
	assert.True(t, balance.Amount.Equal(types.MustMoney("-200.00")))
}

func TestRecordRejectsNegativeAmount(t *testing.T) {
	ctx := context.Background()
	svc := cash.NewService(domaintest.NewCashRepo())

	err := svc.Record(ctx, []entity.CashMovement{
		movement(id.New(), entity.RecordTypeReceipt, id.New(), types.MustMoney("-1.00")),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestRecordAcceptsZeroAmount(t *testing.T) {
	// A zero-priced document still settles with a zero movement.
	ctx := context.Background()
	repo := domaintest.NewCashRepo()
	svc := cash.NewService(repo)

	acc := id.New()
	require.NoError(t, svc.Record(ctx, []entity.CashMovement{
		movement(id.New(), entity.RecordTypeReceipt, acc, types.ZeroMoney()),
	}))

	balance, err := svc.GetBalance(ctx, acc)
	require.NoError(t, err)
	assert.True(t, balance.Amount.IsZero())
	assert.Equal(t, 1, repo.MovementCount())
}

func TestReverseRemovesDocMovements(t *testing.T) {
	ctx := context.Background()
	repo := domaintest.NewCashRepo()
	svc := cash.NewService(repo)

	acc := id.New()
	docID := id.New()

	require.NoError(t, svc.Record(ctx, []entity.CashMovement{
		movement(docID, entity.RecordTypeReceipt, acc, types.MustMoney("1000.00")),
	}))
	require.NoError(t, svc.Record(ctx, []entity.CashMovement{
		movement(id.New(), entity.RecordTypeReceipt, acc, types.MustMoney("300.00")),
	}))

	require.NoError(t, svc.Reverse(ctx, entity.DocTypeSale, docID))

	balance, err := svc.GetBalance(ctx, acc)
	require.NoError(t, err)
	assert.True(t, balance.Amount.Equal(types.MustMoney("300.00")), "got %s", balance.Amount)
	assert.Equal(t, 1, repo.MovementCount())
}

func TestGetBalanceUnknownAccountIsZero(t *testing.T) {
	ctx := context.Background()
	svc := cash.NewService(domaintest.NewCashRepo())

	balance, err := svc.GetBalance(ctx, id.New())
	require.NoError(t, err)
	assert.True(t, balance.Amount.IsZero())
}
