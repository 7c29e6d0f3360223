package debtors_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradebook/internal/core/apperror"
	"tradebook/internal/core/id"
	"tradebook/internal/core/types"
	"tradebook/internal/domain/catalogs/account"
	"tradebook/internal/domain/debtors"
	"tradebook/internal/domain/domaintest"
	"tradebook/internal/domain/documents/sale"
)

func qty(v float64) types.Quantity { return types.NewQuantityFromFloat64(v) }

// openDebt seeds stock, records an unpaid sale and returns its open debtor.
func openDebt(t *testing.T, env *domaintest.Env) *debtors.Debtor {
	t.Helper()
	ctx := context.Background()

	env.SeedStock(t, "Main", "Sugar", qty(100))

	_, err := env.Sales.Create(ctx, sale.Fields{
		Date:          time.Now().UTC(),
		CustomerName:  "Ivan",
		CustomerPhone: "+79001234567",
		Warehouse:     "Main",
		Product:       "Sugar",
		Quantity:      qty(30),
		PricePerUnit:  types.MustMoney("40.00"),
	})
	require.NoError(t, err)

	open, err := env.Debtors.ListOpen(ctx)
	require.NoError(t, err)
	require.Len(t, open, 1)
	return open[0]
}

func TestSettleDebt(t *testing.T) {
	ctx := context.Background()
	env := domaintest.NewEnv()
	d := openDebt(t, env)

	settled, err := env.Debtors.Settle(ctx, d.ID, "Till", account.TypeCash)
	require.NoError(t, err)
	assert.True(t, settled.IsPaid)

	// The money arrives on the named account, created on first use.
	assert.True(t, env.CashAmount(t, "Till").Equal(types.MustMoney("1200.00")),
		"got %s", env.CashAmount(t, "Till"))

	// The originating sale flips to paid with the settlement account.
	s, err := env.SaleRepo.GetByID(ctx, d.SaleID)
	require.NoError(t, err)
	assert.True(t, s.IsPaid)
	require.NotNil(t, s.AccountID)

	acc, err := env.AccountRepo.GetByName(ctx, "Till")
	require.NoError(t, err)
	assert.Equal(t, acc.ID, *s.AccountID)
	assert.Equal(t, account.TypeCash, acc.Type)

	// Nothing remains open.
	open, err := env.Debtors.ListOpen(ctx)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestSettleIsIdempotent(t *testing.T) {
	ctx := context.Background()
	env := domaintest.NewEnv()
	d := openDebt(t, env)

	_, err := env.Debtors.Settle(ctx, d.ID, "Till", account.TypeCash)
	require.NoError(t, err)

	// Second settlement is a reported no-op: no second cash movement,
	// regardless of the account named this time.
	_, err = env.Debtors.Settle(ctx, d.ID, "Other till", account.TypeCash)
	require.Error(t, err)
	assert.True(t, apperror.IsAlreadySettled(err))

	assert.Equal(t, 1, env.CashRepo.MovementCount())
	assert.True(t, env.CashAmount(t, "Till").Equal(types.MustMoney("1200.00")))
	assert.True(t, env.CashAmount(t, "Other till").IsZero())
}

func TestSettleZeroTotalDebt(t *testing.T) {
	ctx := context.Background()
	env := domaintest.NewEnv()

	env.SeedStock(t, "Main", "Sugar", qty(100))
	_, err := env.Sales.Create(ctx, sale.Fields{
		Date:         time.Now().UTC(),
		CustomerName: "Ivan",
		Warehouse:    "Main",
		Product:      "Sugar",
		Quantity:     qty(10),
		PricePerUnit: types.ZeroMoney(),
	})
	require.NoError(t, err)

	open, err := env.Debtors.ListOpen(ctx)
	require.NoError(t, err)
	require.Len(t, open, 1)
	require.True(t, open[0].Total.IsZero())

	// A zero-total debt closes like any other.
	settled, err := env.Debtors.Settle(ctx, open[0].ID, "Till", account.TypeCash)
	require.NoError(t, err)
	assert.True(t, settled.IsPaid)
	assert.True(t, env.CashAmount(t, "Till").IsZero())
	assert.Equal(t, 1, env.CashRepo.MovementCount())
}

func TestSettleUnknownDebtor(t *testing.T) {
	ctx := context.Background()
	env := domaintest.NewEnv()

	_, err := env.Debtors.Settle(ctx, id.New(), "Till", account.TypeCash)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestOpenRequiresSaleReference(t *testing.T) {
	ctx := context.Background()
	env := domaintest.NewEnv()

	err := env.Debtors.Open(ctx, &debtors.Debtor{})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestOneDebtorPerSale(t *testing.T) {
	ctx := context.Background()
	env := domaintest.NewEnv()
	d := openDebt(t, env)

	dup := &debtors.Debtor{SaleID: d.SaleID, DocDate: d.DocDate, Total: d.Total}
	dup.ID = id.New()

	err := env.Debtors.Open(ctx, dup)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeDuplicate))
}

func TestListSplitsOpenAndAll(t *testing.T) {
	ctx := context.Background()
	env := domaintest.NewEnv()
	d := openDebt(t, env)

	_, err := env.Debtors.Settle(ctx, d.ID, "Till", account.TypeCash)
	require.NoError(t, err)

	open, err := env.Debtors.ListOpen(ctx)
	require.NoError(t, err)
	assert.Empty(t, open)

	all, err := env.Debtors.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].IsPaid)
}
