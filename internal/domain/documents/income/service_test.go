package income_test

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
	"tradebook/internal/domain/domaintest"
	"tradebook/internal/domain/documents/income"
	"tradebook/internal/domain/documents/sale"
)

func qty(v float64) types.Quantity { return types.NewQuantityFromFloat64(v) }

func fields(q float64, price string, recordExpense bool) income.Fields {
	f := income.Fields{
		Date:         time.Now().UTC(),
		SupplierName: "Base Trade",
		Warehouse:    "Main",
		Product:      "Sugar",
		Quantity:     qty(q),
		PricePerUnit: types.MustMoney(price),
	}
	if recordExpense {
		f.RecordExpense = true
		f.Account = "Till"
		f.AccountType = string(account.TypeCash)
	}
	return f
}

func saleFields(q float64) sale.Fields {
	return sale.Fields{
		Date:         time.Now().UTC(),
		Warehouse:    "Main",
		Product:      "Sugar",
		Quantity:     qty(q),
		PricePerUnit: types.MustMoney("50.00"),
		IsPaid:       true,
		Account:      "Till",
		AccountType:  string(account.TypeCash),
	}
}

func TestCreateIncome(t *testing.T) {
	ctx := context.Background()
	env := domaintest.NewEnv()

	doc, err := env.Incomes.Create(ctx, fields(100, "25.00", false))
	require.NoError(t, err)

	assert.True(t, doc.Total.Equal(types.MustMoney("2500.00")), "got %s", doc.Total)
	assert.Equal(t, qty(100), env.StockQuantity(t, "Main", "Sugar"))

	// Expense not recorded: stock only, no money movement.
	assert.Equal(t, 0, env.CashRepo.MovementCount())
}

func TestCreateIncomeWithExpense(t *testing.T) {
	ctx := context.Background()
	env := domaintest.NewEnv()

	doc, err := env.Incomes.Create(ctx, fields(100, "25.00", true))
	require.NoError(t, err)
	require.NotNil(t, doc.AccountID)

	// The purchase was paid out of the account.
	assert.True(t, env.CashAmount(t, "Till").Equal(types.MustMoney("-2500.00")),
		"got %s", env.CashAmount(t, "Till"))
	assert.Equal(t, 1, env.CashRepo.MovementCount())
}

func TestCreateIncomeWithExpenseZeroPrice(t *testing.T) {
	// Free samples arrive at price zero; recording the expense still works.
	ctx := context.Background()
	env := domaintest.NewEnv()

	doc, err := env.Incomes.Create(ctx, fields(10, "0.00", true))
	require.NoError(t, err)

	assert.True(t, doc.Total.IsZero())
	assert.Equal(t, qty(10), env.StockQuantity(t, "Main", "Sugar"))
	assert.True(t, env.CashAmount(t, "Till").IsZero())
	assert.Equal(t, 1, env.CashRepo.MovementCount())
}

func TestCreateIncomeValidation(t *testing.T) {
	ctx := context.Background()
	env := domaintest.NewEnv()

	_, err := env.Incomes.Create(ctx, fields(0, "25.00", false))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))

	f := fields(10, "25.00", true)
	f.Account = ""
	_, err = env.Incomes.Create(ctx, f)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestDeleteIncome(t *testing.T) {
	ctx := context.Background()
	env := domaintest.NewEnv()

	doc, err := env.Incomes.Create(ctx, fields(100, "25.00", true))
	require.NoError(t, err)

	require.NoError(t, env.Incomes.Delete(ctx, doc.ID))

	_, err = env.Incomes.GetByID(ctx, doc.ID)
	assert.True(t, apperror.IsNotFound(err))
	assert.True(t, env.StockQuantity(t, "Main", "Sugar").IsZero())
	assert.True(t, env.CashAmount(t, "Till").IsZero())
	assert.Equal(t, 0, env.StockRepo.MovementCount())
	assert.Equal(t, 0, env.CashRepo.MovementCount())
}

func TestDeleteIncomeRollbackBlocked(t *testing.T) {
	ctx := context.Background()
	env := domaintest.NewEnv()

	doc, err := env.Incomes.Create(ctx, fields(100, "25.00", false))
	require.NoError(t, err)

	// A later sale consumed part of the incoming stock; reversing the
	// receipt would drive the balance negative.
	_, err = env.Sales.Create(ctx, saleFields(60))
	require.NoError(t, err)

	err = env.Incomes.Delete(ctx, doc.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsRollbackBlocked(err))

	// The guard runs before any write: the income survives intact.
	stored, err := env.Incomes.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, stored.ID)
	assert.Equal(t, qty(40), env.StockQuantity(t, "Main", "Sugar"))
}

func TestDeleteIncomeAfterSaleRemoved(t *testing.T) {
	ctx := context.Background()
	env := domaintest.NewEnv()

	doc, err := env.Incomes.Create(ctx, fields(100, "25.00", false))
	require.NoError(t, err)

	sold, err := env.Sales.Create(ctx, saleFields(60))
	require.NoError(t, err)

	// Once the consuming sale is gone the receipt can be reversed again.
	require.NoError(t, env.Sales.Delete(ctx, sold.ID))
	require.NoError(t, env.Incomes.Delete(ctx, doc.ID))

	assert.True(t, env.StockQuantity(t, "Main", "Sugar").IsZero())
}

func TestEditIncome(t *testing.T) {
	ctx := context.Background()
	env := domaintest.NewEnv()

	old, err := env.Incomes.Create(ctx, fields(100, "25.00", true))
	require.NoError(t, err)

	edited, err := env.Incomes.Edit(ctx, old.ID, fields(150, "20.00", true))
	require.NoError(t, err)

	assert.NotEqual(t, old.ID, edited.ID)

	_, err = env.Incomes.GetByID(ctx, old.ID)
	assert.True(t, apperror.IsNotFound(err))

	assert.Equal(t, qty(150), env.StockQuantity(t, "Main", "Sugar"))
	assert.True(t, env.CashAmount(t, "Till").Equal(types.MustMoney("-3000.00")),
		"got %s", env.CashAmount(t, "Till"))
}

func TestEditIncomeRollbackBlocked(t *testing.T) {
	ctx := context.Background()
	env := domaintest.NewEnv()

	doc, err := env.Incomes.Create(ctx, fields(100, "25.00", false))
	require.NoError(t, err)

	_, err = env.Sales.Create(ctx, saleFields(60))
	require.NoError(t, err)

	// Shrinking the receipt below the consumed quantity is the same
	// overdraw as deleting it.
	_, err = env.Incomes.Edit(ctx, doc.ID, fields(50, "25.00", false))
	require.Error(t, err)
	assert.True(t, apperror.IsRollbackBlocked(err))
}

func TestDeleteMissingIncome(t *testing.T) {
	ctx := context.Background()
	env := domaintest.NewEnv()

	err := env.Incomes.Delete(ctx, id.New())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
