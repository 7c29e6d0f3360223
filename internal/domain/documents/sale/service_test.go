package sale_test

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
	"tradebook/internal/domain/documents/sale"
)

func qty(v float64) types.Quantity { return types.NewQuantityFromFloat64(v) }

func fields(q float64, price string, paid bool) sale.Fields {
	f := sale.Fields{
		Date:          time.Now().UTC(),
		CustomerName:  "Ivan",
		CustomerPhone: "+79001234567",
		Warehouse:     "Main",
		Product:       "Sugar",
		Quantity:      qty(q),
		PricePerUnit:  types.MustMoney(price),
		IsPaid:        paid,
	}
	if paid {
		f.Account = "Till"
		f.AccountType = string(account.TypeCash)
	}
	return f
}

func TestCreatePaidSale(t *testing.T) {
	ctx := context.Background()
	env := domaintest.NewEnv()
	env.SeedStock(t, "Main", "Sugar", qty(100))

	doc, err := env.Sales.Create(ctx, fields(40, "50.00", true))
	require.NoError(t, err)

	assert.True(t, doc.IsPaid)
	require.NotNil(t, doc.AccountID)
	assert.True(t, doc.Total.Equal(types.MustMoney("2000.00")), "got %s", doc.Total)

	// Stock down by the sold quantity, money up by the total.
	assert.Equal(t, qty(60), env.StockQuantity(t, "Main", "Sugar"))
	assert.True(t, env.CashAmount(t, "Till").Equal(types.MustMoney("2000.00")))

	// A paid sale settles immediately: no receivable.
	assert.Equal(t, 0, env.DebtorRepo.Count())

	stored, err := env.Sales.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, stored.ID)
}

func TestCreateUnpaidSaleOpensDebtor(t *testing.T) {
	ctx := context.Background()
	env := domaintest.NewEnv()
	env.SeedStock(t, "Main", "Sugar", qty(100))

	doc, err := env.Sales.Create(ctx, fields(25, "40.00", false))
	require.NoError(t, err)
	assert.False(t, doc.IsPaid)
	assert.Nil(t, doc.AccountID)

	open, err := env.Debtors.ListOpen(ctx)
	require.NoError(t, err)
	require.Len(t, open, 1)

	d := open[0]
	assert.Equal(t, doc.ID, d.SaleID)
	assert.Equal(t, "Ivan", d.CustomerName)
	assert.Equal(t, "Sugar", d.Description)
	assert.True(t, d.Total.Equal(types.MustMoney("1000.00")), "got %s", d.Total)
	assert.False(t, d.IsPaid)

	// No money moved yet.
	assert.Equal(t, 0, env.CashRepo.MovementCount())
	assert.Equal(t, qty(75), env.StockQuantity(t, "Main", "Sugar"))
}

func TestCreateSaleInsufficientStock(t *testing.T) {
	ctx := context.Background()
	env := domaintest.NewEnv()
	env.SeedStock(t, "Main", "Sugar", qty(10))

	_, err := env.Sales.Create(ctx, fields(10.5, "50.00", true))
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	// The check runs before any write.
	assert.Equal(t, 0, env.SaleRepo.Count())
	assert.Equal(t, 0, env.DebtorRepo.Count())
	assert.Equal(t, 0, env.CashRepo.MovementCount())
	assert.Equal(t, 1, env.StockRepo.MovementCount())
	assert.Equal(t, qty(10), env.StockQuantity(t, "Main", "Sugar"))
}

func TestCreateSaleExactQuantity(t *testing.T) {
	ctx := context.Background()
	env := domaintest.NewEnv()
	env.SeedStock(t, "Main", "Sugar", qty(10))

	// Selling everything on hand is allowed; the balance ends at zero.
	_, err := env.Sales.Create(ctx, fields(10, "50.00", true))
	require.NoError(t, err)
	assert.True(t, env.StockQuantity(t, "Main", "Sugar").IsZero())
}

func TestCreatePaidSaleZeroPrice(t *testing.T) {
	// Giveaways are priced at zero; the sale still settles normally.
	ctx := context.Background()
	env := domaintest.NewEnv()
	env.SeedStock(t, "Main", "Sugar", qty(100))

	doc, err := env.Sales.Create(ctx, fields(10, "0.00", true))
	require.NoError(t, err)

	assert.True(t, doc.Total.IsZero())
	assert.Equal(t, qty(90), env.StockQuantity(t, "Main", "Sugar"))
	assert.True(t, env.CashAmount(t, "Till").IsZero())
	assert.Equal(t, 1, env.CashRepo.MovementCount())
	assert.Equal(t, 0, env.DebtorRepo.Count())
}

func TestCreateSaleValidation(t *testing.T) {
	ctx := context.Background()
	env := domaintest.NewEnv()

	_, err := env.Sales.Create(ctx, fields(0, "50.00", true))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))

	f := fields(5, "50.00", true)
	f.Account = ""
	_, err = env.Sales.Create(ctx, f)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestEditSale(t *testing.T) {
	ctx := context.Background()
	env := domaintest.NewEnv()
	env.SeedStock(t, "Main", "Sugar", qty(100))

	old, err := env.Sales.Create(ctx, fields(40, "50.00", true))
	require.NoError(t, err)

	edited, err := env.Sales.Edit(ctx, old.ID, fields(70, "50.00", true))
	require.NoError(t, err)

	// Edit is rollback plus recreate: the replacement has its own id.
	assert.NotEqual(t, old.ID, edited.ID)

	_, err = env.Sales.GetByID(ctx, old.ID)
	assert.True(t, apperror.IsNotFound(err))

	assert.Equal(t, qty(30), env.StockQuantity(t, "Main", "Sugar"))
	assert.True(t, env.CashAmount(t, "Till").Equal(types.MustMoney("3500.00")))
}

func TestEditSaleOverdraw(t *testing.T) {
	ctx := context.Background()
	env := domaintest.NewEnv()
	env.SeedStock(t, "Main", "Sugar", qty(100))

	doc, err := env.Sales.Create(ctx, fields(80, "50.00", true))
	require.NoError(t, err)

	// After the rollback 100 units are free; 150 still does not fit.
	_, err = env.Sales.Edit(ctx, doc.ID, fields(150, "50.00", true))
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))
}

func TestDeleteUnpaidSale(t *testing.T) {
	ctx := context.Background()
	env := domaintest.NewEnv()
	env.SeedStock(t, "Main", "Sugar", qty(100))

	doc, err := env.Sales.Create(ctx, fields(30, "40.00", false))
	require.NoError(t, err)
	require.Equal(t, 1, env.DebtorRepo.Count())

	require.NoError(t, env.Sales.Delete(ctx, doc.ID))

	_, err = env.Sales.GetByID(ctx, doc.ID)
	assert.True(t, apperror.IsNotFound(err))
	assert.Equal(t, 0, env.DebtorRepo.Count())
	assert.Equal(t, qty(100), env.StockQuantity(t, "Main", "Sugar"))
}

func TestDeleteSettledSale(t *testing.T) {
	ctx := context.Background()
	env := domaintest.NewEnv()
	env.SeedStock(t, "Main", "Sugar", qty(100))

	doc, err := env.Sales.Create(ctx, fields(30, "40.00", false))
	require.NoError(t, err)

	open, err := env.Debtors.ListOpen(ctx)
	require.NoError(t, err)
	require.Len(t, open, 1)

	_, err = env.Debtors.Settle(ctx, open[0].ID, "Till", account.TypeCash)
	require.NoError(t, err)
	require.True(t, env.CashAmount(t, "Till").Equal(types.MustMoney("1200.00")))

	// Deleting the sale takes the settlement movement and the debtor with it.
	require.NoError(t, env.Sales.Delete(ctx, doc.ID))

	assert.True(t, env.CashAmount(t, "Till").IsZero())
	assert.Equal(t, 0, env.DebtorRepo.Count())
	assert.Equal(t, qty(100), env.StockQuantity(t, "Main", "Sugar"))
}

func TestEditSaleToIdenticalFields(t *testing.T) {
	ctx := context.Background()
	env := domaintest.NewEnv()
	env.SeedStock(t, "Main", "Sugar", qty(100))

	f := fields(40, "50.00", true)
	old, err := env.Sales.Create(ctx, f)
	require.NoError(t, err)

	stockBefore := env.StockQuantity(t, "Main", "Sugar")
	cashBefore := env.CashAmount(t, "Till")

	edited, err := env.Sales.Edit(ctx, old.ID, f)
	require.NoError(t, err)
	assert.NotEqual(t, old.ID, edited.ID)

	// Same field set in, same balances out.
	assert.Equal(t, stockBefore, env.StockQuantity(t, "Main", "Sugar"))
	assert.True(t, cashBefore.Equal(env.CashAmount(t, "Till")))
}

// TestLedgerScenario walks a full trading day: purchase, paid and unpaid
// sales, settlement, and the rollback rules between them.
func TestLedgerScenario(t *testing.T) {
	ctx := context.Background()
	env := domaintest.NewEnv()

	// Purchase 100 units.
	inc := env.SeedStock(t, "Main", "Sugar", qty(100))

	// Paid sale of 40 at 50.
	paid, err := env.Sales.Create(ctx, fields(40, "50.00", true))
	require.NoError(t, err)

	// Unpaid sale of 30 at 40 opens a debt.
	unpaidFields := fields(30, "40.00", false)
	_, err = env.Sales.Create(ctx, unpaidFields)
	require.NoError(t, err)

	assert.Equal(t, qty(30), env.StockQuantity(t, "Main", "Sugar"))
	assert.True(t, env.CashAmount(t, "Till").Equal(types.MustMoney("2000.00")))

	// A third sale of 31 does not fit.
	_, err = env.Sales.Create(ctx, fields(31, "50.00", true))
	assert.True(t, apperror.IsInsufficientStock(err))

	// The purchase cannot be reversed while its stock is sold.
	err = env.Incomes.Delete(ctx, inc.ID)
	assert.True(t, apperror.IsRollbackBlocked(err))

	// Settling the debt brings the money in, exactly once.
	open, err := env.Debtors.ListOpen(ctx)
	require.NoError(t, err)
	require.Len(t, open, 1)

	_, err = env.Debtors.Settle(ctx, open[0].ID, "Till", account.TypeCash)
	require.NoError(t, err)
	_, err = env.Debtors.Settle(ctx, open[0].ID, "Till", account.TypeCash)
	assert.True(t, apperror.IsAlreadySettled(err))

	assert.True(t, env.CashAmount(t, "Till").Equal(types.MustMoney("3200.00")),
		"got %s", env.CashAmount(t, "Till"))

	// Conservation: rebuilding from the log reproduces the running balances.
	require.NoError(t, env.StockReg.Rebuild(ctx))
	require.NoError(t, env.CashReg.Rebuild(ctx))
	assert.Equal(t, qty(30), env.StockQuantity(t, "Main", "Sugar"))
	assert.True(t, env.CashAmount(t, "Till").Equal(types.MustMoney("3200.00")))

	// Deleting the paid sale frees its quantity and takes its money back out.
	require.NoError(t, env.Sales.Delete(ctx, paid.ID))
	assert.Equal(t, qty(70), env.StockQuantity(t, "Main", "Sugar"))
	assert.True(t, env.CashAmount(t, "Till").Equal(types.MustMoney("1200.00")))
}

func TestDeleteMissingSale(t *testing.T) {
	ctx := context.Background()
	env := domaintest.NewEnv()

	err := env.Sales.Delete(ctx, id.New())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
