package domaintest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tradebook/internal/core/types"
	"tradebook/internal/domain"
	"tradebook/internal/domain/catalogs/account"
	"tradebook/internal/domain/catalogs/customer"
	"tradebook/internal/domain/catalogs/product"
	"tradebook/internal/domain/catalogs/warehouse"
	"tradebook/internal/domain/debtors"
	"tradebook/internal/domain/documents/income"
	"tradebook/internal/domain/documents/sale"
	"tradebook/internal/domain/registers/cash"
	"tradebook/internal/domain/registers/stock"
)

// Env wires the full document lifecycle on top of in-memory stores.
type Env struct {
	WarehouseRepo *CatalogRepo[*warehouse.Warehouse]
	ProductRepo   *CatalogRepo[*product.Product]
	AccountRepo   *AccountRepo
	CustomerRepo  *CustomerRepo
	StockRepo     *StockRepo
	CashRepo      *CashRepo
	SaleRepo      *SaleRepo
	IncomeRepo    *IncomeRepo
	DebtorRepo    *DebtorRepo

	Warehouses *warehouse.Service
	Products   *product.Service
	Accounts   *account.Service
	Customers  *customer.Service
	StockReg   *stock.Service
	CashReg    *cash.Service

	Sales   *sale.Service
	Incomes *income.Service
	Debtors *debtors.Service
}

// NewEnv builds the service graph the way the server entry point does,
// with memory-backed repositories and a pass-through transaction manager.
func NewEnv() *Env {
	e := &Env{
		WarehouseRepo: NewCatalogRepo[*warehouse.Warehouse]("warehouse"),
		ProductRepo:   NewCatalogRepo[*product.Product]("product"),
		AccountRepo:   NewAccountRepo(),
		CustomerRepo:  NewCustomerRepo(),
		StockRepo:     NewStockRepo(),
		CashRepo:      NewCashRepo(),
		SaleRepo:      NewSaleRepo(),
		IncomeRepo:    NewIncomeRepo(),
		DebtorRepo:    NewDebtorRepo(),
	}

	txm := TxManager{}
	audit := domain.NopAuditLogger{}

	e.Warehouses = warehouse.NewService(e.WarehouseRepo)
	e.Products = product.NewService(e.ProductRepo)
	e.Accounts = account.NewService(e.AccountRepo)
	e.Customers = customer.NewService(e.CustomerRepo)
	e.StockReg = stock.NewService(e.StockRepo)
	e.CashReg = cash.NewService(e.CashRepo)

	e.Debtors = debtors.NewService(e.DebtorRepo, e.Accounts, e.CashReg, e.SaleRepo, txm, audit)
	e.Sales = sale.NewService(e.SaleRepo, e.Warehouses, e.Products, e.Customers, e.Accounts, e.StockReg, e.CashReg, e.Debtors, txm, audit)
	e.Incomes = income.NewService(e.IncomeRepo, e.Warehouses, e.Products, e.Accounts, e.StockReg, e.CashReg, txm, audit)

	return e
}

// SeedStock records an income of the given quantity so later sales have
// something to draw from. The purchase expense is not recorded.
func (e *Env) SeedStock(t *testing.T, warehouseName, productName string, quantity types.Quantity) *income.Income {
	t.Helper()

	doc, err := e.Incomes.Create(context.Background(), income.Fields{
		Date:         time.Now().UTC(),
		SupplierName: "seed supplier",
		Warehouse:    warehouseName,
		Product:      productName,
		Quantity:     quantity,
		PricePerUnit: types.MustMoney("10.00"),
	})
	require.NoError(t, err)
	return doc
}

// StockQuantity reads the current balance for a (warehouse, product) pair
// resolved by name. Unknown names read as zero.
func (e *Env) StockQuantity(t *testing.T, warehouseName, productName string) types.Quantity {
	t.Helper()
	ctx := context.Background()

	wh, err := e.WarehouseRepo.GetByName(ctx, warehouseName)
	if err != nil {
		return 0
	}
	pr, err := e.ProductRepo.GetByName(ctx, productName)
	if err != nil {
		return 0
	}

	balance, err := e.StockRepo.GetBalance(ctx, wh.ID, pr.ID)
	require.NoError(t, err)
	return balance.Quantity
}

// CashAmount reads the current balance of an account resolved by name.
// Unknown names read as zero.
func (e *Env) CashAmount(t *testing.T, accountName string) types.Money {
	t.Helper()
	ctx := context.Background()

	acc, err := e.AccountRepo.GetByName(ctx, accountName)
	if err != nil {
		return types.ZeroMoney()
	}

	balance, err := e.CashRepo.GetBalance(ctx, acc.ID)
	require.NoError(t, err)
	return balance.Amount
}
