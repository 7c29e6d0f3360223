// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"tradebook/internal/domain/catalogs/account"
	"tradebook/internal/domain/catalogs/customer"
	"tradebook/internal/domain/catalogs/product"
	"tradebook/internal/domain/catalogs/warehouse"
	"tradebook/internal/domain/debtors"
	"tradebook/internal/domain/documents/income"
	"tradebook/internal/domain/documents/sale"
	"tradebook/internal/domain/registers/cash"
	"tradebook/internal/domain/registers/stock"
	"tradebook/internal/infrastructure/http/v1/handlers"
	"tradebook/internal/infrastructure/http/v1/middleware"
	"tradebook/pkg/logger"
)

// RouterConfig holds everything the router wires together.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks)
	Pool *pgxpool.Pool

	// Logger for request logging
	Logger *logger.Logger

	// Development switches Gin to debug mode
	Development bool

	// ListDefaultSize is the page size when a list request names none
	ListDefaultSize int

	// Audit trail access (read side) and its read-only transaction runner
	Audit     handlers.AuditHistory
	TxManager handlers.ReadOnlyRunner

	// Domain services
	Sales      *sale.Service
	Incomes    *income.Service
	Debtors    *debtors.Service
	StockReg   *stock.Service
	CashReg    *cash.Service
	Warehouses *warehouse.Service
	Products   *product.Service
	Accounts   *account.Service
	Customers  *customer.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Development {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	base := handlers.NewBaseHandler(cfg.ListDefaultSize)

	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	healthHandler.RegisterRoutes(router.Group("/health"))

	api := router.Group("/api/v1")
	{
		saleHandler := handlers.NewSaleHandler(base, cfg.Sales)
		saleHandler.RegisterRoutes(api.Group("/sales"))

		incomeHandler := handlers.NewIncomeHandler(base, cfg.Incomes)
		incomeHandler.RegisterRoutes(api.Group("/incomes"))

		debtorHandler := handlers.NewDebtorHandler(base, cfg.Debtors)
		debtorHandler.RegisterRoutes(api.Group("/debtors"))

		balanceHandler := handlers.NewBalanceHandler(base, cfg.StockReg, cfg.CashReg)
		balanceHandler.RegisterRoutes(api.Group("/balances"))

		catalogHandler := handlers.NewCatalogHandler(base, cfg.Warehouses, cfg.Products, cfg.Accounts, cfg.Customers)
		catalogHandler.RegisterRoutes(api.Group("/catalogs"))

		auditHandler := handlers.NewAuditHandler(base, cfg.Audit, cfg.TxManager)
		auditHandler.RegisterRoutes(api.Group("/audit"))
	}

	return router
}
