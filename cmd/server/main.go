// Package main is the entry point for the tradebook API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tradebook/internal/config"
	"tradebook/internal/domain/catalogs/account"
	"tradebook/internal/domain/catalogs/customer"
	"tradebook/internal/domain/catalogs/product"
	"tradebook/internal/domain/catalogs/warehouse"
	"tradebook/internal/domain/debtors"
	"tradebook/internal/domain/documents/income"
	"tradebook/internal/domain/documents/sale"
	"tradebook/internal/domain/registers/cash"
	"tradebook/internal/domain/registers/stock"
	v1 "tradebook/internal/infrastructure/http/v1"
	"tradebook/internal/infrastructure/storage/postgres"
	"tradebook/internal/infrastructure/storage/postgres/catalog_repo"
	"tradebook/internal/infrastructure/storage/postgres/debtor_repo"
	"tradebook/internal/infrastructure/storage/postgres/document_repo"
	"tradebook/internal/infrastructure/storage/postgres/register_repo"
	"tradebook/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := logger.WithLogger(context.Background(), log)
	log.Info("starting tradebook server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(cfg.DatabaseURL)
	poolCfg.MaxConns = cfg.DBMaxConns
	poolCfg.MinConns = cfg.DBMinConns
	poolCfg.MaxConnLifetime = cfg.DBConnLifetime
	poolCfg.MaxConnIdleTime = cfg.DBConnIdleTime
	poolCfg.HealthCheckPeriod = cfg.DBHealthPeriod

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	auditSvc, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}

	// --- Repositories ---
	warehouseRepo := catalog_repo.NewWarehouseRepo(txManager)
	productRepo := catalog_repo.NewProductRepo(txManager)
	accountRepo := catalog_repo.NewAccountRepo(txManager)
	customerRepo := catalog_repo.NewCustomerRepo(txManager)
	stockRepo := register_repo.NewStockRepo(txManager)
	cashRepo := register_repo.NewCashRepo(txManager)
	saleRepo := document_repo.NewSaleRepo(txManager)
	incomeRepo := document_repo.NewIncomeRepo(txManager)
	debtorRepo := debtor_repo.NewDebtorRepo(txManager)

	// --- Services ---
	warehouses := warehouse.NewService(warehouseRepo)
	products := product.NewService(productRepo)
	accounts := account.NewService(accountRepo)
	customers := customer.NewService(customerRepo)
	stockReg := stock.NewService(stockRepo)
	cashReg := cash.NewService(cashRepo)

	debtorSvc := debtors.NewService(debtorRepo, accounts, cashReg, saleRepo, txManager, auditSvc)
	sales := sale.NewService(saleRepo, warehouses, products, customers, accounts, stockReg, cashReg, debtorSvc, txManager, auditSvc)
	incomes := income.NewService(incomeRepo, warehouses, products, accounts, stockReg, cashReg, txManager, auditSvc)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:            pool.Pool,
		Logger:          log,
		Development:     cfg.IsDevelopment(),
		ListDefaultSize: cfg.ListDefaultSize,
		Audit:           auditSvc,
		TxManager:       txManager,
		Sales:           sales,
		Incomes:         incomes,
		Debtors:         debtorSvc,
		StockReg:        stockReg,
		CashReg:         cashReg,
		Warehouses:      warehouses,
		Products:        products,
		Accounts:        accounts,
		Customers:       customers,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
