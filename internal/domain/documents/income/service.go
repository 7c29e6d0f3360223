package income

import (
	"context"
	"fmt"

	"tradebook/internal/core/apperror"
	"tradebook/internal/core/entity"
	"tradebook/internal/core/id"
	"tradebook/internal/core/tx"
	"tradebook/internal/domain"
	"tradebook/internal/domain/catalogs/account"
	"tradebook/internal/domain/catalogs/product"
	"tradebook/internal/domain/catalogs/warehouse"
	"tradebook/internal/domain/registers/cash"
	"tradebook/internal/domain/registers/stock"
	"tradebook/pkg/logger"
)

// Service owns the income lifecycle. Creating an income never fails on
// stock, but reversing one can: when later sales have already consumed the
// incoming quantity, edit and delete fail with RollbackBlocked instead of
// driving the balance negative.
type Service struct {
	repo       Repository
	warehouses *warehouse.Service
	products   *product.Service
	accounts   *account.Service
	stockReg   *stock.Service
	cashReg    *cash.Service
	txManager  tx.Manager
	audit      domain.AuditLogger
}

// NewService creates a new income service.
func NewService(
	repo Repository,
	warehouses *warehouse.Service,
	products *product.Service,
	accounts *account.Service,
	stockReg *stock.Service,
	cashReg *cash.Service,
	txManager tx.Manager,
	audit domain.AuditLogger,
) *Service {
	return &Service{
		repo:       repo,
		warehouses: warehouses,
		products:   products,
		accounts:   accounts,
		stockReg:   stockReg,
		cashReg:    cashReg,
		txManager:  txManager,
		audit:      audit,
	}
}

// Create records a new income: a stock receipt and, when requested, the
// matching cash expense.
func (s *Service) Create(ctx context.Context, f Fields) (*Income, error) {
	if err := f.Validate(ctx); err != nil {
		return nil, err
	}

	var doc *Income
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		doc, err = s.create(ctx, f)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "income created", "id", doc.ID, "total", doc.Total, "expense_recorded", doc.RecordExpense)
	return doc, nil
}

// create runs inside an open transaction.
func (s *Service) create(ctx context.Context, f Fields) (*Income, error) {
	wh, err := s.warehouses.GetOrCreate(ctx, f.Warehouse)
	if err != nil {
		return nil, fmt.Errorf("resolve warehouse: %w", err)
	}
	pr, err := s.products.GetOrCreate(ctx, f.Product)
	if err != nil {
		return nil, fmt.Errorf("resolve product: %w", err)
	}

	doc := New(f, wh.ID, pr.ID)

	if f.RecordExpense {
		acc, err := s.accounts.GetOrCreate(ctx, f.Account, account.Type(f.AccountType))
		if err != nil {
			return nil, fmt.Errorf("resolve account: %w", err)
		}
		doc.AccountID = &acc.ID
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}

	if err := s.stockReg.Record(ctx, []entity.StockMovement{doc.StockMovement()}); err != nil {
		return nil, err
	}

	if doc.RecordExpense {
		if err := s.cashReg.Record(ctx, []entity.CashMovement{doc.CashMovement("purchase")}); err != nil {
			return nil, err
		}
	}

	return doc, s.audit.Log(ctx, "income", doc.ID, domain.AuditActionCreate, doc)
}

// Edit replaces an income with a new field set inside one transaction.
// The old receipt must still be coverable by the current balance, exactly
// as for Delete; the replacement is then created on the post-rollback
// balance.
func (s *Service) Edit(ctx context.Context, docID id.ID, f Fields) (*Income, error) {
	if err := f.Validate(ctx); err != nil {
		return nil, err
	}

	var doc *Income
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		old, err := s.repo.GetByIDForUpdate(ctx, docID)
		if err != nil {
			return err
		}

		if err := s.rollback(ctx, old); err != nil {
			return err
		}

		doc, err = s.create(ctx, f)
		if err != nil {
			return err
		}

		return s.audit.Log(ctx, "income", old.ID, domain.AuditActionUpdate, doc)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "income edited", "old_id", docID, "id", doc.ID)
	return doc, nil
}

// Delete rolls an income back. Fails with RollbackBlocked when the
// remaining balance no longer covers the original receipt.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		doc, err := s.repo.GetByIDForUpdate(ctx, docID)
		if err != nil {
			return err
		}

		if err := s.rollback(ctx, doc); err != nil {
			return err
		}

		return s.audit.Log(ctx, "income", doc.ID, domain.AuditActionDelete, doc)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "income deleted", "id", docID)
	return nil
}

// rollback removes the document row and its movements. The balance row is
// locked before the check, so the decision cannot race a concurrent sale.
// Runs inside an open transaction.
func (s *Service) rollback(ctx context.Context, doc *Income) error {
	available, err := s.stockReg.AvailableForUpdate(ctx, doc.WarehouseID, doc.ProductID)
	if err != nil {
		return err
	}
	if available < doc.Quantity {
		return apperror.NewRollbackBlocked(
			doc.ProductID.String(),
			doc.Quantity.Float64(),
			available.Float64(),
		)
	}

	if err := s.stockReg.Reverse(ctx, entity.DocTypeIncome, doc.ID); err != nil {
		return err
	}
	if err := s.cashReg.Reverse(ctx, entity.DocTypeIncome, doc.ID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, doc.ID); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// GetByID retrieves an income.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Income, error) {
	return s.repo.GetByID(ctx, docID)
}

// List retrieves incomes, most recent first.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Income], error) {
	return s.repo.List(ctx, filter)
}
