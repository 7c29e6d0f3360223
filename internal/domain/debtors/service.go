package debtors

import (
	"context"
	"fmt"

	"tradebook/internal/core/apperror"
	"tradebook/internal/core/entity"
	"tradebook/internal/core/id"
	"tradebook/internal/core/tx"
	"tradebook/internal/domain"
	"tradebook/internal/domain/catalogs/account"
	"tradebook/internal/domain/registers/cash"
	"tradebook/pkg/logger"
)

// SaleSettler marks the originating sale paid when its debt is settled.
// Narrow interface to avoid a dependency on the sale package.
type SaleSettler interface {
	MarkPaid(ctx context.Context, saleID, accountID id.ID) error
}

// Service provides business operations for debtors.
type Service struct {
	repo      Repository
	accounts  *account.Service
	cashReg   *cash.Service
	sales     SaleSettler
	txManager tx.Manager
	audit     domain.AuditLogger
}

// NewService creates a new debtor service.
func NewService(
	repo Repository,
	accounts *account.Service,
	cashReg *cash.Service,
	sales SaleSettler,
	txManager tx.Manager,
	audit domain.AuditLogger,
) *Service {
	return &Service{
		repo:      repo,
		accounts:  accounts,
		cashReg:   cashReg,
		sales:     sales,
		txManager: txManager,
		audit:     audit,
	}
}

// Open records an open receivable for an unpaid sale. Runs inside the
// sale's transaction.
func (s *Service) Open(ctx context.Context, d *Debtor) error {
	if id.IsNil(d.SaleID) {
		return apperror.NewValidation("sale reference is required").
			WithDetail("field", "saleId")
	}
	d.IsPaid = false

	if err := s.repo.Create(ctx, d); err != nil {
		return fmt.Errorf("create debtor: %w", err)
	}

	logger.Info(ctx, "debtor opened", "id", d.ID, "sale_id", d.SaleID, "total", d.Total)
	return nil
}

// CloseBySale removes the debtor owned by a rolled-back sale, if any.
// Runs inside the sale's transaction.
func (s *Service) CloseBySale(ctx context.Context, saleID id.ID) error {
	return s.repo.DeleteBySale(ctx, saleID)
}

// Settle marks the debtor paid and records the cash inflow, atomically.
// Settling an already-paid debt is a no-op reported as AlreadySettled:
// exactly one cash movement ever exists per settled debt.
func (s *Service) Settle(ctx context.Context, debtorID id.ID, accountName string, accType account.Type) (*Debtor, error) {
	var settled *Debtor

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		d, err := s.repo.GetByIDForUpdate(ctx, debtorID)
		if err != nil {
			return err
		}

		if d.IsPaid {
			return apperror.NewAlreadySettled(d.ID)
		}

		acc, err := s.accounts.GetOrCreate(ctx, accountName, accType)
		if err != nil {
			return fmt.Errorf("resolve account: %w", err)
		}

		if err := s.repo.MarkPaid(ctx, d.ID); err != nil {
			return fmt.Errorf("mark debtor paid: %w", err)
		}

		if err := s.sales.MarkPaid(ctx, d.SaleID, acc.ID); err != nil {
			return fmt.Errorf("mark sale paid: %w", err)
		}

		movement := entity.NewCashMovement(
			entity.DocTypeSale,
			d.SaleID,
			d.DocDate,
			entity.RecordTypeReceipt,
			acc.ID,
			d.Total,
			"debt settled",
		)
		if err := s.cashReg.Record(ctx, []entity.CashMovement{movement}); err != nil {
			return err
		}

		d.IsPaid = true
		d.Touch()
		settled = d

		return s.audit.Log(ctx, "debtor", d.ID, domain.AuditActionSettle, d)
	})

	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "debt settled", "id", settled.ID, "sale_id", settled.SaleID, "total", settled.Total)
	return settled, nil
}

// GetByID retrieves a debtor.
func (s *Service) GetByID(ctx context.Context, debtorID id.ID) (*Debtor, error) {
	return s.repo.GetByID(ctx, debtorID)
}

// ListOpen returns all open debtors.
func (s *Service) ListOpen(ctx context.Context) ([]*Debtor, error) {
	return s.repo.ListOpen(ctx)
}

// List returns all debtors.
func (s *Service) List(ctx context.Context) ([]*Debtor, error) {
	return s.repo.List(ctx)
}
