package cash

import (
	"context"
	"fmt"

	"tradebook/internal/core/apperror"
	"tradebook/internal/core/entity"
	"tradebook/internal/core/id"
	"tradebook/pkg/logger"
)

// Service provides business operations for the cash register.
// Transactions are managed by the caller. There is no non-negativity
// check: an account balance may legitimately dip below zero when expenses
// are recorded ahead of income.
type Service struct {
	repo Repository
}

// NewService creates a new cash register service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record appends movements to the log and applies their deltas to the
// materialized balances in the same transaction.
func (s *Service) Record(ctx context.Context, movements []entity.CashMovement) error {
	if len(movements) == 0 {
		return nil
	}

	// Zero amounts are valid: a zero-priced document still settles.
	for i, m := range movements {
		if m.Amount.IsNegative() {
			return apperror.NewValidation(fmt.Sprintf("movement %d: amount must not be negative", i))
		}
		if id.IsNil(m.AccountID) {
			return apperror.NewValidation(fmt.Sprintf("movement %d: account_id is required", i))
		}
	}

	if err := s.repo.CreateMovements(ctx, movements); err != nil {
		return fmt.Errorf("create movements: %w", err)
	}

	for _, m := range movements {
		if err := s.repo.ApplyDelta(ctx, m.AccountID, m.SignedAmount()); err != nil {
			return fmt.Errorf("apply balance delta: %w", err)
		}
	}

	logger.Debug(ctx, "recorded cash movements",
		"count", len(movements),
		"doc_id", movements[0].DocID,
	)

	return nil
}

// Reverse removes a document's movements and backs their deltas out of the
// materialized balances.
func (s *Service) Reverse(ctx context.Context, docType entity.DocType, docID id.ID) error {
	movements, err := s.repo.GetMovementsByDoc(ctx, docType, docID)
	if err != nil {
		return fmt.Errorf("get movements: %w", err)
	}

	if err := s.repo.DeleteMovementsByDoc(ctx, docType, docID); err != nil {
		return fmt.Errorf("delete movements: %w", err)
	}

	for _, m := range movements {
		if err := s.repo.ApplyDelta(ctx, m.AccountID, m.SignedAmount().Neg()); err != nil {
			return fmt.Errorf("apply balance delta: %w", err)
		}
	}

	logger.Debug(ctx, "reversed cash movements",
		"doc_type", docType,
		"doc_id", docID,
		"count", len(movements),
	)

	return nil
}

// GetBalance returns the current balance of an account.
func (s *Service) GetBalance(ctx context.Context, accountID id.ID) (entity.CashBalance, error) {
	return s.repo.GetBalance(ctx, accountID)
}

// ListBalances returns all account balances.
func (s *Service) ListBalances(ctx context.Context) ([]entity.CashBalance, error) {
	return s.repo.ListBalances(ctx)
}

// Rebuild regenerates materialized balances from the movement log.
func (s *Service) Rebuild(ctx context.Context) error {
	if err := s.repo.Rebuild(ctx); err != nil {
		return fmt.Errorf("rebuild cash balances: %w", err)
	}
	logger.Info(ctx, "cash balances rebuilt from movement log")
	return nil
}
