package stock

import (
	"context"
	"fmt"

	"tradebook/internal/core/apperror"
	"tradebook/internal/core/entity"
	"tradebook/internal/core/id"
	"tradebook/internal/core/types"
	"tradebook/pkg/logger"
)

// Service provides business operations for the stock register.
// Transactions are managed by the caller (the document lifecycle);
// every mutating method expects to run inside one.
type Service struct {
	repo Repository
}

// NewService creates a new stock register service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record appends movements to the log and applies their deltas to the
// materialized balances in the same transaction.
func (s *Service) Record(ctx context.Context, movements []entity.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}

	for i, m := range movements {
		if !m.Quantity.IsPositive() {
			return apperror.NewValidation(fmt.Sprintf("movement %d: quantity must be positive", i))
		}
		if id.IsNil(m.DocID) {
			return apperror.NewValidation(fmt.Sprintf("movement %d: doc_id is required", i))
		}
	}

	if err := s.repo.CreateMovements(ctx, movements); err != nil {
		return fmt.Errorf("create movements: %w", err)
	}

	for _, m := range movements {
		if err := s.repo.ApplyDelta(ctx, m.WarehouseID, m.ProductID, m.SignedQuantity()); err != nil {
			return fmt.Errorf("apply balance delta: %w", err)
		}
	}

	logger.Debug(ctx, "recorded stock movements",
		"count", len(movements),
		"doc_id", movements[0].DocID,
	)

	return nil
}

// Reverse removes a document's movements and backs their deltas out of the
// materialized balances, leaving the register as if the document never
// existed.
func (s *Service) Reverse(ctx context.Context, docType entity.DocType, docID id.ID) error {
	movements, err := s.repo.GetMovementsByDoc(ctx, docType, docID)
	if err != nil {
		return fmt.Errorf("get movements: %w", err)
	}

	if err := s.repo.DeleteMovementsByDoc(ctx, docType, docID); err != nil {
		return fmt.Errorf("delete movements: %w", err)
	}

	for _, m := range movements {
		if err := s.repo.ApplyDelta(ctx, m.WarehouseID, m.ProductID, m.SignedQuantity().Neg()); err != nil {
			return fmt.Errorf("apply balance delta: %w", err)
		}
	}

	logger.Debug(ctx, "reversed stock movements",
		"doc_type", docType,
		"doc_id", docID,
		"count", len(movements),
	)

	return nil
}

// AvailableForUpdate returns the current balance for (warehouse, product)
// with the row locked for the rest of the transaction. Concurrent writers
// against the same pair serialize here.
func (s *Service) AvailableForUpdate(ctx context.Context, warehouseID, productID id.ID) (types.Quantity, error) {
	balance, err := s.repo.GetBalanceForUpdate(ctx, warehouseID, productID)
	if err != nil {
		return 0, fmt.Errorf("get balance for update: %w", err)
	}
	return balance.Quantity, nil
}

// CheckAvailability fails with InsufficientStock when the locked balance
// does not cover the required quantity.
func (s *Service) CheckAvailability(ctx context.Context, warehouseID, productID id.ID, required types.Quantity) error {
	available, err := s.AvailableForUpdate(ctx, warehouseID, productID)
	if err != nil {
		return err
	}

	if available < required {
		return apperror.NewInsufficientStock(
			productID.String(),
			required.Float64(),
			available.Float64(),
		)
	}

	return nil
}

// GetBalance returns the current balance without locking.
func (s *Service) GetBalance(ctx context.Context, warehouseID, productID id.ID) (entity.StockBalance, error) {
	return s.repo.GetBalance(ctx, warehouseID, productID)
}

// ListBalances returns all non-zero stock balances.
func (s *Service) ListBalances(ctx context.Context) ([]entity.StockBalance, error) {
	return s.repo.ListBalances(ctx)
}

// Rebuild regenerates materialized balances from the movement log.
// Safe at any time: the log is the source of truth.
func (s *Service) Rebuild(ctx context.Context) error {
	if err := s.repo.Rebuild(ctx); err != nil {
		return fmt.Errorf("rebuild stock balances: %w", err)
	}
	logger.Info(ctx, "stock balances rebuilt from movement log")
	return nil
}
