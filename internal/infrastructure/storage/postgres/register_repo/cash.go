package register_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tradebook/internal/core/entity"
	"tradebook/internal/core/id"
	"tradebook/internal/core/types"
	"tradebook/internal/domain/registers/cash"
	"tradebook/internal/infrastructure/storage/postgres"
)

const (
	cashMovementsTable = "reg_cash_movements"
	cashBalancesTable  = "reg_cash_balances"
)

// Ensure interface compliance.
var _ cash.Repository = (*CashRepo)(nil)

// CashRepo implements cash.Repository.
type CashRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewCashRepo creates a new cash register repository.
func NewCashRepo(txManager *postgres.TxManager) *CashRepo {
	return &CashRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateMovements batch inserts movements.
func (r *CashRepo) CreateMovements(ctx context.Context, movements []entity.CashMovement) error {
	if len(movements) == 0 {
		return nil
	}

	columns := []string{
		"line_id", "doc_type", "doc_id", "entry_date", "record_type",
		"account_id", "amount", "note", "created_at",
	}

	if tx := r.txManager.GetTx(ctx); tx != nil {
		inserter := postgres.NewBatchInserter(r.txManager)
		rows := make([][]any, 0, len(movements))
		for _, m := range movements {
			rows = append(rows, []any{
				m.LineID, m.DocType, m.DocID, m.EntryDate, m.RecordType,
				m.AccountID, m.Amount, m.Note, m.CreatedAt,
			})
		}
		if _, err := inserter.CopyFromSlice(ctx, cashMovementsTable, columns, rows); err != nil {
			return fmt.Errorf("copy movements: %w", err)
		}
		return nil
	}

	q := r.builder.Insert(cashMovementsTable).Columns(columns...)
	for _, m := range movements {
		q = q.Values(
			m.LineID, m.DocType, m.DocID, m.EntryDate, m.RecordType,
			m.AccountID, m.Amount, m.Note, m.CreatedAt,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert movements: %w", err)
	}

	return nil
}

// GetMovementsByDoc retrieves all movements recorded by a document.
func (r *CashRepo) GetMovementsByDoc(ctx context.Context, docType entity.DocType, docID id.ID) ([]entity.CashMovement, error) {
	q := r.builder.Select(
		"line_id", "doc_type", "doc_id", "entry_date", "record_type",
		"account_id", "amount", "note", "created_at",
	).From(cashMovementsTable).
		Where(squirrel.Eq{"doc_type": docType, "doc_id": docID}).
		OrderBy("created_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var movements []entity.CashMovement
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &movements, sql, args...); err != nil {
		return nil, fmt.Errorf("select movements: %w", err)
	}

	return movements, nil
}

// DeleteMovementsByDoc removes all movements recorded by a document.
func (r *CashRepo) DeleteMovementsByDoc(ctx context.Context, docType entity.DocType, docID id.ID) error {
	q := r.builder.Delete(cashMovementsTable).
		Where(squirrel.Eq{"doc_type": docType, "doc_id": docID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete movements: %w", err)
	}

	return nil
}

// GetBalance returns the current balance of an account.
func (r *CashRepo) GetBalance(ctx context.Context, accountID id.ID) (entity.CashBalance, error) {
	var balance entity.CashBalance

	q := r.builder.Select(
		"account_id", "amount", "updated_at",
	).From(cashBalancesTable).
		Where(squirrel.Eq{"account_id": accountID}).Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return balance, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &balance, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity.CashBalance{
				AccountID: accountID,
				Amount:    types.ZeroMoney(),
			}, nil
		}
		return balance, fmt.Errorf("get balance: %w", err)
	}

	return balance, nil
}

// ApplyDelta adds a signed delta to the materialized balance row.
func (r *CashRepo) ApplyDelta(ctx context.Context, accountID id.ID, delta types.Money) error {
	sql := `
		INSERT INTO reg_cash_balances (account_id, amount, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (account_id)
		DO UPDATE SET amount = reg_cash_balances.amount + EXCLUDED.amount,
		              updated_at = NOW()
	`

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, accountID, delta); err != nil {
		return fmt.Errorf("upsert balance: %w", err)
	}

	return nil
}

// ListBalances returns all account balances ordered by account.
func (r *CashRepo) ListBalances(ctx context.Context) ([]entity.CashBalance, error) {
	q := r.builder.Select(
		"account_id", "amount", "updated_at",
	).From(cashBalancesTable).
		OrderBy("account_id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var balances []entity.CashBalance
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &balances, sql, args...); err != nil {
		return nil, fmt.Errorf("select balances: %w", err)
	}

	return balances, nil
}

// Rebuild regenerates the balance table from the movement log.
func (r *CashRepo) Rebuild(ctx context.Context) error {
	querier := r.txManager.GetQuerier(ctx)

	if _, err := querier.Exec(ctx, "DELETE FROM "+cashBalancesTable); err != nil {
		return fmt.Errorf("clear balances: %w", err)
	}

	sql := `
		INSERT INTO reg_cash_balances (account_id, amount, updated_at)
		SELECT account_id,
			   SUM(CASE WHEN record_type = 'receipt' THEN amount ELSE -amount END),
			   NOW()
		FROM reg_cash_movements
		GROUP BY account_id
	`

	if _, err := querier.Exec(ctx, sql); err != nil {
		return fmt.Errorf("rebuild balances: %w", err)
	}

	return nil
}
