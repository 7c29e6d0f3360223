// Package debtor_repo provides the PostgreSQL implementation of the
// debtors repository.
package debtor_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tradebook/internal/core/apperror"
	"tradebook/internal/core/id"
	"tradebook/internal/domain/debtors"
	"tradebook/internal/infrastructure/storage/postgres"
)

const debtorsTable = "doc_debtors"

// Ensure interface compliance.
var _ debtors.Repository = (*DebtorRepo)(nil)

// DebtorRepo implements debtors.Repository.
type DebtorRepo struct {
	txManager  *postgres.TxManager
	builder    squirrel.StatementBuilderType
	selectCols []string
}

// NewDebtorRepo creates a new debtor repository.
func NewDebtorRepo(txManager *postgres.TxManager) *DebtorRepo {
	return &DebtorRepo{
		txManager:  txManager,
		builder:    squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		selectCols: postgres.ExtractDBColumns[debtors.Debtor](),
	}
}

// Create inserts an open debtor row. The sale_id unique constraint keeps
// one debtor per sale.
func (r *DebtorRepo) Create(ctx context.Context, d *debtors.Debtor) error {
	q := r.builder.Insert(debtorsTable).SetMap(postgres.StructToMap(d))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.NewDuplicate("debtor", "sale", d.SaleID.String())
		}
		return fmt.Errorf("insert debtor: %w", err)
	}

	return nil
}

// GetByID retrieves a debtor.
func (r *DebtorRepo) GetByID(ctx context.Context, debtorID id.ID) (*debtors.Debtor, error) {
	return r.get(ctx, debtorID, false)
}

// GetByIDForUpdate retrieves a debtor with a row lock.
func (r *DebtorRepo) GetByIDForUpdate(ctx context.Context, debtorID id.ID) (*debtors.Debtor, error) {
	return r.get(ctx, debtorID, true)
}

func (r *DebtorRepo) get(ctx context.Context, debtorID id.ID, forUpdate bool) (*debtors.Debtor, error) {
	q := r.builder.
		Select(r.selectCols...).
		From(debtorsTable).
		Where(squirrel.Eq{"id": debtorID})

	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var d debtors.Debtor
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &d, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("debtor", debtorID)
		}
		return nil, fmt.Errorf("get debtor: %w", err)
	}

	return &d, nil
}

// MarkPaid closes the debtor.
func (r *DebtorRepo) MarkPaid(ctx context.Context, debtorID id.ID) error {
	q := r.builder.Update(debtorsTable).
		Set("is_paid", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": debtorID, "is_paid": false})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("mark debtor paid: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("open debtor", debtorID)
	}

	return nil
}

// DeleteBySale removes the debtor owned by a sale, if any.
func (r *DebtorRepo) DeleteBySale(ctx context.Context, saleID id.ID) error {
	q := r.builder.Delete(debtorsTable).Where(squirrel.Eq{"sale_id": saleID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete debtor by sale: %w", err)
	}

	return nil
}

// ListOpen returns all open (unpaid) debtors, oldest first.
func (r *DebtorRepo) ListOpen(ctx context.Context) ([]*debtors.Debtor, error) {
	return r.list(ctx, squirrel.Eq{"is_paid": false}, "doc_date ASC")
}

// List returns all debtors, most recent first.
func (r *DebtorRepo) List(ctx context.Context) ([]*debtors.Debtor, error) {
	return r.list(ctx, nil, "doc_date DESC")
}

func (r *DebtorRepo) list(ctx context.Context, where any, order string) ([]*debtors.Debtor, error) {
	q := r.builder.
		Select(r.selectCols...).
		From(debtorsTable).
		OrderBy(order, "created_at DESC")

	if where != nil {
		q = q.Where(where)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var list []*debtors.Debtor
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &list, sql, args...); err != nil {
		return nil, fmt.Errorf("list debtors: %w", err)
	}

	return list, nil
}
