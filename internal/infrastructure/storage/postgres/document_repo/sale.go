// Package document_repo provides PostgreSQL implementations for document
// repositories.
package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tradebook/internal/core/apperror"
	"tradebook/internal/core/id"
	"tradebook/internal/domain"
	"tradebook/internal/domain/documents/sale"
	"tradebook/internal/infrastructure/storage/postgres"
)

const salesTable = "doc_sales"

// Ensure interface compliance.
var _ sale.Repository = (*SaleRepo)(nil)

// SaleRepo implements sale.Repository.
type SaleRepo struct {
	txManager  *postgres.TxManager
	builder    squirrel.StatementBuilderType
	selectCols []string
}

// NewSaleRepo creates a new sale document repository.
func NewSaleRepo(txManager *postgres.TxManager) *SaleRepo {
	return &SaleRepo{
		txManager:  txManager,
		builder:    squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		selectCols: postgres.ExtractDBColumns[sale.Sale](),
	}
}

// Create inserts the document row.
func (r *SaleRepo) Create(ctx context.Context, doc *sale.Sale) error {
	q := r.builder.Insert(salesTable).SetMap(postgres.StructToMap(doc))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}

	return nil
}

// GetByID retrieves a sale.
func (r *SaleRepo) GetByID(ctx context.Context, docID id.ID) (*sale.Sale, error) {
	return r.get(ctx, docID, false)
}

// GetByIDForUpdate retrieves a sale with a row lock.
func (r *SaleRepo) GetByIDForUpdate(ctx context.Context, docID id.ID) (*sale.Sale, error) {
	return r.get(ctx, docID, true)
}

func (r *SaleRepo) get(ctx context.Context, docID id.ID, forUpdate bool) (*sale.Sale, error) {
	q := r.builder.
		Select(r.selectCols...).
		From(salesTable).
		Where(squirrel.Eq{"id": docID})

	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var doc sale.Sale
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &doc, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("sale", docID)
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}

	return &doc, nil
}

// Delete removes the document row.
func (r *SaleRepo) Delete(ctx context.Context, docID id.ID) error {
	q := r.builder.Delete(salesTable).Where(squirrel.Eq{"id": docID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("sale", docID)
	}

	return nil
}

// MarkPaid flips is_paid and records the settlement account.
// Only unpaid rows match, so the transition is one-way.
func (r *SaleRepo) MarkPaid(ctx context.Context, docID, accountID id.ID) error {
	q := r.builder.Update(salesTable).
		Set("is_paid", true).
		Set("account_id", accountID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": docID, "is_paid": false})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("mark sale paid: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("unpaid sale", docID)
	}

	return nil
}

// List returns sales, most recent first.
func (r *SaleRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*sale.Sale], error) {
	result := domain.ListResult[*sale.Sale]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	countSQL, countArgs, err := r.builder.
		Select("COUNT(*)").
		From(salesTable).
		ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count sales: %w", err)
	}

	q := r.builder.
		Select(r.selectCols...).
		From(salesTable).
		OrderBy("doc_date DESC", "created_at DESC")

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list sales: %w", err)
	}

	return result, nil
}
