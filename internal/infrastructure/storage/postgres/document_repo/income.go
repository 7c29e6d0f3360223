package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tradebook/internal/core/apperror"
	"tradebook/internal/core/id"
	"tradebook/internal/domain"
	"tradebook/internal/domain/documents/income"
	"tradebook/internal/infrastructure/storage/postgres"
)

const incomesTable = "doc_incomes"

// Ensure interface compliance.
var _ income.Repository = (*IncomeRepo)(nil)

// IncomeRepo implements income.Repository.
type IncomeRepo struct {
	txManager  *postgres.TxManager
	builder    squirrel.StatementBuilderType
	selectCols []string
}

// NewIncomeRepo creates a new income document repository.
func NewIncomeRepo(txManager *postgres.TxManager) *IncomeRepo {
	return &IncomeRepo{
		txManager:  txManager,
		builder:    squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		selectCols: postgres.ExtractDBColumns[income.Income](),
	}
}

// Create inserts the document row.
func (r *IncomeRepo) Create(ctx context.Context, doc *income.Income) error {
	q := r.builder.Insert(incomesTable).SetMap(postgres.StructToMap(doc))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert income: %w", err)
	}

	return nil
}

// GetByID retrieves an income.
func (r *IncomeRepo) GetByID(ctx context.Context, docID id.ID) (*income.Income, error) {
	return r.get(ctx, docID, false)
}

// GetByIDForUpdate retrieves an income with a row lock.
func (r *IncomeRepo) GetByIDForUpdate(ctx context.Context, docID id.ID) (*income.Income, error) {
	return r.get(ctx, docID, true)
}

func (r *IncomeRepo) get(ctx context.Context, docID id.ID, forUpdate bool) (*income.Income, error) {
	q := r.builder.
		Select(r.selectCols...).
		From(incomesTable).
		Where(squirrel.Eq{"id": docID})

	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var doc income.Income
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &doc, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("income", docID)
		}
		return nil, fmt.Errorf("get income: %w", err)
	}

	return &doc, nil
}

// Delete removes the document row.
func (r *IncomeRepo) Delete(ctx context.Context, docID id.ID) error {
	q := r.builder.Delete(incomesTable).Where(squirrel.Eq{"id": docID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete income: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("income", docID)
	}

	return nil
}

// List returns incomes, most recent first.
func (r *IncomeRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*income.Income], error) {
	result := domain.ListResult[*income.Income]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	countSQL, countArgs, err := r.builder.
		Select("COUNT(*)").
		From(incomesTable).
		ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count incomes: %w", err)
	}

	q := r.builder.
		Select(r.selectCols...).
		From(incomesTable).
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
		return result, fmt.Errorf("list incomes: %w", err)
	}

	return result, nil
}
