// Package register_repo provides PostgreSQL implementations for the
// accumulation register repositories.
package register_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tradebook/internal/core/entity"
	"tradebook/internal/core/id"
	"tradebook/internal/core/types"
	"tradebook/internal/domain/registers/stock"
	"tradebook/internal/infrastructure/storage/postgres"
)

const (
	stockMovementsTable = "reg_stock_movements"
	stockBalancesTable  = "reg_stock_balances"
)

// Ensure interface compliance.
var _ stock.Repository = (*StockRepo)(nil)

// StockRepo implements stock.Repository.
type StockRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewStockRepo creates a new stock register repository.
func NewStockRepo(txManager *postgres.TxManager) *StockRepo {
	return &StockRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateMovements batch inserts movements.
func (r *StockRepo) CreateMovements(ctx context.Context, movements []entity.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}

	columns := []string{
		"line_id", "doc_type", "doc_id", "entry_date", "record_type",
		"warehouse_id", "product_id", "quantity", "created_at",
	}

	// Fast path: COPY when inside a transaction.
	if tx := r.txManager.GetTx(ctx); tx != nil {
		inserter := postgres.NewBatchInserter(r.txManager)
		rows := make([][]any, 0, len(movements))
		for _, m := range movements {
			rows = append(rows, []any{
				m.LineID, m.DocType, m.DocID, m.EntryDate, m.RecordType,
				m.WarehouseID, m.ProductID, m.Quantity.Int64Scaled(), m.CreatedAt,
			})
		}
		if _, err := inserter.CopyFromSlice(ctx, stockMovementsTable, columns, rows); err != nil {
			return fmt.Errorf("copy movements: %w", err)
		}
		return nil
	}

	// Fallback: non-transactional insert (slower). Prefer calling within tx.
	q := r.builder.Insert(stockMovementsTable).Columns(columns...)
	for _, m := range movements {
		q = q.Values(
			m.LineID, m.DocType, m.DocID, m.EntryDate, m.RecordType,
			m.WarehouseID, m.ProductID, m.Quantity.Int64Scaled(), m.CreatedAt,
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
func (r *StockRepo) GetMovementsByDoc(ctx context.Context, docType entity.DocType, docID id.ID) ([]entity.StockMovement, error) {
	q := r.builder.Select(
		"line_id", "doc_type", "doc_id", "entry_date", "record_type",
		"warehouse_id", "product_id", "quantity", "created_at",
	).From(stockMovementsTable).
		Where(squirrel.Eq{"doc_type": docType, "doc_id": docID}).
		OrderBy("created_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var movements []entity.StockMovement
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &movements, sql, args...); err != nil {
		return nil, fmt.Errorf("select movements: %w", err)
	}

	return movements, nil
}

// DeleteMovementsByDoc removes all movements recorded by a document.
func (r *StockRepo) DeleteMovementsByDoc(ctx context.Context, docType entity.DocType, docID id.ID) error {
	q := r.builder.Delete(stockMovementsTable).
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

// GetBalance returns current balance for warehouse+product.
func (r *StockRepo) GetBalance(ctx context.Context, warehouseID, productID id.ID) (entity.StockBalance, error) {
	var balance entity.StockBalance

	q := r.builder.Select(
		"warehouse_id", "product_id", "quantity", "updated_at",
	).From(stockBalancesTable).
		Where(squirrel.Eq{
			"warehouse_id": warehouseID,
			"product_id":   productID,
		}).Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return balance, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &balance, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity.StockBalance{
				WarehouseID: warehouseID,
				ProductID:   productID,
				Quantity:    0,
			}, nil
		}
		return balance, fmt.Errorf("get balance: %w", err)
	}

	return balance, nil
}

// GetBalanceForUpdate returns balance with pessimistic lock.
// A missing row reads as zero; the lock then materializes on insert via
// ApplyDelta's upsert within the same transaction.
func (r *StockRepo) GetBalanceForUpdate(ctx context.Context, warehouseID, productID id.ID) (entity.StockBalance, error) {
	var balance entity.StockBalance

	sql := `
		SELECT warehouse_id, product_id, quantity, updated_at
		FROM reg_stock_balances
		WHERE warehouse_id = $1 AND product_id = $2
		FOR UPDATE
	`

	err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &balance, sql, warehouseID, productID)
	if err != nil {
		if pgxscan.NotFound(err) {
			return entity.StockBalance{
				WarehouseID: warehouseID,
				ProductID:   productID,
				Quantity:    0,
			}, nil
		}
		return balance, fmt.Errorf("get balance for update: %w", err)
	}

	return balance, nil
}

// ApplyDelta adds a signed delta to the materialized balance row.
func (r *StockRepo) ApplyDelta(ctx context.Context, warehouseID, productID id.ID, delta types.Quantity) error {
	sql := `
		INSERT INTO reg_stock_balances (warehouse_id, product_id, quantity, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (warehouse_id, product_id)
		DO UPDATE SET quantity = reg_stock_balances.quantity + EXCLUDED.quantity,
		              updated_at = NOW()
	`

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, warehouseID, productID, delta.Int64Scaled()); err != nil {
		return fmt.Errorf("upsert balance: %w", err)
	}

	return nil
}

// ListBalances returns all non-zero balances ordered by dimensions.
func (r *StockRepo) ListBalances(ctx context.Context) ([]entity.StockBalance, error) {
	q := r.builder.Select(
		"warehouse_id", "product_id", "quantity", "updated_at",
	).From(stockBalancesTable).
		Where(squirrel.NotEq{"quantity": int64(0)}).
		OrderBy("warehouse_id", "product_id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var balances []entity.StockBalance
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &balances, sql, args...); err != nil {
		return nil, fmt.Errorf("select balances: %w", err)
	}

	return balances, nil
}

// Rebuild regenerates the balance table from the movement log.
func (r *StockRepo) Rebuild(ctx context.Context) error {
	querier := r.txManager.GetQuerier(ctx)

	if _, err := querier.Exec(ctx, "DELETE FROM "+stockBalancesTable); err != nil {
		return fmt.Errorf("clear balances: %w", err)
	}

	sql := `
		INSERT INTO reg_stock_balances (warehouse_id, product_id, quantity, updated_at)
		SELECT warehouse_id, product_id,
			   SUM(CASE WHEN record_type = 'receipt' THEN quantity ELSE -quantity END),
			   NOW()
		FROM reg_stock_movements
		GROUP BY warehouse_id, product_id
	`

	if _, err := querier.Exec(ctx, sql); err != nil {
		return fmt.Errorf("rebuild balances: %w", err)
	}

	return nil
}
