package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tradebook/internal/domain/catalogs/account"
	"tradebook/internal/infrastructure/storage/postgres"
)

const accountsTable = "cat_accounts"

// Ensure interface compliance.
var _ account.Repository = (*AccountRepo)(nil)

// AccountRepo implements account persistence.
type AccountRepo struct {
	*BaseCatalogRepo[*account.Account]
}

// NewAccountRepo creates a new account repository.
func NewAccountRepo(txManager *postgres.TxManager) *AccountRepo {
	return &AccountRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*account.Account](txManager, accountsTable, "account"),
	}
}

// ListByType returns accounts of one type ordered by name.
func (r *AccountRepo) ListByType(ctx context.Context, accType account.Type) ([]*account.Account, error) {
	q := r.Builder().
		Select("id", "version", "name", "type", "bank_name").
		From(accountsTable).
		Where(squirrel.Eq{"type": accType}).
		OrderBy("name")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var accounts []*account.Account
	if err := pgxscan.Select(ctx, r.Querier(ctx), &accounts, sql, args...); err != nil {
		return nil, fmt.Errorf("list accounts by type: %w", err)
	}

	return accounts, nil
}
