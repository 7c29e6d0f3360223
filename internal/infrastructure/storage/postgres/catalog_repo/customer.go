package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tradebook/internal/core/apperror"
	"tradebook/internal/core/id"
	"tradebook/internal/domain/catalogs/customer"
	"tradebook/internal/infrastructure/storage/postgres"
)

const customersTable = "cat_customers"

// Ensure interface compliance.
var _ customer.Repository = (*CustomerRepo)(nil)

// CustomerRepo implements customer persistence. Customers are unique by
// the (name, phone) pair rather than a single name column, so it does not
// reuse the generic catalog base.
type CustomerRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewCustomerRepo creates a new customer repository.
func NewCustomerRepo(txManager *postgres.TxManager) *CustomerRepo {
	return &CustomerRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new customer.
func (r *CustomerRepo) Create(ctx context.Context, c *customer.Customer) error {
	q := r.builder.Insert(customersTable).
		Columns("id", "version", "name", "phone").
		Values(c.ID, c.Version, c.Name, c.Phone)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.NewDuplicate("customer", "identity", c.Name+"/"+c.Phone)
		}
		return fmt.Errorf("insert customer: %w", err)
	}

	return nil
}

// GetByID retrieves a customer by id.
func (r *CustomerRepo) GetByID(ctx context.Context, customerID id.ID) (*customer.Customer, error) {
	return r.getOne(ctx, squirrel.Eq{"id": customerID}, customerID)
}

// GetByIdentity retrieves a customer by the (name, phone) pair.
func (r *CustomerRepo) GetByIdentity(ctx context.Context, name, phone string) (*customer.Customer, error) {
	return r.getOne(ctx, squirrel.Eq{"name": name, "phone": phone}, name)
}

func (r *CustomerRepo) getOne(ctx context.Context, where squirrel.Eq, key any) (*customer.Customer, error) {
	q := r.builder.
		Select("id", "version", "name", "phone").
		From(customersTable).
		Where(where).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var c customer.Customer
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &c, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("customer", key)
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}

	return &c, nil
}

// List returns all customers ordered by name.
func (r *CustomerRepo) List(ctx context.Context) ([]*customer.Customer, error) {
	q := r.builder.
		Select("id", "version", "name", "phone").
		From(customersTable).
		OrderBy("name", "phone")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var customers []*customer.Customer
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &customers, sql, args...); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	return customers, nil
}
