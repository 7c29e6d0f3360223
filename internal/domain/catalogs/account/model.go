// Package account provides the Account catalog: the places money lives.
package account

import (
	"context"

	"tradebook/internal/core/apperror"
	"tradebook/internal/core/entity"
)

// Type defines the kind of account.
type Type string

const (
	// TypeCash is a physical cash box
	TypeCash Type = "cash"
	// TypeBank is a bank account
	TypeBank Type = "bank"
	// TypeIP is the sole-proprietor settlement account
	TypeIP Type = "ip"
)

// Account represents a cash box or bank account holding money.
type Account struct {
	entity.Catalog

	// Type defines the account category
	Type Type `db:"type" json:"type"`

	// BankName is the servicing bank, for bank-type accounts
	BankName *string `db:"bank_name" json:"bankName,omitempty"`
}

// New creates a new Account.
func New(name string, accType Type) *Account {
	return &Account{
		Catalog: entity.NewCatalog(name),
		Type:    accType,
	}
}

// Validate implements entity.Validatable.
func (a *Account) Validate(ctx context.Context) error {
	if err := a.Catalog.Validate(ctx); err != nil {
		return err
	}

	switch a.Type {
	case TypeCash, TypeBank, TypeIP:
	default:
		return apperror.NewValidation("invalid account type").
			WithDetail("field", "type").
			WithDetail("value", string(a.Type))
	}

	return nil
}
