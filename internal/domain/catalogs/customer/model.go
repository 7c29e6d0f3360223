// Package customer provides the Customer catalog.
// Customers are identified by (name, phone); both may repeat separately,
// the pair is unique. A blank identity is allowed for walk-in sales.
package customer

import (
	"context"
	"strings"

	"tradebook/internal/core/apperror"
	"tradebook/internal/core/entity"
)

// Customer represents a buyer.
type Customer struct {
	entity.BaseEntity

	Name  string `db:"name" json:"name"`
	Phone string `db:"phone" json:"phone"`
}

// New creates a new Customer.
func New(name, phone string) *Customer {
	return &Customer{
		BaseEntity: entity.NewBaseEntity(),
		Name:       strings.TrimSpace(name),
		Phone:      NormalizePhone(phone),
	}
}

// Validate implements entity.Validatable.
// Name may be blank (anonymous buyer); phone, when present, must be
// at least a dialable stub.
func (c *Customer) Validate(ctx context.Context) error {
	if c.Phone != "" && len(c.Phone) < 5 {
		return apperror.NewValidation("phone number is too short").
			WithDetail("field", "phone")
	}
	return nil
}

// NormalizePhone strips everything except digits and a leading plus.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, ch := range strings.TrimSpace(raw) {
		if ch >= '0' && ch <= '9' || ch == '+' {
			b.WriteRune(ch)
		}
	}
	return b.String()
}
