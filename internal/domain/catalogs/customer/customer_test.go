package customer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradebook/internal/core/apperror"
	"tradebook/internal/domain/catalogs/customer"
	"tradebook/internal/domain/domaintest"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"+7 (900) 123-45-67", "+79001234567"},
		{"8 900 123 45 67", "89001234567"},
		{"  79001234567  ", "79001234567"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, customer.NormalizePhone(tt.in))
	}
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	assert.NoError(t, customer.New("Ivan", "+79001234567").Validate(ctx))
	// Blank identity is allowed for walk-in sales.
	assert.NoError(t, customer.New("", "").Validate(ctx))

	err := customer.New("Ivan", "123").Validate(ctx)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestGetOrCreate(t *testing.T) {
	ctx := context.Background()
	svc := customer.NewService(domaintest.NewCustomerRepo())

	first, err := svc.GetOrCreate(ctx, "Ivan", "+7 900 123-45-67")
	require.NoError(t, err)

	// Same identity resolves to the same row, raw phone formatting aside.
	second, err := svc.GetOrCreate(ctx, "Ivan", "+79001234567")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	// Same name with a different phone is a different customer.
	third, err := svc.GetOrCreate(ctx, "Ivan", "+79007654321")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGetByIDMissing(t *testing.T) {
	ctx := context.Background()
	svc := customer.NewService(domaintest.NewCustomerRepo())

	created, err := svc.GetOrCreate(ctx, "Anna", "+79990000000")
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anna", got.Name)
}
