package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"validation", NewValidation("bad input"), CodeValidation, http.StatusBadRequest},
		{"not found", NewNotFound("sale", "abc"), CodeNotFound, http.StatusNotFound},
		{"insufficient stock", NewInsufficientStock("p1", 10, 3), CodeInsufficientStock, http.StatusUnprocessableEntity},
		{"rollback blocked", NewRollbackBlocked("p1", 10, 3), CodeRollbackBlocked, http.StatusUnprocessableEntity},
		{"already settled", NewAlreadySettled("d1"), CodeAlreadySettled, http.StatusOK},
		{"duplicate", NewDuplicate("account", "name", "Main"), CodeDuplicate, http.StatusConflict},
		{"conflict", NewConflict("busy"), CodeConflict, http.StatusConflict},
		{"internal", NewInternal(errors.New("boom")), CodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestInsufficientStockDetails(t *testing.T) {
	err := NewInsufficientStock("prod-1", 10.5, 3.25)
	assert.Equal(t, 10.5, err.Details["requested"])
	assert.Equal(t, 3.25, err.Details["available"])
	assert.Equal(t, "prod-1", err.Details["product_id"])
}

func TestWithDetailAndCause(t *testing.T) {
	cause := errors.New("db down")
	err := NewValidation("bad").WithDetail("field", "quantity").WithCause(cause)

	assert.Equal(t, "quantity", err.Details["field"])
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "caused by")
}

func TestHelpersThroughWrapping(t *testing.T) {
	// Services wrap repository errors with fmt.Errorf; code checks must
	// survive the wrapping.
	wrapped := fmt.Errorf("create document: %w", NewNotFound("sale", "x"))

	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsInsufficientStock(wrapped))
	assert.Equal(t, http.StatusNotFound, GetHTTPStatus(wrapped))

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, appErr.Code)
}

func TestHelpersOnPlainError(t *testing.T) {
	plain := errors.New("plain")

	assert.False(t, IsAppError(plain))
	assert.False(t, IsNotFound(plain))
	assert.False(t, IsAlreadySettled(plain))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(plain))
}

func TestSettlementGuards(t *testing.T) {
	assert.True(t, IsAlreadySettled(NewAlreadySettled("d1")))
	assert.True(t, IsRollbackBlocked(NewRollbackBlocked("p1", 5, 1)))
	assert.False(t, IsAlreadySettled(NewRollbackBlocked("p1", 5, 1)))
}
