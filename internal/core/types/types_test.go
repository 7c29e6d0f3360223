package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantityFromFloat(t *testing.T) {
	assert.Equal(t, Quantity(1250000), NewQuantityFromFloat64(125))
	assert.Equal(t, Quantity(15000), NewQuantityFromFloat64(1.5))
	assert.Equal(t, Quantity(-15000), NewQuantityFromFloat64(-1.5))
	assert.Equal(t, Quantity(1), NewQuantityFromFloat64(0.0001))
}

func TestQuantityString(t *testing.T) {
	tests := []struct {
		q    Quantity
		want string
	}{
		{0, "0.0000"},
		{10000, "1.0000"},
		{15000, "1.5000"},
		{-15000, "-1.5000"},
		{1, "0.0001"},
		{1250001, "125.0001"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.q.String())
	}
}

func TestQuantityUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Quantity
	}{
		{"integer", `125`, 1250000},
		{"decimal", `1.5`, 15000},
		{"negative", `-2.25`, -22500},
		{"string form", `"3.75"`, 37500},
		{"extra digits truncated", `1.99999`, 19999},
		{"null", `null`, 0},
		{"bare fraction", `".5"`, 5000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q Quantity
			require.NoError(t, json.Unmarshal([]byte(tt.in), &q))
			assert.Equal(t, tt.want, q)
		})
	}
}

func TestQuantityUnmarshalInvalid(t *testing.T) {
	var q Quantity
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &q))
	assert.Error(t, json.Unmarshal([]byte(`""`), &q))
}

func TestQuantityMarshalRoundTrip(t *testing.T) {
	q := NewQuantityFromFloat64(12.3456)

	data, err := json.Marshal(q)
	require.NoError(t, err)
	assert.Equal(t, "12.3456", string(data))

	var back Quantity
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, q, back)
}

func TestQuantityDecimalMath(t *testing.T) {
	// Total money math must be exact: 0.1 + 0.2 style drift is not acceptable.
	q := NewQuantityFromFloat64(3.5)
	price := MustMoney("99.99")

	total := q.Decimal().Mul(price)
	assert.True(t, total.Equal(MustMoney("349.965")), "got %s", total)
}

func TestQuantityPredicates(t *testing.T) {
	assert.True(t, Quantity(0).IsZero())
	assert.True(t, Quantity(5).IsPositive())
	assert.True(t, Quantity(-5).IsNegative())
	assert.Equal(t, Quantity(-5), Quantity(5).Neg())
	assert.Equal(t, Quantity(5), Quantity(-5).Abs())
}
