package utils

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCents(t *testing.T) {
	tests := []struct {
		amount string
		want   int64
	}{
		{"12.50", 1250},
		{"0.29", 29},
		{"1", 100},
		{"19.999", 2000},
		{"0.005", 1},
		{"1e3", 100000},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			cents, err := ToCents(decimal.RequireFromString(tt.amount))
			require.NoError(t, err)
			assert.Equal(t, tt.want, cents)
		})
	}
}

func TestToCents_OutOfRange(t *testing.T) {
	cents, err := ToCents(decimal.RequireFromString("21474836.47"))
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt32), cents)

	for _, amount := range []string{"21474836.48", "92233720368547758.08", "184467440737095516.17", "1e30", "-1e30"} {
		_, err := ToCents(decimal.RequireFromString(amount))
		assert.ErrorIs(t, err, ErrAmountOutOfRange, amount)
	}
}

func TestFromCents(t *testing.T) {
	assert.True(t, decimal.RequireFromString("12.5").Equal(FromCents(1250)))
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$0.00", FormatCurrency(0))
	assert.Equal(t, "$0.05", FormatCurrency(5))
	assert.Equal(t, "$12.50", FormatCurrency(1250))
	assert.Equal(t, "$1,234.56", FormatCurrency(123456))
	assert.Equal(t, "$1,000,000.00", FormatCurrency(100000000))
	assert.Equal(t, "-$3.10", FormatCurrency(-310))
}

func TestISODateOf_UsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	local := time.Date(2024, 6, 2, 3, 0, 0, 0, loc)

	assert.Equal(t, "2024-06-01", ISODateOf(local))
}
