package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestFitsScale(t *testing.T) {
	tests := []struct {
		amount string
		scale  int32
		want   bool
	}{
		{"100", 0, true},
		{"100.5", 0, false},
		{"12.34", 2, true},
		{"12.345", 2, false},
		{"12.300", 2, true},
		{"0", 2, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FitsScale(dec(tt.amount), tt.scale), "FitsScale(%s, %d)", tt.amount, tt.scale)
	}
}

func TestParse(t *testing.T) {
	d, err := Parse(" 1500 ", 0)
	require.NoError(t, err)
	assert.Equal(t, "1500", d.String())

	d, err = Parse("12.50", 2)
	require.NoError(t, err)
	assert.Equal(t, "12.50", d.StringFixed(2))
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse("abc", 2)
	assert.Error(t, err)

	_, err = Parse("1.5", 0)
	assert.ErrorIs(t, err, ErrPrecision)

	_, err = Parse("1.005", 2)
	assert.ErrorIs(t, err, ErrPrecision)
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		n      int
		scale  int32
		want   []string
	}{
		{"even", "90", 3, 0, []string{"30", "30", "30"}},
		{"yen remainder", "100", 3, 0, []string{"34", "33", "33"}},
		{"two remainder units", "101", 3, 0, []string{"34", "34", "33"}},
		{"cents", "10.00", 3, 2, []string{"3.34", "3.33", "3.33"}},
		{"less than one unit each", "0.02", 3, 2, []string{"0.01", "0.01", "0"}},
		{"zero", "0", 4, 2, []string{"0", "0", "0", "0"}},
		{"single", "7.77", 1, 2, []string{"7.77"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := Split(dec(tt.amount), tt.n, tt.scale)
			require.NoError(t, err)
			require.Len(t, shares, len(tt.want))

			sum := decimal.Zero
			for i, s := range shares {
				assert.True(t, s.Equal(dec(tt.want[i])), "share %d = %s, want %s", i, s, tt.want[i])
				sum = sum.Add(s)
			}
			assert.True(t, sum.Equal(dec(tt.amount)), "shares sum %s != %s", sum, tt.amount)
		})
	}
}

func TestSplit_Errors(t *testing.T) {
	_, err := Split(dec("10"), 0, 0)
	assert.ErrorIs(t, err, ErrNoParts)

	_, err = Split(dec("-10"), 2, 0)
	assert.ErrorIs(t, err, ErrNegative)

	_, err = Split(dec("10.5"), 2, 0)
	assert.ErrorIs(t, err, ErrPrecision)
}

func TestSplit_SumsExactly(t *testing.T) {
	for units := int64(0); units < 500; units += 7 {
		amount := decimal.New(units, -2)
		for n := 1; n <= 9; n++ {
			shares, err := Split(amount, n, 2)
			require.NoError(t, err)
			sum := decimal.Zero
			for _, s := range shares {
				sum = sum.Add(s)
			}
			require.True(t, sum.Equal(amount), "%s / %d summed to %s", amount, n, sum)
		}
	}
}

func TestConvert(t *testing.T) {
	assert.Equal(t, "48.00", Convert(dec("1500"), dec("0.032"), 2).StringFixed(2))
	assert.Equal(t, "0.03", Convert(dec("1"), dec("0.032"), 2).StringFixed(2))
	assert.Equal(t, "1563", Convert(dec("50"), dec("31.25"), 0).String())
}

func TestLookup(t *testing.T) {
	c, err := Lookup("jpy")
	require.NoError(t, err)
	assert.Equal(t, "JPY", c.Code)
	assert.Equal(t, int32(0), c.Scale)

	c, err = Lookup("MYR")
	require.NoError(t, err)
	assert.Equal(t, int32(2), c.Scale)
	assert.Equal(t, "RM", c.Symbol)

	_, err = Lookup("XXX")
	assert.Error(t, err)

	assert.Contains(t, Codes(), "JPY")
}

func TestConvertBack(t *testing.T) {
	assert.Equal(t, "1500", ConvertBack(dec("48.00"), dec("0.032"), 0).String())
	assert.Equal(t, "313", ConvertBack(dec("10"), dec("0.032"), 0).String())
}
