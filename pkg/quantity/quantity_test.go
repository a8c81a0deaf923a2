package quantity

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestQuantizeStock(t *testing.T) {
	testCases := []struct {
		name     string
		in       string
		expected string
	}{
		{"already three places", "1.250", "1.25"},
		{"rounds half up", "0.0005", "0.001"},
		{"rounds down below half", "0.0004", "0"},
		{"rounds up above half", "2.00071", "2.001"},
		{"whole number", "100", "100"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, dec(tc.expected).Equal(QuantizeStock(dec(tc.in))),
				"QuantizeStock(%s) = %s, want %s", tc.in, QuantizeStock(dec(tc.in)), tc.expected)
		})
	}
}

func TestQuantizeMoney(t *testing.T) {
	testCases := []struct {
		name     string
		in       string
		expected string
	}{
		{"rounds half up", "10.005", "10.01"},
		{"rounds down", "10.004", "10"},
		{"exact cents untouched", "99.99", "99.99"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, dec(tc.expected).Equal(QuantizeMoney(dec(tc.in))),
				"QuantizeMoney(%s) = %s, want %s", tc.in, QuantizeMoney(dec(tc.in)), tc.expected)
		})
	}
}

func TestConvert(t *testing.T) {
	testCases := []struct {
		name     string
		qty      string
		from     Unit
		to       Unit
		expected string
		wantErr  bool
	}{
		{"identity", "5", UnitPiece, UnitPiece, "5", false},
		{"gram to kilogram", "500", UnitGram, UnitKilogram, "0.5", false},
		{"kilogram to gram", "1.5", UnitKilogram, UnitGram, "1500", false},
		{"millilitre to litre", "250", UnitMillilitre, UnitLitre, "0.25", false},
		{"litre to millilitre", "2", UnitLitre, UnitMillilitre, "2000", false},
		{"piece to kilogram unsupported", "1", UnitPiece, UnitKilogram, "", true},
		{"gram to litre unsupported", "1", UnitGram, UnitLitre, "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Convert(dec(tc.qty), tc.from, tc.to)
			if tc.wantErr {
				assert.Error(t, err)
				var convErr *UnsupportedConversionError
				assert.True(t, errors.As(err, &convErr))
				assert.Equal(t, tc.from, convErr.From)
				assert.Equal(t, tc.to, convErr.To)
				return
			}
			assert.NoError(t, err)
			assert.True(t, dec(tc.expected).Equal(got), "Convert = %s, want %s", got, tc.expected)
		})
	}
}

func TestUnitIsValid(t *testing.T) {
	for _, u := range Units {
		assert.True(t, u.IsValid())
	}
	assert.False(t, Unit("boxes").IsValid())
}

func TestFormatStock(t *testing.T) {
	assert.Equal(t, "100 kg", FormatStock(dec("100.000"), UnitKilogram))
	assert.Equal(t, "1.25 ltr", FormatStock(dec("1.250"), UnitLitre))
	assert.Equal(t, "0 pcs", FormatStock(dec("0"), UnitPiece))
}
