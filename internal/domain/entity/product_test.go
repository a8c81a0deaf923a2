package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/smartbiz/smartbiz-api/pkg/quantity"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestApplyStockDelta(t *testing.T) {
	testCases := []struct {
		name     string
		start    string
		delta    string
		expected string
	}{
		{"simple add", "10", "2.5", "12.5"},
		{"simple remove", "10", "-4", "6"},
		{"exact drain", "3", "-3", "0"},
		{"clamps below zero", "2", "-5", "0"},
		{"clamp from zero", "0", "-1", "0"},
		{"quantizes result", "1", "0.0004", "1"},
		{"rounds half up", "1", "0.0005", "1.001"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := Product{StockQty: dec(tc.start)}
			p.ApplyStockDelta(dec(tc.delta))
			assert.True(t, dec(tc.expected).Equal(p.StockQty),
				"stock = %s, want %s", p.StockQty, tc.expected)
		})
	}
}

func TestIsLowStock(t *testing.T) {
	p := Product{StockQty: dec("5"), LowStockThreshold: dec("5")}
	assert.True(t, p.IsLowStock())

	p.StockQty = dec("5.001")
	assert.False(t, p.IsLowStock())

	p.StockQty = dec("0")
	assert.True(t, p.IsLowStock())
}

func TestPriceFor(t *testing.T) {
	p := Product{
		BaseUnit:     quantity.UnitKilogram,
		PricePerUnit: dec("40"),
	}

	price, err := p.PriceFor(dec("500"), quantity.UnitGram)
	assert.NoError(t, err)
	assert.True(t, dec("20").Equal(price), "price = %s", price)

	price, err = p.PriceFor(dec("2"), quantity.UnitKilogram)
	assert.NoError(t, err)
	assert.True(t, dec("80").Equal(price), "price = %s", price)

	// Non-positive quantities are free, not an error
	price, err = p.PriceFor(dec("0"), quantity.UnitKilogram)
	assert.NoError(t, err)
	assert.True(t, price.IsZero())

	_, err = p.PriceFor(dec("1"), quantity.UnitLitre)
	assert.Error(t, err)
}

func TestStockDisplay(t *testing.T) {
	p := Product{StockQty: dec("1.250"), BaseUnit: quantity.UnitLitre}
	assert.Equal(t, "1.25 ltr", p.StockDisplay())
}
