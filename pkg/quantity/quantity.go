package quantity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Unit is a measurement unit a product's stock can be tracked or sold in.
type Unit string

const (
	UnitKilogram   Unit = "kg"
	UnitGram       Unit = "g"
	UnitPiece      Unit = "pcs"
	UnitLitre      Unit = "ltr"
	UnitMillilitre Unit = "ml"
)

// Units lists every supported unit.
var Units = []Unit{UnitKilogram, UnitGram, UnitPiece, UnitLitre, UnitMillilitre}

// IsValid reports whether u is one of the supported units.
func (u Unit) IsValid() bool {
	switch u {
	case UnitKilogram, UnitGram, UnitPiece, UnitLitre, UnitMillilitre:
		return true
	}
	return false
}

func (u Unit) String() string {
	return string(u)
}

// UnsupportedConversionError is returned when two units are dimensionally
// incompatible (e.g. pcs -> kg).
type UnsupportedConversionError struct {
	From Unit
	To   Unit
}

func (e *UnsupportedConversionError) Error() string {
	return fmt.Sprintf("unsupported conversion %s -> %s", e.From, e.To)
}

const (
	stockPlaces = 3
	moneyPlaces = 2
)

var thousand = decimal.NewFromInt(1000)

// QuantizeStock rounds a stock quantity to 3 decimal places, half-up.
func QuantizeStock(d decimal.Decimal) decimal.Decimal {
	return d.Round(stockPlaces)
}

// QuantizeMoney rounds a monetary amount to 2 decimal places, half-up.
func QuantizeMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyPlaces)
}

// Convert converts qty from one unit to another. Only gram<->kilogram and
// millilitre<->litre are convertible; equal units pass through unchanged.
func Convert(qty decimal.Decimal, from, to Unit) (decimal.Decimal, error) {
	if from == to {
		return qty, nil
	}

	switch {
	case from == UnitGram && to == UnitKilogram:
		return qty.Div(thousand), nil
	case from == UnitKilogram && to == UnitGram:
		return qty.Mul(thousand), nil
	case from == UnitMillilitre && to == UnitLitre:
		return qty.Div(thousand), nil
	case from == UnitLitre && to == UnitMillilitre:
		return qty.Mul(thousand), nil
	}

	return decimal.Zero, &UnsupportedConversionError{From: from, To: to}
}

// FormatStock renders a stock quantity without trailing zeros, with the unit
// appended ("100 kg", "1.25 ltr").
func FormatStock(qty decimal.Decimal, unit Unit) string {
	q := QuantizeStock(qty)
	if q.Equal(q.Truncate(0)) {
		return fmt.Sprintf("%s %s", q.Truncate(0).String(), unit)
	}
	return fmt.Sprintf("%s %s", q.String(), unit)
}
