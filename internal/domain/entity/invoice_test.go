package entity

import (
	"testing"

	"github.com/smartbiz/smartbiz-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
)

func TestRecalcLine(t *testing.T) {
	testCases := []struct {
		name      string
		uom       string
		qty       string
		unitPrice string
		taxPct    string
		lineTotal string
		taxAmount string
		cgst      string
		sgst      string
	}{
		{"plain line", "1", "2", "50", "0", "100", "0", "0", "0"},
		{"even tax split", "1", "1", "100", "18", "100", "18", "9", "9"},
		{"tax quantized to cents", "1", "1", "99.99", "5", "99.99", "5", "2.5", "2.5"},
		{"odd cent rounds into cgst", "1", "1", "10", "5.5", "10", "0.55", "0.28", "0.27"},
		{"fractional uom", "0.5", "3", "60", "12", "90", "10.8", "5.4", "5.4"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			it := InvoiceItem{
				UOM:        dec(tc.uom),
				Quantity:   dec(tc.qty),
				UnitPrice:  dec(tc.unitPrice),
				TaxPercent: dec(tc.taxPct),
			}
			it.RecalcLine()

			assert.True(t, dec(tc.lineTotal).Equal(it.LineTotal), "line total = %s", it.LineTotal)
			assert.True(t, dec(tc.taxAmount).Equal(it.TaxAmount), "tax = %s", it.TaxAmount)
			assert.True(t, dec(tc.cgst).Equal(it.CGSTAmount), "cgst = %s", it.CGSTAmount)
			assert.True(t, dec(tc.sgst).Equal(it.SGSTAmount), "sgst = %s", it.SGSTAmount)

			// The split must reassemble exactly, rounding included
			assert.True(t, it.TaxAmount.Equal(it.CGSTAmount.Add(it.SGSTAmount)))
		})
	}
}

func TestQuantityInBase(t *testing.T) {
	it := InvoiceItem{UOM: dec("0.5"), Quantity: dec("3")}
	assert.True(t, dec("1.5").Equal(it.QuantityInBase()))

	it = InvoiceItem{UOM: dec("1"), Quantity: dec("7")}
	assert.True(t, dec("7").Equal(it.QuantityInBase()))
}

func TestDeriveInvoiceStatus(t *testing.T) {
	testCases := []struct {
		name     string
		total    string
		paid     string
		expected enum.InvoiceStatus
	}{
		{"nothing paid", "100", "0", enum.InvoiceStatusPending},
		{"partially paid", "100", "40", enum.InvoiceStatusPartial},
		{"fully paid", "100", "100", enum.InvoiceStatusPaid},
		{"overpaid", "100", "120", enum.InvoiceStatusPaid},
		{"zero total zero paid", "0", "0", enum.InvoiceStatusPaid},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, DeriveInvoiceStatus(dec(tc.total), dec(tc.paid)))
		})
	}
}

func TestRecalcTotals(t *testing.T) {
	taxed := InvoiceItem{UOM: dec("1"), Quantity: dec("2"), UnitPrice: dec("100"), TaxPercent: dec("18")}
	taxed.RecalcLine()
	exempt := InvoiceItem{UOM: dec("1"), Quantity: dec("1"), UnitPrice: dec("50"), TaxPercent: dec("0")}
	exempt.RecalcLine()

	items := []InvoiceItem{taxed, exempt}
	payments := []Payment{{Amount: dec("100")}, {Amount: dec("50")}}

	var inv Invoice
	inv.RecalcTotals(items, payments)

	assert.True(t, dec("200").Equal(inv.SubtotalTaxable), "taxable = %s", inv.SubtotalTaxable)
	assert.True(t, dec("50").Equal(inv.SubtotalExempt), "exempt = %s", inv.SubtotalExempt)
	assert.True(t, dec("36").Equal(inv.TaxTotal), "tax = %s", inv.TaxTotal)
	assert.True(t, dec("18").Equal(inv.CGSTTotal))
	assert.True(t, dec("18").Equal(inv.SGSTTotal))
	assert.True(t, dec("286").Equal(inv.Total), "total = %s", inv.Total)
	assert.True(t, dec("150").Equal(inv.AmountPaid))
	assert.Equal(t, enum.InvoiceStatusPartial, inv.Status)

	// Recalculating from the same inputs is a no-op
	before := inv
	inv.RecalcTotals(items, payments)
	assert.True(t, before.Total.Equal(inv.Total))
	assert.True(t, before.TaxTotal.Equal(inv.TaxTotal))
	assert.Equal(t, before.Status, inv.Status)
}

func TestRecalcTotalsEmpty(t *testing.T) {
	var inv Invoice
	inv.RecalcTotals(nil, nil)

	assert.True(t, inv.Total.IsZero())
	assert.Equal(t, enum.InvoiceStatusPaid, inv.Status)
}

func TestRemainingAmount(t *testing.T) {
	inv := Invoice{Total: dec("100"), AmountPaid: dec("40")}
	assert.True(t, dec("60").Equal(inv.RemainingAmount()))

	inv.AmountPaid = dec("120")
	assert.True(t, inv.RemainingAmount().IsZero())
}
