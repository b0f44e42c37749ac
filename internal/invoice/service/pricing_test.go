package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	sodomain "github.com/founderspw/somanager/internal/serviceorder/domain"
)

func line(qty string, cents int64, taxable bool) sodomain.LineEntry {
	return sodomain.LineEntry{
		Name:           "svc",
		Quantity:       decimal.RequireFromString(qty),
		UnitPriceCents: cents,
		Taxable:        taxable,
	}
}

func rate(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeTotals_TaxableExample(t *testing.T) {
	// $19.99 x 3 at 8%: extended $59.97, tax $4.80, total $64.77.
	got := ComputeTotals([]sodomain.LineEntry{line("3", 1999, true)}, rate("0.08"))

	assert.Equal(t, int64(5997), got.SubtotalCents)
	assert.Equal(t, int64(480), got.TaxCents)
	assert.Equal(t, int64(6477), got.TotalCents)
}

func TestComputeTotals_LineRoundingHalfEven(t *testing.T) {
	// 2.5 x $0.05 = 12.5c rounds to 12c; 3.5 x $0.05 = 17.5c rounds to 18c.
	got := ComputeTotals([]sodomain.LineEntry{
		line("2.5", 5, false),
		line("3.5", 5, false),
	}, rate("0"))

	assert.Equal(t, int64(12), got.Lines[0].ExtendedCents)
	assert.Equal(t, int64(18), got.Lines[1].ExtendedCents)
	assert.Equal(t, int64(30), got.SubtotalCents)
}

func TestComputeTotals_TaxRoundsOnceOverAggregate(t *testing.T) {
	// 210c x 0.05 = 10.5c, half-even -> 10c.
	got := ComputeTotals([]sodomain.LineEntry{
		line("1", 105, true),
		line("1", 105, true),
	}, rate("0.05"))

	assert.Equal(t, int64(210), got.SubtotalCents)
	assert.Equal(t, int64(10), got.TaxCents)
	assert.Equal(t, int64(220), got.TotalCents)

	// 230c x 0.05 = 11.5c, half-even -> 12c.
	got = ComputeTotals([]sodomain.LineEntry{
		line("1", 115, true),
		line("1", 115, true),
	}, rate("0.05"))

	assert.Equal(t, int64(12), got.TaxCents)
}

func TestComputeTotals_NonTaxableExcluded(t *testing.T) {
	got := ComputeTotals([]sodomain.LineEntry{
		line("1", 10000, true),
		line("1", 5000, false),
	}, rate("0.10"))

	assert.Equal(t, int64(15000), got.SubtotalCents)
	assert.Equal(t, int64(10000), got.TaxableCents)
	assert.Equal(t, int64(1000), got.TaxCents)
	assert.Equal(t, int64(16000), got.TotalCents)
}

func TestComputeTotals_OverridePriceWins(t *testing.T) {
	override := int64(1500)
	entry := line("2", 1999, true)
	entry.OverridePriceCents = &override

	got := ComputeTotals([]sodomain.LineEntry{entry}, rate("0"))

	assert.Equal(t, int64(1500), got.Lines[0].UnitPriceCents)
	assert.Equal(t, int64(3000), got.SubtotalCents)
}

func TestComputeTotals_OverrideDescriptionWins(t *testing.T) {
	desc := "Custom work"
	entry := line("1", 1000, false)
	entry.OverrideDescription = &desc

	got := ComputeTotals([]sodomain.LineEntry{entry}, rate("0"))

	assert.Equal(t, "Custom work", got.Lines[0].Description)
}

func TestComputeTotals_Deterministic(t *testing.T) {
	entries := []sodomain.LineEntry{
		line("2.5", 1999, true),
		line("0.75", 12345, true),
		line("4", 50, false),
	}

	first := ComputeTotals(entries, rate("0.0825"))
	second := ComputeTotals(entries, rate("0.0825"))

	assert.Equal(t, first.SubtotalCents, second.SubtotalCents)
	assert.Equal(t, first.TaxCents, second.TaxCents)
	assert.Equal(t, first.TotalCents, second.TotalCents)
	assert.Equal(t, first.TotalCents, first.SubtotalCents+first.TaxCents)
}

func TestComputeTotals_EmptyLines(t *testing.T) {
	got := ComputeTotals(nil, rate("0.08"))

	assert.Zero(t, got.SubtotalCents)
	assert.Zero(t, got.TaxCents)
	assert.Zero(t, got.TotalCents)
	assert.Empty(t, got.Lines)
}
