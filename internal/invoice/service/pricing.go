package service

import (
	"github.com/shopspring/decimal"

	"github.com/founderspw/somanager/internal/invoice/domain"
	sodomain "github.com/founderspw/somanager/internal/serviceorder/domain"
)

// Totals is the aggregate result of pricing an order's lines.
type Totals struct {
	Lines         []domain.Line
	SubtotalCents int64
	TaxableCents  int64
	TaxCents      int64
	TotalCents    int64
}

// ComputeTotals prices the frozen order lines. Each extended amount is
// rounded half-to-even at the cent. Tax is computed once over the
// taxable subtotal, not per line, and rounded half-to-even as well.
// The function is pure and deterministic for a given input.
func ComputeTotals(entries []sodomain.LineEntry, taxRate decimal.Decimal) Totals {
	t := Totals{Lines: make([]domain.Line, 0, len(entries))}

	var taxable decimal.Decimal
	for _, e := range entries {
		price := e.EffectiveUnitPriceCents()
		extended := e.Quantity.
			Mul(decimal.NewFromInt(price)).
			RoundBank(0)
		extCents := extended.IntPart()

		desc := e.Name
		if e.OverrideDescription != nil {
			desc = *e.OverrideDescription
		}

		t.Lines = append(t.Lines, domain.Line{
			Name:           e.Name,
			Description:    desc,
			Unit:           e.Unit,
			Quantity:       e.Quantity,
			UnitPriceCents: price,
			Taxable:        e.Taxable,
			ExtendedCents:  extCents,
		})

		t.SubtotalCents += extCents
		if e.Taxable {
			taxable = taxable.Add(extended)
		}
	}

	t.TaxableCents = taxable.IntPart()
	t.TaxCents = taxable.Mul(taxRate).RoundBank(0).IntPart()
	t.TotalCents = t.SubtotalCents + t.TaxCents
	return t
}
