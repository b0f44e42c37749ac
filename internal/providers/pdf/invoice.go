package pdf

import (
	"bytes"
	"context"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	marotoconfig "github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/founderspw/somanager/internal/config"
	"github.com/founderspw/somanager/internal/invoice/domain"
	"github.com/founderspw/somanager/internal/invoice/format"
)

type marotoGenerator struct{}

func New() Generator {
	return &marotoGenerator{}
}

func (g *marotoGenerator) GenerateInvoice(ctx context.Context, inv *domain.Invoice, business config.InvoicingConfig) (io.Reader, error) {
	cfg := marotoconfig.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(10,
		text.NewCol(12, "Invoice", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	// Invoice Meta
	m.AddRow(18,
		col.New(6).Add(
			text.New("Invoice number: "+inv.Number, props.Text{Top: 0}),
			text.New("Date of issue: "+inv.IssuedAt.Format("Jan 2, 2006"), props.Text{Top: 4}),
			text.New("Date due: "+inv.DueAt.Format("Jan 2, 2006"), props.Text{Top: 8}),
			text.New("Service order: "+inv.OrderID.String(), props.Text{Top: 12}),
		),
		col.New(6),
	)

	// Addresses
	billTo := col.New(4).Add(
		text.New("Bill to", props.Text{Style: fontstyle.Bold}),
		text.New(inv.Customer.Name, props.Text{Top: 5}),
		text.New(inv.Customer.Address, props.Text{Top: 9}),
		text.New(inv.Customer.Email, props.Text{Top: 13}),
		text.New(inv.Customer.Phone, props.Text{Top: 17}),
	)
	performedBy := col.New(4)
	if inv.Staff != nil {
		performedBy = col.New(4).Add(
			text.New("Performed by", props.Text{Style: fontstyle.Bold}),
			text.New(inv.Staff.Name, props.Text{Top: 5}),
			text.New(inv.Staff.Role, props.Text{Top: 9}),
		)
	}
	m.AddRow(36,
		col.New(4).Add(
			text.New(business.BusinessName, props.Text{Style: fontstyle.Bold}),
			text.New(business.BusinessAddress, props.Text{Top: 5}),
			text.New(business.BusinessEmail, props.Text{Top: 13}),
			text.New(business.BusinessPhone, props.Text{Top: 17}),
		),
		billTo,
		performedBy,
	)

	m.AddRow(15,
		text.NewCol(12, format.FormatCents(inv.TotalCents)+" due "+inv.DueAt.Format("Jan 2, 2006"), props.Text{
			Size:  14,
			Style: fontstyle.Bold,
			Top:   5,
		}),
	)

	// Table Header
	m.AddRow(10,
		text.NewCol(6, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	// Items
	for _, line := range inv.Lines {
		desc := line.Description
		if line.Unit != "" {
			desc += " (" + line.Unit + ")"
		}
		m.AddRow(12,
			text.NewCol(6, desc, props.Text{Size: 9}),
			text.NewCol(2, line.Quantity.String(), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, format.FormatCents(line.UnitPriceCents), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, format.FormatCents(line.ExtendedCents), props.Text{Size: 9, Align: align.Right}),
		)
	}

	// Footer Totals
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Subtotal", props.Text{Size: 9}),
		text.NewCol(2, format.FormatCents(inv.SubtotalCents), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Tax", props.Text{Size: 9}),
		text.NewCol(2, format.FormatCents(inv.TaxCents), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Total due", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, format.FormatCents(inv.TotalCents), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	if inv.Notes != "" {
		m.AddRow(20,
			text.NewCol(12, "Notes: "+inv.Notes, props.Text{Size: 9, Top: 5}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}
