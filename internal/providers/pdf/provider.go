// Package pdf renders invoice documents with maroto.
package pdf

import (
	"context"
	"io"

	"go.uber.org/fx"

	"github.com/founderspw/somanager/internal/config"
	"github.com/founderspw/somanager/internal/invoice/domain"
)

// Generator renders an assembled invoice into a printable document.
type Generator interface {
	GenerateInvoice(ctx context.Context, inv *domain.Invoice, business config.InvoicingConfig) (io.Reader, error)
}

var Module = fx.Module("providers.pdf",
	fx.Provide(New),
)
