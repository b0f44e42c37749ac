package invoice

import (
	"go.uber.org/fx"

	"github.com/founderspw/somanager/internal/invoice/service"
)

var Module = fx.Module("invoice.service",
	fx.Provide(service.New),
)
