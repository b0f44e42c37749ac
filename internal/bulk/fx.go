package bulk

import (
	"github.com/founderspw/somanager/internal/bulk/service"
	"go.uber.org/fx"
)

var Module = fx.Module("bulk.service",
	fx.Provide(service.New),
)
