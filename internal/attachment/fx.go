package attachment

import (
	"go.uber.org/fx"

	"github.com/founderspw/somanager/internal/attachment/service"
)

var Module = fx.Module("attachment.service",
	fx.Provide(service.New),
)
