package serviceorder

import (
	"github.com/founderspw/somanager/internal/serviceorder/repository"
	"github.com/founderspw/somanager/internal/serviceorder/service"
	"go.uber.org/fx"
)

var Module = fx.Module("serviceorder.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
