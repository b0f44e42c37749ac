package catalog

import (
	"github.com/founderspw/somanager/internal/catalog/repository"
	"github.com/founderspw/somanager/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
