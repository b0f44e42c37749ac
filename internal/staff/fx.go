package staff

import (
	"github.com/founderspw/somanager/internal/staff/repository"
	"github.com/founderspw/somanager/internal/staff/service"
	"go.uber.org/fx"
)

var Module = fx.Module("staff.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
