package customer

import (
	"github.com/founderspw/somanager/internal/customer/repository"
	"github.com/founderspw/somanager/internal/customer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("customer.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
