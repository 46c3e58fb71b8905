package product

import (
	"github.com/smallbiznis/tradedesk/internal/product/repository"
	"github.com/smallbiznis/tradedesk/internal/product/service"
	"go.uber.org/fx"
)

var Module = fx.Module("product.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
	fx.Provide(service.NewPackageService),
)
