package configuration

import (
	"github.com/smallbiznis/tradedesk/internal/configuration/service"
	"go.uber.org/fx"
)

var Module = fx.Module("configuration.service",
	fx.Provide(service.New),
)
