package role

import (
	"github.com/smallbiznis/tradedesk/internal/role/service"
	"go.uber.org/fx"
)

var Module = fx.Module("role.service",
	fx.Provide(service.New),
)
