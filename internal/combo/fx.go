package combo

import (
	"github.com/smallbiznis/tradedesk/internal/combo/service"
	"go.uber.org/fx"
)

var Module = fx.Module("combo.service",
	fx.Provide(service.New),
)
