package proformainvoice

import (
	"github.com/smallbiznis/tradedesk/internal/proformainvoice/repository"
	"github.com/smallbiznis/tradedesk/internal/proformainvoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("proformainvoice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
