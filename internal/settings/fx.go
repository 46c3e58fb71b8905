package settings

import (
	"github.com/smallbiznis/tradedesk/internal/settings/service"
	"go.uber.org/fx"
)

var Module = fx.Module("settings.service",
	fx.Provide(
		service.NewPortService,
		service.NewCurrencyService,
		service.NewPaymentTermService,
		service.NewShipmentTermService,
		service.NewMaterialService,
		service.NewPackageTypeService,
		service.NewBankDetailService,
		service.NewUnitService,
		service.NewQualitySpeculationService,
	),
)
