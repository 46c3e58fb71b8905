package providers

import (
	"github.com/smallbiznis/tradedesk/internal/providers/pdf"
	"github.com/smallbiznis/tradedesk/internal/providers/spreadsheet"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	pdf.Module,
	spreadsheet.Module,
)
