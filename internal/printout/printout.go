// Package printout maps document read models onto the pdf and spreadsheet
// providers.
package printout

import (
	"strconv"
	"strings"
	"time"

	"github.com/smallbiznis/tradedesk/internal/document"
	productdomain "github.com/smallbiznis/tradedesk/internal/product/domain"
	settingsdomain "github.com/smallbiznis/tradedesk/internal/settings/domain"
	"github.com/smallbiznis/tradedesk/internal/providers/pdf"
)

const dateLayout = "2006-01-02"

func text(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}

func amount(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func quantity(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func day(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.Format(dateLayout)
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// cell turns optional values into spreadsheet cells; nil stays empty.
func cell[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}

type lineRefs struct {
	values  document.LineValues
	product *productdomain.Product
	unit    *settingsdomain.Unit
}

func lines(refs []lineRefs) ([]pdf.Line, string) {
	out := make([]pdf.Line, 0, len(refs))
	var total float64
	var priced bool
	for _, ref := range refs {
		description := text(ref.values.ProductDescription)
		if description == "" && ref.product != nil {
			description = text(ref.product.Name)
		}
		unit := ""
		if ref.unit != nil {
			unit = ref.unit.OrderUnit
		}
		out = append(out, pdf.Line{
			Description: description,
			Quantity:    quantity(ref.values.Quantity),
			Unit:        unit,
			Price:       amount(ref.values.Price),
			Amount:      amount(ref.values.Total),
		})
		if ref.values.Total != nil {
			total += *ref.values.Total
			priced = true
		}
	}
	if !priced {
		return out, ""
	}
	return out, amount(&total)
}

func customerName(c *document.CustomerSummary) string {
	if c == nil {
		return ""
	}
	return c.CustomerName
}

func portName(p *document.PortSummary) string {
	if p == nil {
		return ""
	}
	return p.PortName
}

func currencyName(c *document.CurrencySummary) string {
	if c == nil {
		return ""
	}
	return c.CurrencyName
}

func termName(t *document.TermSummary) string {
	if t == nil {
		return ""
	}
	return t.Name
}

func bankLine(b *document.BankSummary) string {
	if b == nil {
		return ""
	}
	return b.BankName + " / " + b.AccountNo + " / " + b.SwiftCode
}
