package printout

import (
	"github.com/smallbiznis/tradedesk/internal/providers/pdf"
	"github.com/smallbiznis/tradedesk/internal/providers/spreadsheet"
	quotationdomain "github.com/smallbiznis/tradedesk/internal/quotation/domain"
)

func Quotation(q quotationdomain.QuotationDetail) pdf.Document {
	refs := make([]lineRefs, 0, len(q.QuotationProducts))
	for _, p := range q.QuotationProducts {
		refs = append(refs, lineRefs{values: p.LineValues, product: p.Product, unit: p.Unit})
	}
	items, total := lines(refs)

	c := q.ConsigneeDetails
	s := q.ShipmentDetails
	return pdf.Document{
		Title:  "QUOTATION",
		Number: q.QuotationNo,
		Date:   day(q.Date),
		Sections: []pdf.Section{
			{Title: "Consignee", Fields: []pdf.Field{
				{Label: "Consignee", Value: customerName(c.Consignee)},
				{Label: "Buyer order no", Value: text(c.BuyerOrderNo)},
				{Label: "Notify party", Value: customerName(c.NotifyParty)},
				{Label: "Order date", Value: text(c.OrderDate)},
				{Label: "Country", Value: c.Country},
				{Label: "Port", Value: portName(c.Port)},
			}},
			{Title: "Shipment", Fields: []pdf.Field{
				{Label: "Origin", Value: text(s.CountryOfOrigin)},
				{Label: "Loading", Value: text(s.PlaceOfLoading)},
				{Label: "Discharge", Value: text(s.PortOfDischarge)},
				{Label: "Vessel/Flight", Value: text(s.VesselFlightNo)},
				{Label: "Currency", Value: currencyName(s.Currency)},
				{Label: "Shipment term", Value: termName(s.ShipmentTerm)},
				{Label: "Payment term", Value: termName(s.PaymentTerm)},
				{Label: "Shipment period", Value: text(s.ShipmentPeriod)},
			}},
		},
		Lines: items,
		Total: total,
		Notes: []pdf.Field{
			{Label: "Bank", Value: bankLine(s.Bank)},
			{Label: "Remark", Value: text(q.Remark)},
		},
	}
}

func QuotationSheet(items []quotationdomain.Quotation) spreadsheet.Sheet {
	sheet := spreadsheet.Sheet{
		Name:  "Quotations",
		Title: "Quotations",
		Columns: []spreadsheet.Column{
			{Header: "Quotation No", Width: 20},
			{Header: "Date", Width: 12},
			{Header: "Country"},
			{Header: "Sales Broker", Width: 12},
			{Header: "Lines", Width: 8},
			{Header: "Total", Width: 14},
			{Header: "Remark", Width: 30},
			{Header: "Version", Width: 8},
		},
	}
	for _, q := range items {
		var total float64
		for _, p := range q.QuotationProducts {
			if p.Total != nil {
				total += *p.Total
			}
		}
		sheet.Rows = append(sheet.Rows, []any{
			q.QuotationNo,
			cell(q.Date),
			q.ConsigneeDetails.Data().Country,
			yesNo(q.SalesBroker),
			len(q.QuotationProducts),
			total,
			cell(q.Remark),
			q.Version,
		})
	}
	return sheet
}
