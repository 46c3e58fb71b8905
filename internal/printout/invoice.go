package printout

import (
	invoicedomain "github.com/smallbiznis/tradedesk/internal/invoice/domain"
	proformadomain "github.com/smallbiznis/tradedesk/internal/proformainvoice/domain"
	"github.com/smallbiznis/tradedesk/internal/providers/pdf"
	"github.com/smallbiznis/tradedesk/internal/providers/spreadsheet"
)

func Invoice(inv invoicedomain.InvoiceDetail) pdf.Document {
	refs := make([]lineRefs, 0, len(inv.InvoiceProducts))
	for _, p := range inv.InvoiceProducts {
		refs = append(refs, lineRefs{values: p.LineValues, product: p.Product, unit: p.Unit})
	}
	title := "COMMERCIAL INVOICE"
	if inv.IsProformaInvoice {
		title = "INVOICE (PROFORMA)"
	}
	return headerDocument(title, inv.PINo, inv.Header, inv.ConsigneeDetails, inv.ShipmentDetails, refs)
}

func ProformaInvoice(pi proformadomain.ProformaInvoiceDetail) pdf.Document {
	refs := make([]lineRefs, 0, len(pi.ProformaInvoiceProducts))
	for _, p := range pi.ProformaInvoiceProducts {
		refs = append(refs, lineRefs{values: p.LineValues, product: p.Product, unit: p.Unit})
	}
	return headerDocument("PROFORMA INVOICE", pi.PINo, pi.Header, pi.ConsigneeDetails, pi.ShipmentDetails, refs)
}

func headerDocument(title, number string, h invoicedomain.Header, c *invoicedomain.ConsigneeView, s *invoicedomain.ShipmentView, refs []lineRefs) pdf.Document {
	items, total := lines(refs)
	doc := pdf.Document{
		Title:  title,
		Number: number,
		Date:   day(h.Date),
		Lines:  items,
		Total:  total,
	}

	if c != nil {
		doc.Sections = append(doc.Sections, pdf.Section{Title: "Consignee", Fields: []pdf.Field{
			{Label: "Consignee", Value: customerName(c.Consignee)},
			{Label: "Country", Value: text(c.Country)},
			{Label: "Final destination", Value: portName(c.FinalDestinationPort)},
		}})
	}
	shipping := pdf.Section{Title: "Shipment", Fields: []pdf.Field{
		{Label: "Vessel/Flight", Value: text(h.VesselFlightNo)},
		{Label: "Place of receipt", Value: text(h.PlaceOfReceiptByPreCarrier)},
		{Label: "Production date", Value: day(h.ProductionDate)},
		{Label: "Expiry date", Value: day(h.ProductionExpiryDate)},
	}}
	if s != nil {
		shipping.Fields = append(shipping.Fields,
			pdf.Field{Label: "Origin", Value: text(s.CountryOfOrigin)},
			pdf.Field{Label: "Pre-carriage by", Value: text(s.PreCarriageBy)},
			pdf.Field{Label: "Loading", Value: text(s.CountryOfLoading)},
			pdf.Field{Label: "Discharge", Value: text(s.PortOfDischarge)},
			pdf.Field{Label: "Currency", Value: currencyName(s.Currency)},
			pdf.Field{Label: "Conversion rate", Value: quantity(s.ConversionRate)},
			pdf.Field{Label: "Shipment term", Value: termName(s.ShipmentTerm)},
			pdf.Field{Label: "Payment term", Value: termName(s.PaymentTerm)},
		)
		doc.Notes = append(doc.Notes, pdf.Field{Label: "Bank", Value: bankLine(s.Bank)})
	}
	doc.Sections = append(doc.Sections, shipping)

	if model := h.ShipmentModel.Data(); model != nil {
		doc.Sections = append(doc.Sections, pdf.Section{Title: "Shipment model", Fields: []pdf.Field{
			{Label: "Mode", Value: text(model.ShipmentMode)},
			{Label: "20' FCL", Value: text(model.Ft20FCL)},
			{Label: "40' FCL", Value: text(model.Ft40FCL)},
			{Label: "40' HC", Value: text(model.Ft40HC)},
			{Label: "Net weight", Value: quantity(model.TotalNetWeight)},
			{Label: "Gross weight", Value: quantity(model.TotalGrossWeight)},
			{Label: "Freight", Value: amount(model.Freight)},
			{Label: "Insurance", Value: amount(model.Insurance)},
		}})
		if model.GrandTotal != nil {
			doc.Total = amount(model.GrandTotal)
		}
	}

	doc.Notes = append(doc.Notes,
		pdf.Field{Label: "Remarks", Value: text(h.Remarks)},
		pdf.Field{Label: "Sold by", Value: text(h.SoldBy)},
	)
	return doc
}

var headerColumns = []spreadsheet.Column{
	{Header: "PI No", Width: 20},
	{Header: "Date", Width: 12},
	{Header: "Quotation", Width: 20},
	{Header: "Vessel/Flight", Width: 16},
	{Header: "Sales Broker", Width: 12},
	{Header: "Palletised", Width: 10},
	{Header: "Lines", Width: 8},
	{Header: "Total", Width: 14},
	{Header: "Remarks", Width: 30},
}

func headerRow(piNo string, h invoicedomain.Header, quotationNo string, values []float64) []any {
	var total float64
	for _, v := range values {
		total += v
	}
	var quotation any
	if quotationNo != "" {
		quotation = quotationNo
	}
	return []any{
		piNo,
		cell(h.Date),
		quotation,
		cell(h.VesselFlightNo),
		yesNo(h.SalesBroker),
		yesNo(h.Palletised),
		len(values),
		total,
		cell(h.Remarks),
	}
}

func InvoiceSheet(items []invoicedomain.Invoice) spreadsheet.Sheet {
	columns := append([]spreadsheet.Column{}, headerColumns...)
	columns = append(columns, spreadsheet.Column{Header: "Proforma", Width: 10})
	sheet := spreadsheet.Sheet{Name: "Invoices", Title: "Invoices", Columns: columns}
	for _, inv := range items {
		values := make([]float64, 0, len(inv.InvoiceProducts))
		for _, p := range inv.InvoiceProducts {
			values = append(values, total(p.Total))
		}
		quotationNo := ""
		if inv.Quotation != nil {
			quotationNo = inv.Quotation.QuotationNo
		}
		row := headerRow(inv.PINo, inv.Header, quotationNo, values)
		sheet.Rows = append(sheet.Rows, append(row, yesNo(inv.IsProformaInvoice)))
	}
	return sheet
}

func ProformaInvoiceSheet(items []proformadomain.ProformaInvoice) spreadsheet.Sheet {
	sheet := spreadsheet.Sheet{Name: "Proforma Invoices", Title: "Proforma invoices", Columns: headerColumns}
	for _, pi := range items {
		values := make([]float64, 0, len(pi.ProformaInvoiceProducts))
		for _, p := range pi.ProformaInvoiceProducts {
			values = append(values, total(p.Total))
		}
		quotationNo := ""
		if pi.Quotation != nil {
			quotationNo = pi.Quotation.QuotationNo
		}
		sheet.Rows = append(sheet.Rows, headerRow(pi.PINo, pi.Header, quotationNo, values))
	}
	return sheet
}

func total(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
