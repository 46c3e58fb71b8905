package printout

import (
	"testing"
	"time"

	"github.com/smallbiznis/tradedesk/internal/document"
	invoicedomain "github.com/smallbiznis/tradedesk/internal/invoice/domain"
	productdomain "github.com/smallbiznis/tradedesk/internal/product/domain"
	proformadomain "github.com/smallbiznis/tradedesk/internal/proformainvoice/domain"
	"github.com/smallbiznis/tradedesk/internal/providers/pdf"
	quotationdomain "github.com/smallbiznis/tradedesk/internal/quotation/domain"
	settingsdomain "github.com/smallbiznis/tradedesk/internal/settings/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func ptr[T any](v T) *T { return &v }

func TestQuotationDocument(t *testing.T) {
	date := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	q := quotationdomain.QuotationDetail{
		Quotation: quotationdomain.Quotation{
			QuotationNo: "QT-2025-0001",
			Date:        &date,
			Remark:      ptr("valid 30 days"),
			QuotationProducts: []quotationdomain.QuotationProduct{
				{
					LineValues: document.LineValues{Quantity: ptr(10.0), Price: ptr(5.0), Total: ptr(50.0)},
					Product:    &productdomain.Product{Name: ptr("Cashew W320")},
					Unit:       &settingsdomain.Unit{OrderUnit: "KGS"},
				},
				{LineValues: document.LineValues{ProductDescription: ptr("Sample bag")}},
			},
		},
		ConsigneeDetails: quotationdomain.ConsigneeView{
			ConsigneeDetails: quotationdomain.ConsigneeDetails{Country: "India"},
			Consignee:        &document.CustomerSummary{CustomerName: "Acme"},
		},
	}

	doc := Quotation(q)
	assert.Equal(t, "QUOTATION", doc.Title)
	assert.Equal(t, "QT-2025-0001", doc.Number)
	assert.Equal(t, "2025-03-09", doc.Date)
	assert.Equal(t, "50.00", doc.Total)
	require.Len(t, doc.Lines, 2)
	assert.Equal(t, pdf.Line{Description: "Cashew W320", Quantity: "10", Unit: "KGS", Price: "5.00", Amount: "50.00"}, doc.Lines[0])
	assert.Equal(t, "Sample bag", doc.Lines[1].Description)
	assert.Equal(t, []pdf.Field{{Label: "Consignee", Value: "Acme"}, {Label: "Country", Value: "India"}}, doc.Sections[0].Visible())
	assert.Empty(t, doc.Sections[1].Visible())
}

func TestInvoiceDocumentUsesGrandTotal(t *testing.T) {
	inv := invoicedomain.InvoiceDetail{
		Invoice: invoicedomain.Invoice{
			PINo:              "PI/25/001",
			IsProformaInvoice: true,
			Header: invoicedomain.Header{
				VesselFlightNo: ptr("MV Ocean"),
				ShipmentModel:  datatypes.NewJSONType(&invoicedomain.ShipmentModel{GrandTotal: ptr(7000.0)}),
			},
			InvoiceProducts: []invoicedomain.InvoiceProduct{
				{LineValues: document.LineValues{Total: ptr(6200.0)}},
			},
		},
	}

	doc := Invoice(inv)
	assert.Equal(t, "INVOICE (PROFORMA)", doc.Title)
	assert.Equal(t, "7000.00", doc.Total)
	require.Len(t, doc.Sections, 2)
	assert.Equal(t, "Shipment", doc.Sections[0].Title)
	assert.Equal(t, []pdf.Field{{Label: "Vessel/Flight", Value: "MV Ocean"}}, doc.Sections[0].Visible())
	assert.Equal(t, "Shipment model", doc.Sections[1].Title)
}

func TestSheets(t *testing.T) {
	quotations := QuotationSheet([]quotationdomain.Quotation{{
		QuotationNo:       "QT-2025-0001",
		Version:           2,
		ConsigneeDetails:  datatypes.NewJSONType(quotationdomain.ConsigneeDetails{Country: "India"}),
		QuotationProducts: []quotationdomain.QuotationProduct{{LineValues: document.LineValues{Total: ptr(50.0)}}},
	}})
	require.Len(t, quotations.Rows, 1)
	assert.Equal(t, []any{"QT-2025-0001", nil, "India", "No", 1, 50.0, nil, int64(2)}, quotations.Rows[0])

	proformas := ProformaInvoiceSheet([]proformadomain.ProformaInvoice{{
		PINo:      "PI-9",
		Header:    invoicedomain.Header{Palletised: true},
		Quotation: &quotationdomain.Quotation{QuotationNo: "QT-2025-0002"},
	}})
	assert.Len(t, proformas.Columns, len(headerColumns))
	assert.Equal(t, []any{"PI-9", nil, "QT-2025-0002", nil, "No", "Yes", 0, 0.0, nil}, proformas.Rows[0])

	invoices := InvoiceSheet([]invoicedomain.Invoice{{PINo: "PI-1"}})
	assert.Len(t, invoices.Columns, len(headerColumns)+1)
	assert.Equal(t, "No", invoices.Rows[0][len(headerColumns)])
}
