package domain

import (
	"context"

	"github.com/smallbiznis/tradedesk/pkg/optional"
)

// Service keeps one international and one domestic configuration per
// organization. Super Admin callers without an organization manage the
// global configuration.
type Service interface {
	CreateInternational(ctx context.Context, req CreateInternationalRequest) (*InternationalInvoiceConfiguration, error)
	GetInternational(ctx context.Context) (*InternationalInvoiceConfiguration, error)
	UpdateInternational(ctx context.Context, req UpdateInternationalRequest) (*InternationalInvoiceConfiguration, error)

	CreateDomestic(ctx context.Context, req CreateDomesticRequest) (*DomesticInvoiceConfiguration, error)
	GetDomestic(ctx context.Context) (*DomesticInvoiceConfiguration, error)
	UpdateDomestic(ctx context.Context, req UpdateDomesticRequest) (*DomesticInvoiceConfiguration, error)
}

type CreateInternationalRequest struct {
	PinCode                     *string `json:"pinCode"`
	DeclarationExport           *string `json:"declarationExport"`
	DeclarationDomestic         *string `json:"declarationDomestic"`
	InvoiceSeriesSettingBasedOn *string `json:"invoiceSeriesSettingBasedOn"`
	PiSeriesSettingBasedOn      *string `json:"piSeriesSettingBasedOn"`
	InvoicePrefix               *string `json:"invoicePrefix"`
	InvoiceStartFrom            *int64  `json:"invoiceStartFrom"`
	InvoiceSuffix               *string `json:"invoiceSuffix"`
	PiPrefix                    *string `json:"piPrefix"`
	PiStartFrom                 *int64  `json:"piStartFrom"`
	PiSuffix                    *string `json:"piSuffix"`
	QuotationPrefix             *string `json:"quotationPrefix"`
	QuotationStartFrom          *int64  `json:"quotationStartFrom"`
	QuotationSuffix             *string `json:"quotationSuffix"`
	PoPrefix                    *string `json:"poPrefix"`
	PoStartFrom                 *int64  `json:"poStartFrom"`
	PoSuffix                    *string `json:"poSuffix"`
	ServicePoPrefix             *string `json:"servicePoPrefix"`
	ServicePoStartFrom          *int64  `json:"servicePoStartFrom"`
	ServicePoSuffix             *string `json:"servicePoSuffix"`
	PiInvoiceNoEditing          *bool   `json:"piInvoiceNoEditing"`
}

type UpdateInternationalRequest struct {
	PinCode                     optional.Value[string] `json:"pinCode"`
	DeclarationExport           optional.Value[string] `json:"declarationExport"`
	DeclarationDomestic         optional.Value[string] `json:"declarationDomestic"`
	InvoiceSeriesSettingBasedOn optional.Value[string] `json:"invoiceSeriesSettingBasedOn"`
	PiSeriesSettingBasedOn      optional.Value[string] `json:"piSeriesSettingBasedOn"`
	InvoicePrefix               optional.Value[string] `json:"invoicePrefix"`
	InvoiceStartFrom            optional.Value[int64]  `json:"invoiceStartFrom"`
	InvoiceSuffix               optional.Value[string] `json:"invoiceSuffix"`
	PiPrefix                    optional.Value[string] `json:"piPrefix"`
	PiStartFrom                 optional.Value[int64]  `json:"piStartFrom"`
	PiSuffix                    optional.Value[string] `json:"piSuffix"`
	QuotationPrefix             optional.Value[string] `json:"quotationPrefix"`
	QuotationStartFrom          optional.Value[int64]  `json:"quotationStartFrom"`
	QuotationSuffix             optional.Value[string] `json:"quotationSuffix"`
	PoPrefix                    optional.Value[string] `json:"poPrefix"`
	PoStartFrom                 optional.Value[int64]  `json:"poStartFrom"`
	PoSuffix                    optional.Value[string] `json:"poSuffix"`
	ServicePoPrefix             optional.Value[string] `json:"servicePoPrefix"`
	ServicePoStartFrom          optional.Value[int64]  `json:"servicePoStartFrom"`
	ServicePoSuffix             optional.Value[string] `json:"servicePoSuffix"`
	PiInvoiceNoEditing          optional.Value[bool]   `json:"piInvoiceNoEditing"`
}

type CreateDomesticRequest struct {
	DomesticInvoicePrefix    *string `json:"domesticInvoicePrefix"`
	DomesticInvoiceStartFrom *int64  `json:"domesticInvoiceStartFrom"`
	DomesticInvoiceSuffix    *string `json:"domesticInvoiceSuffix"`
	DomesticPiPrefix         *string `json:"domesticPiPrefix"`
	DomesticPiStartFrom      *int64  `json:"domesticPiStartFrom"`
	DomesticPiSuffix         *string `json:"domesticPiSuffix"`
}

type UpdateDomesticRequest struct {
	DomesticInvoicePrefix    optional.Value[string] `json:"domesticInvoicePrefix"`
	DomesticInvoiceStartFrom optional.Value[int64]  `json:"domesticInvoiceStartFrom"`
	DomesticInvoiceSuffix    optional.Value[string] `json:"domesticInvoiceSuffix"`
	DomesticPiPrefix         optional.Value[string] `json:"domesticPiPrefix"`
	DomesticPiStartFrom      optional.Value[int64]  `json:"domesticPiStartFrom"`
	DomesticPiSuffix         optional.Value[string] `json:"domesticPiSuffix"`
}
