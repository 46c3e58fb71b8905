package migration

import (
	configurationdomain "github.com/smallbiznis/tradedesk/internal/configuration/domain"
	customerdomain "github.com/smallbiznis/tradedesk/internal/customer/domain"
	invoicedomain "github.com/smallbiznis/tradedesk/internal/invoice/domain"
	organizationdomain "github.com/smallbiznis/tradedesk/internal/organization/domain"
	productdomain "github.com/smallbiznis/tradedesk/internal/product/domain"
	proformadomain "github.com/smallbiznis/tradedesk/internal/proformainvoice/domain"
	quotationdomain "github.com/smallbiznis/tradedesk/internal/quotation/domain"
	referencedomain "github.com/smallbiznis/tradedesk/internal/reference/domain"
	roledomain "github.com/smallbiznis/tradedesk/internal/role/domain"
	settingsdomain "github.com/smallbiznis/tradedesk/internal/settings/domain"
	userdomain "github.com/smallbiznis/tradedesk/internal/user/domain"
)

// Models lists every persisted model in dependency order.
func Models() []any {
	return []any{
		&referencedomain.Country{},
		&organizationdomain.Organization{},
		&roledomain.Role{},
		&userdomain.User{},
		&customerdomain.Customer{},
		&settingsdomain.Port{},
		&settingsdomain.Currency{},
		&settingsdomain.PaymentTerm{},
		&settingsdomain.ShipmentTerm{},
		&settingsdomain.Material{},
		&settingsdomain.PackageType{},
		&settingsdomain.BankDetail{},
		&settingsdomain.Unit{},
		&settingsdomain.QualitySpeculation{},
		&productdomain.Product{},
		&quotationdomain.Quotation{},
		&quotationdomain.QuotationProduct{},
		&invoicedomain.Invoice{},
		&invoicedomain.InvoiceProduct{},
		&invoicedomain.InvoiceContainer{},
		&proformadomain.ProformaInvoice{},
		&proformadomain.ProformaInvoiceProduct{},
		&proformadomain.ProformaInvoiceContainer{},
		&configurationdomain.InternationalInvoiceConfiguration{},
		&configurationdomain.DomesticInvoiceConfiguration{},
	}
}
