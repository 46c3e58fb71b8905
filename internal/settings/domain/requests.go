package domain

import (
	"strings"

	"github.com/smallbiznis/tradedesk/pkg/optional"
	"github.com/smallbiznis/tradedesk/pkg/validation"
	"gorm.io/datatypes"
)

func trimPtr(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}

func boolIfSet(c *validation.Collector, field string, v optional.Value[bool]) {
	if v.Set && v.Null {
		c.Add(field, validation.CodeInvalid, field+" must be true or false")
	}
}

type CreatePortRequest struct {
	Country  string  `json:"country"`
	PortName string  `json:"portName"`
	PortCode *string `json:"portCode"`
}

func (r CreatePortRequest) Build() (Port, error) {
	var c validation.Collector
	c.Required("country", r.Country)
	c.Required("portName", r.PortName)
	return Port{
		Country:  strings.TrimSpace(r.Country),
		PortName: strings.TrimSpace(r.PortName),
		PortCode: trimPtr(r.PortCode),
	}, c.Err()
}

type UpdatePortRequest struct {
	Country  optional.Value[string] `json:"country"`
	PortName optional.Value[string] `json:"portName"`
	PortCode optional.Value[string] `json:"portCode"`
}

func (r UpdatePortRequest) Columns() (map[string]any, error) {
	var c validation.Collector
	c.RequiredIfSet("country", r.Country)
	c.RequiredIfSet("portName", r.PortName)
	values := map[string]any{}
	r.Country.Apply(values, "country")
	r.PortName.Apply(values, "port_name")
	r.PortCode.Apply(values, "port_code")
	return values, c.Err()
}

type CreateCurrencyRequest struct {
	CurrencyName  string  `json:"currencyName"`
	Symbol        *string `json:"symbol"`
	Words         *string `json:"words"`
	MarkAsDefault bool    `json:"markAsDefault"`
}

func (r CreateCurrencyRequest) Build() (Currency, error) {
	var c validation.Collector
	c.Required("currencyName", r.CurrencyName)
	return Currency{
		CurrencyName:  strings.TrimSpace(r.CurrencyName),
		Symbol:        trimPtr(r.Symbol),
		Words:         trimPtr(r.Words),
		MarkAsDefault: r.MarkAsDefault,
	}, c.Err()
}

type UpdateCurrencyRequest struct {
	CurrencyName  optional.Value[string] `json:"currencyName"`
	Symbol        optional.Value[string] `json:"symbol"`
	Words         optional.Value[string] `json:"words"`
	MarkAsDefault optional.Value[bool]   `json:"markAsDefault"`
}

func (r UpdateCurrencyRequest) Columns() (map[string]any, error) {
	var c validation.Collector
	c.RequiredIfSet("currencyName", r.CurrencyName)
	boolIfSet(&c, "markAsDefault", r.MarkAsDefault)
	values := map[string]any{}
	r.CurrencyName.Apply(values, "currency_name")
	r.Symbol.Apply(values, "symbol")
	r.Words.Apply(values, "words")
	r.MarkAsDefault.Apply(values, "mark_as_default")
	return values, c.Err()
}

// TermRequest creates a payment or shipment term.
type TermRequest struct {
	Name          string  `json:"name"`
	Term          *string `json:"term"`
	MarkAsDefault bool    `json:"markAsDefault"`
}

func (r TermRequest) validate() error {
	var c validation.Collector
	c.Required("name", r.Name)
	return c.Err()
}

type CreatePaymentTermRequest struct{ TermRequest }

func (r CreatePaymentTermRequest) Build() (PaymentTerm, error) {
	return PaymentTerm{
		Name:          strings.TrimSpace(r.Name),
		Term:          trimPtr(r.Term),
		MarkAsDefault: r.MarkAsDefault,
	}, r.validate()
}

type CreateShipmentTermRequest struct{ TermRequest }

func (r CreateShipmentTermRequest) Build() (ShipmentTerm, error) {
	return ShipmentTerm{
		Name:          strings.TrimSpace(r.Name),
		Term:          trimPtr(r.Term),
		MarkAsDefault: r.MarkAsDefault,
	}, r.validate()
}

// UpdateTermRequest patches a payment or shipment term.
type UpdateTermRequest struct {
	Name          optional.Value[string] `json:"name"`
	Term          optional.Value[string] `json:"term"`
	MarkAsDefault optional.Value[bool]   `json:"markAsDefault"`
}

func (r UpdateTermRequest) Columns() (map[string]any, error) {
	var c validation.Collector
	c.RequiredIfSet("name", r.Name)
	boolIfSet(&c, "markAsDefault", r.MarkAsDefault)
	values := map[string]any{}
	r.Name.Apply(values, "name")
	r.Term.Apply(values, "term")
	r.MarkAsDefault.Apply(values, "mark_as_default")
	return values, c.Err()
}

type CreateMaterialRequest struct {
	MaterialName  string `json:"materialName"`
	MarkAsDefault bool   `json:"markAsDefault"`
}

func (r CreateMaterialRequest) Build() (Material, error) {
	var c validation.Collector
	c.Required("materialName", r.MaterialName)
	return Material{
		MaterialName:  strings.TrimSpace(r.MaterialName),
		MarkAsDefault: r.MarkAsDefault,
	}, c.Err()
}

type UpdateMaterialRequest struct {
	MaterialName  optional.Value[string] `json:"materialName"`
	MarkAsDefault optional.Value[bool]   `json:"markAsDefault"`
}

func (r UpdateMaterialRequest) Columns() (map[string]any, error) {
	var c validation.Collector
	c.RequiredIfSet("materialName", r.MaterialName)
	boolIfSet(&c, "markAsDefault", r.MarkAsDefault)
	values := map[string]any{}
	r.MaterialName.Apply(values, "material_name")
	r.MarkAsDefault.Apply(values, "mark_as_default")
	return values, c.Err()
}

type CreatePackageTypeRequest struct {
	PackageType   string `json:"packageType"`
	MarkAsDefault bool   `json:"markAsDefault"`
}

func (r CreatePackageTypeRequest) Build() (PackageType, error) {
	var c validation.Collector
	c.Required("packageType", r.PackageType)
	return PackageType{
		PackageType:   strings.TrimSpace(r.PackageType),
		MarkAsDefault: r.MarkAsDefault,
	}, c.Err()
}

type UpdatePackageTypeRequest struct {
	PackageType   optional.Value[string] `json:"packageType"`
	MarkAsDefault optional.Value[bool]   `json:"markAsDefault"`
}

func (r UpdatePackageTypeRequest) Columns() (map[string]any, error) {
	var c validation.Collector
	c.RequiredIfSet("packageType", r.PackageType)
	boolIfSet(&c, "markAsDefault", r.MarkAsDefault)
	values := map[string]any{}
	r.PackageType.Apply(values, "package_type")
	r.MarkAsDefault.Apply(values, "mark_as_default")
	return values, c.Err()
}

type CreateBankDetailRequest struct {
	BankName        string  `json:"bankName"`
	AccountNo       string  `json:"accountNo"`
	SwiftCode       string  `json:"swiftCode"`
	OtherDetails    *string `json:"otherDetails"`
	IfscCode        string  `json:"ifscCode"`
	IsVostroPayment string  `json:"isVostroPayment"`
	BeneficiaryName string  `json:"beneficiaryName"`
	AccountType     string  `json:"accountType"`
	MarkAsDefault   bool    `json:"markAsDefault"`
	AdCode          string  `json:"adCode"`
	VostroType      *string `json:"vostroType"`
}

func (r CreateBankDetailRequest) Build() (BankDetail, error) {
	var c validation.Collector
	c.Required("bankName", r.BankName)
	c.Required("accountNo", r.AccountNo)
	c.Required("swiftCode", r.SwiftCode)
	c.Required("ifscCode", r.IfscCode)
	c.Required("beneficiaryName", r.BeneficiaryName)
	c.Required("adCode", r.AdCode)

	vostro := strings.TrimSpace(r.IsVostroPayment)
	if vostro == "" {
		vostro = "N"
	}
	accountType := strings.TrimSpace(r.AccountType)
	if accountType == "" {
		accountType = "CURRENT ACCOUNT"
	}
	return BankDetail{
		BankName:        strings.TrimSpace(r.BankName),
		AccountNo:       strings.TrimSpace(r.AccountNo),
		SwiftCode:       strings.TrimSpace(r.SwiftCode),
		OtherDetails:    trimPtr(r.OtherDetails),
		IfscCode:        strings.TrimSpace(r.IfscCode),
		IsVostroPayment: vostro,
		BeneficiaryName: strings.TrimSpace(r.BeneficiaryName),
		AccountType:     accountType,
		MarkAsDefault:   r.MarkAsDefault,
		AdCode:          strings.TrimSpace(r.AdCode),
		VostroType:      trimPtr(r.VostroType),
	}, c.Err()
}

type UpdateBankDetailRequest struct {
	BankName        optional.Value[string] `json:"bankName"`
	AccountNo       optional.Value[string] `json:"accountNo"`
	SwiftCode       optional.Value[string] `json:"swiftCode"`
	OtherDetails    optional.Value[string] `json:"otherDetails"`
	IfscCode        optional.Value[string] `json:"ifscCode"`
	IsVostroPayment optional.Value[string] `json:"isVostroPayment"`
	BeneficiaryName optional.Value[string] `json:"beneficiaryName"`
	AccountType     optional.Value[string] `json:"accountType"`
	MarkAsDefault   optional.Value[bool]   `json:"markAsDefault"`
	AdCode          optional.Value[string] `json:"adCode"`
	VostroType      optional.Value[string] `json:"vostroType"`
}

func (r UpdateBankDetailRequest) Columns() (map[string]any, error) {
	var c validation.Collector
	c.RequiredIfSet("bankName", r.BankName)
	c.RequiredIfSet("accountNo", r.AccountNo)
	c.RequiredIfSet("swiftCode", r.SwiftCode)
	c.RequiredIfSet("ifscCode", r.IfscCode)
	c.RequiredIfSet("isVostroPayment", r.IsVostroPayment)
	c.RequiredIfSet("beneficiaryName", r.BeneficiaryName)
	c.RequiredIfSet("accountType", r.AccountType)
	c.RequiredIfSet("adCode", r.AdCode)
	boolIfSet(&c, "markAsDefault", r.MarkAsDefault)

	values := map[string]any{}
	r.BankName.Apply(values, "bank_name")
	r.AccountNo.Apply(values, "account_no")
	r.SwiftCode.Apply(values, "swift_code")
	r.OtherDetails.Apply(values, "other_details")
	r.IfscCode.Apply(values, "ifsc_code")
	r.IsVostroPayment.Apply(values, "is_vostro_payment")
	r.BeneficiaryName.Apply(values, "beneficiary_name")
	r.AccountType.Apply(values, "account_type")
	r.MarkAsDefault.Apply(values, "mark_as_default")
	r.AdCode.Apply(values, "ad_code")
	r.VostroType.Apply(values, "vostro_type")
	return values, c.Err()
}

type CreateUnitRequest struct {
	OrderUnit string        `json:"orderUnit"`
	Default   bool          `json:"default"`
	Advanced  *UnitAdvanced `json:"advanced"`
}

func (r CreateUnitRequest) Build() (Unit, error) {
	var c validation.Collector
	c.Required("orderUnit", r.OrderUnit)
	var advanced UnitAdvanced
	if r.Advanced != nil {
		advanced = *r.Advanced
	}
	return Unit{
		OrderUnit: strings.TrimSpace(r.OrderUnit),
		Default:   r.Default,
		Advanced:  datatypes.NewJSONType(advanced),
	}, c.Err()
}

type UpdateUnitRequest struct {
	OrderUnit optional.Value[string]       `json:"orderUnit"`
	Default   optional.Value[bool]         `json:"default"`
	Advanced  optional.Value[UnitAdvanced] `json:"advanced"`
}

func (r UpdateUnitRequest) Columns() (map[string]any, error) {
	var c validation.Collector
	c.RequiredIfSet("orderUnit", r.OrderUnit)
	boolIfSet(&c, "default", r.Default)
	values := map[string]any{}
	r.OrderUnit.Apply(values, "order_unit")
	r.Default.Apply(values, "is_default")
	if r.Advanced.Set {
		values["advanced"] = datatypes.NewJSONType(r.Advanced.Value)
	}
	return values, c.Err()
}

type CreateQualitySpeculationRequest struct {
	Name          string `json:"name"`
	Specification string `json:"specification"`
}

func (r CreateQualitySpeculationRequest) Build() (QualitySpeculation, error) {
	var c validation.Collector
	c.Required("name", r.Name)
	c.Required("specification", r.Specification)
	return QualitySpeculation{
		Name:          strings.TrimSpace(r.Name),
		Specification: strings.TrimSpace(r.Specification),
	}, c.Err()
}

type UpdateQualitySpeculationRequest struct {
	Name          optional.Value[string] `json:"name"`
	Specification optional.Value[string] `json:"specification"`
}

func (r UpdateQualitySpeculationRequest) Columns() (map[string]any, error) {
	var c validation.Collector
	c.RequiredIfSet("name", r.Name)
	c.RequiredIfSet("specification", r.Specification)
	values := map[string]any{}
	r.Name.Apply(values, "name")
	r.Specification.Apply(values, "specification")
	return values, c.Err()
}
