package service

import "github.com/smallbiznis/tradedesk/internal/settings/domain"

func NewPortService(p Params) domain.Service[domain.Port] {
	return newService[domain.Port](p, domain.PortKind)
}

func NewCurrencyService(p Params) domain.Service[domain.Currency] {
	return newService[domain.Currency](p, domain.CurrencyKind)
}

func NewPaymentTermService(p Params) domain.Service[domain.PaymentTerm] {
	return newService[domain.PaymentTerm](p, domain.PaymentTermKind)
}

func NewShipmentTermService(p Params) domain.Service[domain.ShipmentTerm] {
	return newService[domain.ShipmentTerm](p, domain.ShipmentTermKind)
}

func NewMaterialService(p Params) domain.Service[domain.Material] {
	return newService[domain.Material](p, domain.MaterialKind)
}

func NewPackageTypeService(p Params) domain.Service[domain.PackageType] {
	return newService[domain.PackageType](p, domain.PackageTypeKind)
}

func NewBankDetailService(p Params) domain.Service[domain.BankDetail] {
	return newService[domain.BankDetail](p, domain.BankDetailKind)
}

func NewUnitService(p Params) domain.Service[domain.Unit] {
	return newService[domain.Unit](p, domain.UnitKind)
}

func NewQualitySpeculationService(p Params) domain.Service[domain.QualitySpeculation] {
	return newService[domain.QualitySpeculation](p, domain.QualitySpeculationKind)
}
