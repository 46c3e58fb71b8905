package document

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/smallbiznis/tradedesk/internal/customer/domain"
	settingsdomain "github.com/smallbiznis/tradedesk/internal/settings/domain"
	userdomain "github.com/smallbiznis/tradedesk/internal/user/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CustomerSummary struct {
	ID           snowflake.ID             `json:"id"`
	CustomerName string                   `json:"customerName"`
	Email        *string                  `json:"email"`
	Country      string                   `json:"country"`
	Company      *string                  `json:"company"`
	Addresses    []customerdomain.Address `json:"addresses"`
}

type PortSummary struct {
	ID       snowflake.ID `json:"id"`
	PortName string       `json:"portName"`
	PortCode *string      `json:"portCode"`
	Country  string       `json:"country"`
}

type CurrencySummary struct {
	ID           snowflake.ID `json:"id"`
	CurrencyName string       `json:"currencyName"`
	Symbol       *string      `json:"symbol"`
	Words        *string      `json:"words"`
}

type BankSummary struct {
	ID              snowflake.ID `json:"id"`
	BankName        string       `json:"bankName"`
	AccountNo       string       `json:"accountNo"`
	SwiftCode       string       `json:"swiftCode"`
	BeneficiaryName string       `json:"beneficiaryName"`
	AccountType     string       `json:"accountType"`
}

// TermSummary covers both shipment and payment terms.
type TermSummary struct {
	ID   snowflake.ID `json:"id"`
	Name string       `json:"name"`
	Term *string      `json:"term"`
}

type UserSummary struct {
	ID     snowflake.ID `json:"id"`
	Name   string       `json:"name"`
	Email  string       `json:"email"`
	Mobile *string      `json:"mobile"`
}

// Enricher resolves the ids stored in detail blocks into summaries of the
// referenced rows. A missing or soft-deleted row yields nil, never an error.
type Enricher struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewEnricher(db *gorm.DB, log *zap.Logger) *Enricher {
	return &Enricher{db: db, log: log.Named("document.enricher")}
}

// Customer returns the customer and, when position is a valid 1-based
// index into its address book, that address.
func (e *Enricher) Customer(ctx context.Context, id *snowflake.ID, position *int) (*CustomerSummary, *customerdomain.Address, error) {
	c, err := lookup[customerdomain.Customer](ctx, e.db, id)
	if err != nil || c == nil {
		return nil, nil, err
	}
	summary := &CustomerSummary{
		ID:           c.ID,
		CustomerName: c.CustomerName,
		Email:        c.Email,
		Country:      c.Country,
		Company:      c.Company,
		Addresses:    []customerdomain.Address(c.Addresses),
	}
	if position == nil {
		return summary, nil, nil
	}
	if addr, ok := c.AddressAt(*position); ok {
		return summary, &addr, nil
	}
	return summary, nil, nil
}

func (e *Enricher) Port(ctx context.Context, id *snowflake.ID) (*PortSummary, error) {
	p, err := lookup[settingsdomain.Port](ctx, e.db, id)
	if err != nil || p == nil {
		return nil, err
	}
	return &PortSummary{ID: p.ID, PortName: p.PortName, PortCode: p.PortCode, Country: p.Country}, nil
}

func (e *Enricher) Currency(ctx context.Context, id *snowflake.ID) (*CurrencySummary, error) {
	c, err := lookup[settingsdomain.Currency](ctx, e.db, id)
	if err != nil || c == nil {
		return nil, err
	}
	return &CurrencySummary{ID: c.ID, CurrencyName: c.CurrencyName, Symbol: c.Symbol, Words: c.Words}, nil
}

func (e *Enricher) Bank(ctx context.Context, id *snowflake.ID) (*BankSummary, error) {
	b, err := lookup[settingsdomain.BankDetail](ctx, e.db, id)
	if err != nil || b == nil {
		return nil, err
	}
	return &BankSummary{
		ID:              b.ID,
		BankName:        b.BankName,
		AccountNo:       b.AccountNo,
		SwiftCode:       b.SwiftCode,
		BeneficiaryName: b.BeneficiaryName,
		AccountType:     b.AccountType,
	}, nil
}

func (e *Enricher) ShipmentTerm(ctx context.Context, id *snowflake.ID) (*TermSummary, error) {
	t, err := lookup[settingsdomain.ShipmentTerm](ctx, e.db, id)
	if err != nil || t == nil {
		return nil, err
	}
	return &TermSummary{ID: t.ID, Name: t.Name, Term: t.Term}, nil
}

func (e *Enricher) PaymentTerm(ctx context.Context, id *snowflake.ID) (*TermSummary, error) {
	t, err := lookup[settingsdomain.PaymentTerm](ctx, e.db, id)
	if err != nil || t == nil {
		return nil, err
	}
	return &TermSummary{ID: t.ID, Name: t.Name, Term: t.Term}, nil
}

func (e *Enricher) Salesperson(ctx context.Context, id *snowflake.ID) (*UserSummary, error) {
	u, err := lookup[userdomain.User](ctx, e.db, id)
	if err != nil || u == nil {
		return nil, err
	}
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Mobile: u.Mobile}, nil
}

func lookup[T any](ctx context.Context, db *gorm.DB, id *snowflake.ID) (*T, error) {
	if id == nil || *id == 0 {
		return nil, nil
	}
	var row T
	err := db.WithContext(ctx).Where("id = ?", *id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
