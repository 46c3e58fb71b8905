package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tradedesk/internal/clock"
	customerdomain "github.com/smallbiznis/tradedesk/internal/customer/domain"
	"github.com/smallbiznis/tradedesk/internal/document"
	"github.com/smallbiznis/tradedesk/internal/orgcontext"
	productdomain "github.com/smallbiznis/tradedesk/internal/product/domain"
	"github.com/smallbiznis/tradedesk/internal/quotation/domain"
	"github.com/smallbiznis/tradedesk/internal/quotation/repository"
	"github.com/smallbiznis/tradedesk/internal/reference"
	roledomain "github.com/smallbiznis/tradedesk/internal/role/domain"
	settingsdomain "github.com/smallbiznis/tradedesk/internal/settings/domain"
	userdomain "github.com/smallbiznis/tradedesk/internal/user/domain"
	"github.com/smallbiznis/tradedesk/pkg/apperror"
	"github.com/smallbiznis/tradedesk/pkg/db"
	"github.com/smallbiznis/tradedesk/pkg/optional"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	node    *snowflake.Node
	svc     domain.Service
	unit    settingsdomain.Unit
	pkgType settingsdomain.PackageType
	mat     settingsdomain.Material
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&roledomain.Role{},
		&userdomain.User{},
		&customerdomain.Customer{},
		&settingsdomain.Port{},
		&settingsdomain.Currency{},
		&settingsdomain.BankDetail{},
		&settingsdomain.ShipmentTerm{},
		&settingsdomain.PaymentTerm{},
		&settingsdomain.Unit{},
		&settingsdomain.PackageType{},
		&settingsdomain.Material{},
		&productdomain.Product{},
		&domain.Quotation{},
		&domain.QuotationProduct{},
	))
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	log := zap.NewNop()
	svc := New(Params{
		DB:        conn,
		Log:       log,
		GenID:     node,
		Repo:      repository.Provide(),
		Validator: reference.NewValidator(log),
		Enricher:  document.NewEnricher(conn, log),
		Clock:     clock.NewFakeClock(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)),
	})

	f := fixture{db: conn, node: node, svc: svc}
	f.unit = settingsdomain.Unit{ID: node.Generate(), OrderUnit: "KGS"}
	f.pkgType = settingsdomain.PackageType{ID: node.Generate(), PackageType: "Carton"}
	f.mat = settingsdomain.Material{ID: node.Generate(), MaterialName: "Jute"}
	require.NoError(t, conn.Create(&f.unit).Error)
	require.NoError(t, conn.Create(&f.pkgType).Error)
	require.NoError(t, conn.Create(&f.mat).Error)
	return f
}

func orgID(v int64) *snowflake.ID {
	id := snowflake.ID(v)
	return &id
}

func adminIn(org int64) context.Context {
	return orgcontext.WithIdentity(context.Background(), orgcontext.Identity{
		UserID:         snowflake.ID(100 + org),
		RoleID:         2,
		RoleName:       orgcontext.AdminRole,
		OrganizationID: orgID(org),
	})
}

func f64(v float64) *float64 { return &v }

func (f fixture) line() document.LineValues {
	return document.LineValues{
		UnitID:        &f.unit.ID,
		PackageTypeID: &f.pkgType.ID,
		MaterialID:    &f.mat.ID,
		Quantity:      f64(10),
		Price:         f64(5),
	}
}

func (f fixture) request(number string, lines ...document.LineValues) domain.CreateRequest {
	return domain.CreateRequest{
		QuotationNumber:  number,
		ConsigneeDetails: &domain.ConsigneeDetails{Country: "UAE"},
		ShipmentDetails:  &domain.ShipmentDetails{},
		ProductDetails:   lines,
	}
}

func (f fixture) lineCount(t *testing.T, id snowflake.ID) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&domain.QuotationProduct{}).Where("quotation_id = ?", id).Count(&n).Error)
	return n
}

func TestCreateComputesTotalAndListsByNumber(t *testing.T) {
	f := newFixture(t)
	ctx := adminIn(7)

	created, err := f.svc.Create(ctx, f.request("QT-2025-0001", f.line()))
	require.NoError(t, err)
	assert.Equal(t, "QT-2025-0001", created.QuotationNo)
	assert.Equal(t, int64(1), created.Version)
	assert.Equal(t, snowflake.ID(7), *created.OrganizationID)
	require.Len(t, created.QuotationProducts, 1)

	line := created.QuotationProducts[0]
	require.NotNil(t, line.Total)
	assert.Equal(t, 50.0, *line.Total)
	assert.Equal(t, f.unit.ID, *line.UnitID)
	require.NotNil(t, line.Unit)
	assert.Equal(t, "KGS", line.Unit.OrderUnit)
	require.NotNil(t, line.PackageType)
	assert.Equal(t, "Carton", line.PackageType.PackageType)
	require.NotNil(t, line.Material)
	assert.Equal(t, "Jute", line.Material.MaterialName)

	_, err = f.svc.Create(ctx, f.request("QT-2025-0002"))
	require.NoError(t, err)

	list, err := f.svc.List(ctx, domain.ListRequest{Search: "qt-2025-0001"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Meta.Total)
	assert.Equal(t, 1, list.Meta.TotalPages)
	require.Len(t, list.Data, 1)
	assert.Equal(t, created.ID, list.Data[0].ID)
	require.Len(t, list.Data[0].QuotationProducts, 1)

	got, err := f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "QT-2025-0001", got.QuotationNo)
	assert.Len(t, got.QuotationProducts, 1)
}

func TestCreateWithoutLinesStoresNone(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(adminIn(7), f.request("QT-2025-0009"))
	require.NoError(t, err)
	assert.Empty(t, created.QuotationProducts)
	assert.Equal(t, int64(0), f.lineCount(t, created.ID))
}

func TestCreateDuplicateNumberIsRejected(t *testing.T) {
	f := newFixture(t)
	ctx := adminIn(7)

	_, err := f.svc.Create(ctx, f.request("QT-2025-0001"))
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, f.request("QT-2025-0001"))
	var conflict *apperror.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Contains(t, conflict.Message, "QT-2025-0001")
	assert.Equal(t, "quotationNumber", conflict.Field)
}

func TestCreateRequiresConsigneeCountry(t *testing.T) {
	f := newFixture(t)
	req := f.request("QT-2025-0001")
	req.ConsigneeDetails.Country = ""

	_, err := f.svc.Create(adminIn(7), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "consigneeDetails.country is required")
}

func TestCreateReportsEveryMissingReference(t *testing.T) {
	f := newFixture(t)
	req := f.request("QT-2025-0001", document.LineValues{ProductID: orgID(404)})
	req.ConsigneeDetails.ConsigneeID = orgID(1)
	req.ConsigneeDetails.PortID = orgID(2)

	_, err := f.svc.Create(adminIn(7), req)
	var violations *reference.ViolationError
	require.ErrorAs(t, err, &violations)
	require.Len(t, violations.Violations, 3)
	assert.Equal(t, "Consignee customer not found", violations.Violations[0].Message)
	assert.Equal(t, "Port not found", violations.Violations[1].Message)
	assert.Equal(t, "Product with ID 404 not found", violations.Violations[2].Message)
	assert.Equal(t, "productDetails[0].productId", violations.Violations[2].Field)

	var count int64
	require.NoError(t, f.db.Model(&domain.Quotation{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateOmittedLinesAreKept(t *testing.T) {
	f := newFixture(t)
	ctx := adminIn(7)
	created, err := f.svc.Create(ctx, f.request("QT-2025-0001", f.line(), f.line()))
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, created.ID, domain.UpdateRequest{Remark: optional.Of("urgent")})
	require.NoError(t, err)
	assert.Equal(t, "urgent", *updated.Remark)
	assert.Len(t, updated.QuotationProducts, 2)
	assert.Equal(t, int64(2), f.lineCount(t, created.ID))
	assert.Equal(t, int64(2), updated.Version)
}

func TestUpdateEmptyLinesDeletesAll(t *testing.T) {
	f := newFixture(t)
	ctx := adminIn(7)
	created, err := f.svc.Create(ctx, f.request("QT-2025-0001", f.line(), f.line()))
	require.NoError(t, err)

	empty := []document.LineValues{}
	updated, err := f.svc.Update(ctx, created.ID, domain.UpdateRequest{ProductDetails: &empty})
	require.NoError(t, err)
	assert.Empty(t, updated.QuotationProducts)
	assert.Equal(t, int64(0), f.lineCount(t, created.ID))
}

func TestUpdateReplacesLines(t *testing.T) {
	f := newFixture(t)
	ctx := adminIn(7)
	created, err := f.svc.Create(ctx, f.request("QT-2025-0001", f.line(), f.line()))
	require.NoError(t, err)

	replacement := []document.LineValues{{Quantity: f64(2), Price: f64(2.5)}}
	updated, err := f.svc.Update(ctx, created.ID, domain.UpdateRequest{ProductDetails: &replacement})
	require.NoError(t, err)
	require.Len(t, updated.QuotationProducts, 1)
	assert.Equal(t, 5.0, *updated.QuotationProducts[0].Total)
	assert.Nil(t, updated.QuotationProducts[0].Unit)
}

func TestUpdateToDeletedCurrencyPersistsNothing(t *testing.T) {
	f := newFixture(t)
	ctx := adminIn(7)

	usd := settingsdomain.Currency{ID: f.node.Generate(), CurrencyName: "USD"}
	require.NoError(t, f.db.Create(&usd).Error)
	require.NoError(t, f.db.Delete(&usd).Error)

	created, err := f.svc.Create(ctx, f.request("QT-2025-0001", f.line()))
	require.NoError(t, err)

	empty := []document.LineValues{}
	_, err = f.svc.Update(ctx, created.ID, domain.UpdateRequest{
		Remark:          optional.Of("changed"),
		ShipmentDetails: optional.Of(domain.ShipmentDetails{CurrencyID: &usd.ID}),
		ProductDetails:  &empty,
	})
	var violations *reference.ViolationError
	require.ErrorAs(t, err, &violations)
	assert.Equal(t, "Currency not found", violations.Violations[0].Message)

	var stored domain.Quotation
	require.NoError(t, f.db.First(&stored, "id = ?", created.ID).Error)
	assert.Nil(t, stored.Remark)
	assert.Nil(t, stored.ShipmentDetails.Data().CurrencyID)
	assert.Equal(t, int64(1), stored.Version)
	assert.Equal(t, int64(1), f.lineCount(t, created.ID))
}

func TestUpdateNumber(t *testing.T) {
	f := newFixture(t)
	ctx := adminIn(7)
	first, err := f.svc.Create(ctx, f.request("QT-2025-0001"))
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, f.request("QT-2025-0002"))
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, first.ID, domain.UpdateRequest{QuotationNumber: optional.Of("QT-2025-0001")})
	require.NoError(t, err, "keeping the same number is not a conflict")

	_, err = f.svc.Update(ctx, first.ID, domain.UpdateRequest{QuotationNumber: optional.Of("QT-2025-0002")})
	var conflict *apperror.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, `Quotation number "QT-2025-0002" already exists`, conflict.Message)

	updated, err := f.svc.Update(ctx, first.ID, domain.UpdateRequest{QuotationNumber: optional.Of("QT-2025-0003")})
	require.NoError(t, err)
	assert.Equal(t, "QT-2025-0003", updated.QuotationNo)
}

func TestUpdateStaleVersionConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := adminIn(7)
	created, err := f.svc.Create(ctx, f.request("QT-2025-0001"))
	require.NoError(t, err)

	v1 := created.Version
	_, err = f.svc.Update(ctx, created.ID, domain.UpdateRequest{Remark: optional.Of("a"), Version: &v1})
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, created.ID, domain.UpdateRequest{Remark: optional.Of("b"), Version: &v1})
	assert.ErrorIs(t, err, document.ErrVersionConflict)

	got, err := f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", *got.Remark)
}

func TestUpdateClearsDate(t *testing.T) {
	f := newFixture(t)
	ctx := adminIn(7)
	req := f.request("QT-2025-0001")
	date := "2025-02-10"
	req.Date = &date
	created, err := f.svc.Create(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, created.Date)

	updated, err := f.svc.Update(ctx, created.ID, domain.UpdateRequest{Date: optional.Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, updated.Date)
}

func TestDeleteTwiceIsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := adminIn(7)
	created, err := f.svc.Create(ctx, f.request("QT-2025-0001", f.line()))
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, created.ID))

	err = f.svc.Delete(ctx, created.ID)
	require.ErrorIs(t, err, apperror.ErrNotFound)
	assert.EqualError(t, err, "Quotation not found")

	_, err = f.svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, int64(1), f.lineCount(t, created.ID), "lines stay with the deleted quotation")

	_, err = f.svc.Create(ctx, f.request("QT-2025-0001"))
	assert.NoError(t, err, "a deleted quotation releases its number")
}

func TestOrganizationScoping(t *testing.T) {
	f := newFixture(t)
	mine, err := f.svc.Create(adminIn(7), f.request("QT-2025-0001"))
	require.NoError(t, err)
	_, err = f.svc.Create(adminIn(8), f.request("QT-2025-0002"))
	require.NoError(t, err)

	list, err := f.svc.List(adminIn(7), domain.ListRequest{Search: "QT-2025"})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	assert.Equal(t, mine.ID, list.Data[0].ID)

	_, err = f.svc.Get(adminIn(8), mine.ID)
	var forbidden *orgcontext.ForbiddenError
	require.ErrorAs(t, err, &forbidden)
	assert.Equal(t, orgcontext.MessageAccessDenied, forbidden.Message)
}

func TestGetEnrichesDetailBlocks(t *testing.T) {
	f := newFixture(t)
	ctx := adminIn(7)

	customer := customerdomain.Customer{
		ID:           f.node.Generate(),
		CustomerName: "Gulf Traders",
		Country:      "UAE",
		Address:      "Dubai",
		Addresses: datatypes.NewJSONSlice([]customerdomain.Address{
			{Label: "Office", City: "Dubai"},
			{Label: "Yard", City: "Jebel Ali"},
		}),
	}
	port := settingsdomain.Port{ID: f.node.Generate(), Country: "UAE", PortName: "Jebel Ali"}
	usd := settingsdomain.Currency{ID: f.node.Generate(), CurrencyName: "USD"}
	seller := userdomain.User{ID: f.node.Generate(), Name: "Ravi", Email: "ravi@example.com", PasswordHash: "x", RoleID: 2}
	require.NoError(t, f.db.Create(&customer).Error)
	require.NoError(t, f.db.Create(&port).Error)
	require.NoError(t, f.db.Create(&usd).Error)
	require.NoError(t, f.db.Create(&seller).Error)

	position := 2
	req := f.request("QT-2025-0001")
	req.ConsigneeDetails = &domain.ConsigneeDetails{
		Country:            "UAE",
		ConsigneeID:        &customer.ID,
		ConsigneeAddressID: &position,
		PortID:             &port.ID,
	}
	req.ShipmentDetails = &domain.ShipmentDetails{CurrencyID: &usd.ID, SalespersonID: &seller.ID}
	created, err := f.svc.Create(ctx, req)
	require.NoError(t, err)

	// a reference deleted after the write is simply not attached
	require.NoError(t, f.db.Delete(&port).Error)

	got, err := f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ConsigneeDetails.Consignee)
	assert.Equal(t, "Gulf Traders", got.ConsigneeDetails.Consignee.CustomerName)
	require.NotNil(t, got.ConsigneeDetails.ConsigneeAddress)
	assert.Equal(t, "Jebel Ali", got.ConsigneeDetails.ConsigneeAddress.City)
	assert.Nil(t, got.ConsigneeDetails.Port)
	assert.Nil(t, got.ConsigneeDetails.NotifyParty)
	require.NotNil(t, got.ShipmentDetails.Currency)
	assert.Equal(t, "USD", got.ShipmentDetails.Currency.CurrencyName)
	require.NotNil(t, got.ShipmentDetails.Salesperson)
	assert.Equal(t, "Ravi", got.ShipmentDetails.Salesperson.Name)
}

func TestNextNumber(t *testing.T) {
	f := newFixture(t)
	ctx := adminIn(7)

	next, err := f.svc.NextNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "QT-2025-0001", next)

	_, err = f.svc.Create(ctx, f.request(next))
	require.NoError(t, err)

	next, err = f.svc.NextNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "QT-2025-0002", next)
}
