package document

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/smallbiznis/tradedesk/internal/customer/domain"
	"github.com/smallbiznis/tradedesk/internal/reference"
	settingsdomain "github.com/smallbiznis/tradedesk/internal/settings/domain"
	"github.com/smallbiznis/tradedesk/pkg/apperror"
	"github.com/smallbiznis/tradedesk/pkg/db"
	"github.com/smallbiznis/tradedesk/pkg/optional"
	"github.com/smallbiznis/tradedesk/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type testHeader struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	Number    string       `gorm:"column:number;uniqueIndex:ux_test_headers_number,where:deleted_at IS NULL"`
	Remark    *string
	Version   int64 `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type testLine struct {
	ID       snowflake.ID `gorm:"primaryKey"`
	HeaderID snowflake.ID `gorm:"not null;index"`
	LineValues
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&testHeader{}, &testLine{}))
	return conn
}

func f64(v float64) *float64 { return &v }

func seedLines(t *testing.T, conn *gorm.DB, header snowflake.ID, n int) {
	t.Helper()
	rows := make([]testLine, n)
	next := header * 1000
	require.NoError(t, InsertChildren(context.Background(), conn, rows, func(l *testLine) {
		next++
		l.ID = next
		l.HeaderID = header
	}))
}

func countLines(t *testing.T, conn *gorm.DB, header snowflake.ID) int64 {
	t.Helper()
	var n int64
	require.NoError(t, conn.Model(&testLine{}).Where("header_id = ?", header).Count(&n).Error)
	return n
}

func TestComputeTotal(t *testing.T) {
	line := LineValues{Quantity: f64(10), Price: f64(5)}
	line.ComputeTotal()
	require.NotNil(t, line.Total)
	assert.Equal(t, 50.0, *line.Total)

	supplied := LineValues{Quantity: f64(3), Total: f64(7)}
	supplied.ComputeTotal()
	assert.Equal(t, 7.0, *supplied.Total)
}

func TestReplaceChildrenNilIsNoop(t *testing.T) {
	conn := newTestDB(t)
	seedLines(t, conn, 1, 2)

	require.NoError(t, ReplaceChildren[testLine](context.Background(), conn, "header_id", 1, nil, func(*testLine) {}))
	assert.Equal(t, int64(2), countLines(t, conn, 1))
}

func TestReplaceChildrenEmptyDeletesAll(t *testing.T) {
	conn := newTestDB(t)
	seedLines(t, conn, 1, 2)
	seedLines(t, conn, 2, 1)

	empty := []testLine{}
	require.NoError(t, ReplaceChildren(context.Background(), conn, "header_id", 1, &empty, func(*testLine) {}))
	assert.Equal(t, int64(0), countLines(t, conn, 1))
	assert.Equal(t, int64(1), countLines(t, conn, 2), "other parents keep their rows")
}

func TestReplaceChildrenSwapsSet(t *testing.T) {
	conn := newTestDB(t)
	seedLines(t, conn, 1, 3)

	set := []testLine{
		{LineValues: LineValues{Quantity: f64(1)}},
		{LineValues: LineValues{Quantity: f64(2)}},
	}
	next := snowflake.ID(5000)
	require.NoError(t, ReplaceChildren(context.Background(), conn, "header_id", 1, &set, func(l *testLine) {
		next++
		l.ID = next
		l.HeaderID = 1
	}))

	var rows []testLine
	require.NoError(t, conn.Where("header_id = ?", 1).Order("id").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, snowflake.ID(5001), rows[0].ID)
	assert.Equal(t, 2.0, *rows[1].Quantity)
}

func TestEnsureUnique(t *testing.T) {
	conn := newTestDB(t)
	ctx := context.Background()
	n := Number{Column: "number", Field: "number", Label: "Quotation number"}.For(&testHeader{})
	require.NoError(t, conn.Create(&testHeader{ID: 1, Number: "QT-2025-0001"}).Error)

	require.NoError(t, EnsureUnique(ctx, conn, n, "QT-2025-0001", "QT-2025-0001"), "unchanged number")
	require.NoError(t, EnsureUnique(ctx, conn, n, "QT-2025-0002", ""))

	err := EnsureUnique(ctx, conn, n, "QT-2025-0001", "")
	var conflict *apperror.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, `Quotation number "QT-2025-0001" already exists`, conflict.Message)

	require.NoError(t, conn.Delete(&testHeader{}, 1).Error)
	assert.NoError(t, EnsureUnique(ctx, conn, n, "QT-2025-0001", ""), "deleted documents release their number")
}

func TestMapDuplicate(t *testing.T) {
	conn := newTestDB(t)
	n := PINumber.For(&testHeader{})
	require.NoError(t, conn.Create(&testHeader{ID: 1, Number: "PI-1"}).Error)

	err := conn.Create(&testHeader{ID: 2, Number: "PI-1"}).Error
	require.Error(t, err)

	var conflict *apperror.ConflictError
	require.ErrorAs(t, MapDuplicate(err, n, "PI-1"), &conflict)
	assert.Equal(t, `PI No "PI-1" already exists`, conflict.Message)

	other := errors.New("boom")
	assert.Same(t, other, MapDuplicate(other, n, "PI-1"))
}

func TestPatchHeaderVersioning(t *testing.T) {
	conn := newTestDB(t)
	ctx := context.Background()
	require.NoError(t, conn.Create(&testHeader{ID: 1, Number: "A", Version: 1}).Error)

	remark := "first"
	require.NoError(t, PatchHeader(ctx, conn, &testHeader{}, "Quotation", 1, nil, map[string]any{"remark": remark}))

	var got testHeader
	require.NoError(t, conn.First(&got, 1).Error)
	assert.Equal(t, int64(2), got.Version)
	assert.Equal(t, "first", *got.Remark)

	stale := int64(1)
	err := PatchHeader(ctx, conn, &testHeader{}, "Quotation", 1, &stale, map[string]any{"remark": "second"})
	assert.ErrorIs(t, err, ErrVersionConflict)

	current := int64(2)
	require.NoError(t, PatchHeader(ctx, conn, &testHeader{}, "Quotation", 1, &current, map[string]any{"remark": "second"}))
	require.NoError(t, conn.First(&got, 1).Error)
	assert.Equal(t, int64(3), got.Version)
	assert.Equal(t, "second", *got.Remark)

	err = PatchHeader(ctx, conn, &testHeader{}, "Quotation", 99, nil, nil)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("date", "2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), *d)

	d, err = ParseDate("date", "2025-03-01T10:30:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, 8, d.Hour())

	d, err = ParseDate("date", "  ")
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = ParseDate("date", "01/03/2025")
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "date", verr.Violations[0].Field)
}

func TestApplyDate(t *testing.T) {
	values := map[string]any{}
	require.NoError(t, ApplyDate(values, "date", "date", optional.Value[string]{}))
	assert.NotContains(t, values, "date")

	require.NoError(t, ApplyDate(values, "date", "date", optional.Null[string]()))
	assert.Nil(t, values["date"])

	require.NoError(t, ApplyDate(values, "date", "date", optional.Of("2025-01-02")))
	assert.Equal(t, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), values["date"])

	assert.Error(t, ApplyDate(values, "date", "date", optional.Of("nope")))
}

func TestLineChecks(t *testing.T) {
	product := snowflake.ID(42)
	checks := LineChecks([]LineValues{{}, {ProductID: &product}})
	require.Len(t, checks, 8)

	assert.Equal(t, "productDetails[1].productId", checks[4].Field)
	assert.Equal(t, reference.Product, checks[4].Entity)
	assert.Equal(t, "Product with ID 42 not found", checks[4].Message)
	assert.Nil(t, checks[0].ID)
}

func TestEnricherSkipsMissingRows(t *testing.T) {
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&customerdomain.Customer{}, &settingsdomain.Port{}, &settingsdomain.Currency{}))

	ctx := context.Background()
	e := NewEnricher(conn, zap.NewNop())

	require.NoError(t, conn.Create(&customerdomain.Customer{
		ID:           1,
		CustomerName: "Acme",
		Country:      "India",
		Address:      "Mumbai",
		Addresses: datatypes.NewJSONSlice([]customerdomain.Address{
			{Label: "HQ", City: "Mumbai"},
			{Label: "Warehouse", City: "Pune"},
		}),
	}).Error)
	require.NoError(t, conn.Create(&settingsdomain.Currency{ID: 5, CurrencyName: "USD"}).Error)
	require.NoError(t, conn.Delete(&settingsdomain.Currency{}, 5).Error)

	id := snowflake.ID(1)
	position := 2
	customer, addr, err := e.Customer(ctx, &id, &position)
	require.NoError(t, err)
	require.NotNil(t, customer)
	assert.Equal(t, "Acme", customer.CustomerName)
	require.NotNil(t, addr)
	assert.Equal(t, "Pune", addr.City)

	outOfRange := 3
	_, addr, err = e.Customer(ctx, &id, &outOfRange)
	require.NoError(t, err)
	assert.Nil(t, addr)

	deleted := snowflake.ID(5)
	currency, err := e.Currency(ctx, &deleted)
	require.NoError(t, err)
	assert.Nil(t, currency)

	missing := snowflake.ID(77)
	port, err := e.Port(ctx, &missing)
	require.NoError(t, err)
	assert.Nil(t, port)

	port, err = e.Port(ctx, nil)
	require.NoError(t, err)
	assert.Nil(t, port)
}

func TestFormatNumber(t *testing.T) {
	at := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)

	n, err := FormatNumber(QuotationNumberTemplate, at, 7)
	require.NoError(t, err)
	assert.Equal(t, "QT-2025-0007", n)
	assert.Equal(t, "QT-2025-", NumberPrefix(QuotationNumberTemplate, at))

	n, err = FormatNumber("PI/{YY}{MM}{DD}/{SEQ}", at, 12)
	require.NoError(t, err)
	assert.Equal(t, "PI/250309/12", n)

	_, err = FormatNumber("QT-{SEQ4}", at, 0)
	assert.Error(t, err)
	_, err = FormatNumber("QT-{NOPE}", at, 1)
	assert.Error(t, err)
}
