package reference

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tradedesk/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := db.NewTest()
	require.NoError(t, err)
	for _, stmt := range []string{
		`CREATE TABLE currencies (id INTEGER PRIMARY KEY, deleted_at DATETIME)`,
		`CREATE TABLE ports (id INTEGER PRIMARY KEY, deleted_at DATETIME)`,
		`CREATE TABLE users (id INTEGER PRIMARY KEY)`,
		`INSERT INTO currencies (id, deleted_at) VALUES (1, NULL), (2, CURRENT_TIMESTAMP)`,
		`INSERT INTO ports (id, deleted_at) VALUES (10, NULL)`,
		`INSERT INTO users (id) VALUES (100)`,
	} {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}

func id(v int64) *snowflake.ID {
	out := snowflake.ID(v)
	return &out
}

func TestValidatePassesForLiveRows(t *testing.T) {
	conn := newTestDB(t)
	v := NewValidator(zap.NewNop())

	err := v.Validate(context.Background(), conn,
		Check{Field: "shipmentDetails.currencyId", Entity: Currency, ID: id(1), Message: "Currency not found"},
		Check{Field: "consigneeDetails.portId", Entity: Port, ID: id(10), Message: "Port not found"},
		Check{Field: "shipmentDetails.salespersonId", Entity: User, ID: id(100), Message: "Salesperson not found"},
		Check{Field: "shipmentDetails.bankId", Entity: BankDetail, ID: nil, Message: "Bank Detail not found"},
	)
	assert.NoError(t, err)
}

func TestValidateReportsEveryViolation(t *testing.T) {
	conn := newTestDB(t)
	v := NewValidator(zap.NewNop())

	err := v.Validate(context.Background(), conn,
		Check{Field: "shipmentDetails.currencyId", Entity: Currency, ID: id(2), Message: "Currency not found"},
		Check{Field: "consigneeDetails.portId", Entity: Port, ID: id(11), Message: "Port not found"},
		Check{Field: "shipmentDetails.salespersonId", Entity: User, ID: id(101), Message: "Salesperson not found"},
	)

	var verr *ViolationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Violations, 3)
	assert.Equal(t, "shipmentDetails.currencyId", verr.Violations[0].Field)
	assert.Equal(t, CodeNotFound, verr.Violations[0].Code)
	assert.Equal(t, "Port not found", verr.Violations[1].Message)
	assert.Equal(t, "Salesperson not found", verr.Violations[2].Message)
	assert.Equal(t, "Currency not found; Port not found; Salesperson not found", err.Error())
}

func TestValidateRepeatsViolationPerField(t *testing.T) {
	conn := newTestDB(t)
	v := NewValidator(zap.NewNop())

	err := v.Validate(context.Background(), conn,
		Check{Field: "productDetails[0].unitId", Entity: Currency, ID: id(9), Message: "a"},
		Check{Field: "productDetails[1].unitId", Entity: Currency, ID: id(9), Message: "b"},
	)

	var verr *ViolationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Violations, 2)
}

func TestListCountriesSearch(t *testing.T) {
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.Exec(`CREATE TABLE countries (code TEXT PRIMARY KEY, name TEXT NOT NULL, created_at DATETIME)`).Error)
	require.NoError(t, conn.Exec(`INSERT INTO countries (code, name) VALUES ('IN', 'India'), ('ID', 'Indonesia'), ('NL', 'Netherlands')`).Error)

	repo := NewRepository(conn)
	countries, err := repo.ListCountries(context.Background(), "indo")
	require.NoError(t, err)
	require.Len(t, countries, 1)
	assert.Equal(t, "ID", countries[0].Code)

	countries, err = repo.ListCountries(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, countries, 3)
}
