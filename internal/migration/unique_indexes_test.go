package migration

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	configurationdomain "github.com/smallbiznis/tradedesk/internal/configuration/domain"
	quotationdomain "github.com/smallbiznis/tradedesk/internal/quotation/domain"
	"github.com/smallbiznis/tradedesk/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLiveNumberIsReusableAfterSoftDelete(t *testing.T) {
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, Migrate(context.Background(), conn, zap.NewNop()))

	first := quotationdomain.Quotation{ID: 1, QuotationNo: "QT-2025-0001"}
	require.NoError(t, conn.Create(&first).Error)

	second := quotationdomain.Quotation{ID: 2, QuotationNo: "QT-2025-0001"}
	assert.True(t, db.IsDuplicateKeyErr(conn.Create(&second).Error))

	require.NoError(t, conn.Delete(&first).Error)
	require.NoError(t, conn.Create(&second).Error)
}

func TestLiveNumberDDL(t *testing.T) {
	n := liveNumber{Table: "quotations", Column: "quotation_no", Index: "ux_quotations_quotation_no"}

	pg, err := n.indexDDL("postgres")
	require.NoError(t, err)
	assert.Equal(t, "CREATE UNIQUE INDEX IF NOT EXISTS ux_quotations_quotation_no ON quotations (quotation_no) WHERE deleted_at IS NULL", pg)

	mysql, err := n.indexDDL("mysql")
	require.NoError(t, err)
	assert.Equal(t, "CREATE UNIQUE INDEX `ux_quotations_quotation_no` ON `quotations` (`live_quotation_no`)", mysql)
	assert.Equal(t,
		"ALTER TABLE `quotations` ADD COLUMN `live_quotation_no` CHAR(64) GENERATED ALWAYS AS (IF(deleted_at IS NULL, SHA2(`quotation_no`, 256), NULL)) STORED",
		n.liveColumnDDL(),
	)

	_, err = n.indexDDL("sqlserver")
	assert.Error(t, err)
}

func TestOneGlobalConfigurationRow(t *testing.T) {
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, Migrate(context.Background(), conn, zap.NewNop()))

	global := func(id int64) *configurationdomain.DomesticInvoiceConfiguration {
		return &configurationdomain.DomesticInvoiceConfiguration{ID: snowflake.ID(id)}
	}
	require.NoError(t, conn.Create(global(1)).Error)
	assert.True(t, db.IsDuplicateKeyErr(conn.Create(global(2)).Error))

	org := snowflake.ID(7)
	owned := &configurationdomain.DomesticInvoiceConfiguration{ID: 3, OrganizationID: &org}
	require.NoError(t, conn.Create(owned).Error)
	assert.True(t, conn.Migrator().HasIndex("international_invoice_configurations", "ux_international_invoice_configurations_owner"))
}
