package migration

import (
	"fmt"

	"gorm.io/gorm"
)

// liveNumber is a document number column that must be unique among rows
// that are not soft deleted.
type liveNumber struct {
	Table  string
	Column string
	Index  string
}

var liveNumbers = []liveNumber{
	{Table: "quotations", Column: "quotation_no", Index: "ux_quotations_quotation_no"},
	{Table: "invoices", Column: "pi_no", Index: "ux_invoices_pi_no"},
	{Table: "proforma_invoices", Column: "pi_no", Index: "ux_proforma_invoices_pi_no"},
}

// liveColumn is the MySQL stored column that carries a digest of the
// number while the row is live and NULL once it is soft deleted. MySQL has
// no partial indexes, and NULLs never collide in a unique index.
func (n liveNumber) liveColumn() string {
	return "live_" + n.Column
}

func (n liveNumber) liveColumnDDL() string {
	return fmt.Sprintf(
		"ALTER TABLE `%s` ADD COLUMN `%s` CHAR(64) GENERATED ALWAYS AS (IF(deleted_at IS NULL, SHA2(`%s`, 256), NULL)) STORED",
		n.Table, n.liveColumn(), n.Column,
	)
}

func (n liveNumber) indexDDL(dialect string) (string, error) {
	switch dialect {
	case "postgres", "sqlite":
		return fmt.Sprintf(
			`CREATE UNIQUE INDEX IF NOT EXISTS %s ON %s (%s) WHERE deleted_at IS NULL`,
			n.Index, n.Table, n.Column,
		), nil
	case "mysql":
		return fmt.Sprintf("CREATE UNIQUE INDEX `%s` ON `%s` (`%s`)", n.Index, n.Table, n.liveColumn()), nil
	default:
		return "", fmt.Errorf("live number index: unsupported dialect %q", dialect)
	}
}

// ownerKey makes a table hold at most one row per organization, the
// global row with a NULL organization included. Snowflake ids are never 0.
type ownerKey struct {
	Table string
	Index string
}

var ownerKeys = []ownerKey{
	{Table: "international_invoice_configurations", Index: "ux_international_invoice_configurations_owner"},
	{Table: "domestic_invoice_configurations", Index: "ux_domestic_invoice_configurations_owner"},
}

func (k ownerKey) indexDDL() string {
	return fmt.Sprintf("CREATE UNIQUE INDEX %s ON %s ((COALESCE(organization_id, 0)))", k.Index, k.Table)
}

func ensureUniqueIndexes(conn *gorm.DB) error {
	if err := ensureLiveNumbers(conn); err != nil {
		return err
	}

	m := conn.Migrator()
	for _, k := range ownerKeys {
		if m.HasIndex(k.Table, k.Index) {
			continue
		}
		if err := conn.Exec(k.indexDDL()).Error; err != nil {
			return fmt.Errorf("create %s: %w", k.Index, err)
		}
	}
	return nil
}

// ensureLiveNumbers creates the live-number unique indexes. On MySQL an
// index left over from a schema without the generated column covers
// soft-deleted rows too, so it is dropped and rebuilt on the live column.
func ensureLiveNumbers(conn *gorm.DB) error {
	dialect := conn.Dialector.Name()
	m := conn.Migrator()

	for _, n := range liveNumbers {
		if dialect == "mysql" && !m.HasColumn(n.Table, n.liveColumn()) {
			if m.HasIndex(n.Table, n.Index) {
				if err := m.DropIndex(n.Table, n.Index); err != nil {
					return fmt.Errorf("drop %s: %w", n.Index, err)
				}
			}
			if err := conn.Exec(n.liveColumnDDL()).Error; err != nil {
				return fmt.Errorf("add %s.%s: %w", n.Table, n.liveColumn(), err)
			}
		}
		if m.HasIndex(n.Table, n.Index) {
			continue
		}

		ddl, err := n.indexDDL(dialect)
		if err != nil {
			return err
		}
		if err := conn.Exec(ddl).Error; err != nil {
			return fmt.Errorf("create %s: %w", n.Index, err)
		}
	}
	return nil
}
