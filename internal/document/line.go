// Package document holds the pieces shared by quotations, invoices and
// proforma invoices: product lines, containers, wholesale child
// replacement, number uniqueness, versioned header patches and read-side
// enrichment of the JSON detail blocks.
package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tradedesk/internal/observability/metrics"
	"github.com/smallbiznis/tradedesk/internal/reference"
	"gorm.io/gorm"
)

// LineValues is the column set of a product line. Document line tables
// embed it next to their own parent key and associations.
type LineValues struct {
	ProductID          *snowflake.ID `gorm:"index" json:"productId"`
	UnitID             *snowflake.ID `gorm:"index" json:"unitId"`
	Quantity           *float64      `json:"quantity"`
	Price              *float64      `json:"price"`
	Total              *float64      `json:"total"`
	Package            *string       `gorm:"type:text" json:"package"`
	ProductDescription *string       `gorm:"type:text" json:"productDescription"`
	NetWeight          *float64      `json:"netWeight"`
	GrossWeight        *float64      `json:"grossWeight"`
	TotalPackages      *float64      `json:"totalPackages"`
	PackageTypeID      *snowflake.ID `gorm:"index" json:"packageTypeId"`
	QualitySpec        *string       `gorm:"type:text" json:"qualitySpec"`
	MaterialID         *snowflake.ID `gorm:"index" json:"materialId"`
	Marking            *string       `gorm:"type:text" json:"marking"`
	MarkingFile        *string       `gorm:"type:text" json:"markingFile"`
	TotalNetWeight     *float64      `json:"totalNetWeight"`
	TotalGrossWeight   *float64      `json:"totalGrossWeight"`
}

// ComputeTotal sets total = quantity × price when both are present and
// keeps the supplied total otherwise.
func (l *LineValues) ComputeTotal() {
	if l.Quantity == nil || l.Price == nil {
		return
	}
	total := *l.Quantity * *l.Price
	l.Total = &total
}

// ContainerValues is the column set of a shipping container row.
type ContainerValues struct {
	ContainerNo *string  `gorm:"type:text" json:"containerNo"`
	LineSealNo  *string  `gorm:"type:text" json:"lineSealNo"`
	RfidSealNo  *string  `gorm:"type:text" json:"rfidSealNo"`
	SizeType    *string  `gorm:"type:text" json:"sizeType"`
	Boxes       *float64 `json:"boxes"`
	LotNo       *string  `gorm:"type:text" json:"lotNo"`
	NetWeight   *float64 `json:"netWeight"`
	GrossWeight *float64 `json:"grossWeight"`
}

// LineChecks declares the reference checks of every line. Fields are
// reported as productDetails[i].productId and so on.
func LineChecks(lines []LineValues) []reference.Check {
	checks := make([]reference.Check, 0, len(lines)*4)
	for i, line := range lines {
		prefix := fmt.Sprintf("productDetails[%d].", i)
		checks = append(checks,
			lineCheck(prefix+"productId", reference.Product, line.ProductID),
			lineCheck(prefix+"unitId", reference.Unit, line.UnitID),
			lineCheck(prefix+"packageTypeId", reference.PackageType, line.PackageTypeID),
			lineCheck(prefix+"materialId", reference.Material, line.MaterialID),
		)
	}
	return checks
}

func lineCheck(field string, entity reference.Entity, id *snowflake.ID) reference.Check {
	check := reference.Check{Field: field, Entity: entity, ID: id}
	if id != nil {
		check.Message = fmt.Sprintf("%s with ID %s not found", entity.Name, id.String())
	}
	return check
}

// PrepareLines computes totals in place.
func PrepareLines(lines []LineValues) {
	for i := range lines {
		lines[i].ComputeTotal()
	}
}

// ValidateReferences runs checks and counts rejected references against
// the document type.
func ValidateReferences(ctx context.Context, db *gorm.DB, v *reference.Validator, m *metrics.Metrics, documentType string, checks ...reference.Check) error {
	err := v.Validate(ctx, db, checks...)
	var violations *reference.ViolationError
	if errors.As(err, &violations) {
		m.RecordReferenceViolations(ctx, documentType, len(violations.Violations))
	}
	return err
}
