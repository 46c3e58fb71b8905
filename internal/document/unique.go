package document

import (
	"context"
	"fmt"

	"github.com/smallbiznis/tradedesk/pkg/apperror"
	"github.com/smallbiznis/tradedesk/pkg/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Number describes the human-facing number of a document type. Model must
// carry gorm.DeletedAt so soft-deleted documents release their number.
type Number struct {
	Model  any
	Column string
	Field  string
	Label  string
}

var (
	QuotationNumber = Number{Column: "quotation_no", Field: "quotationNumber", Label: "Quotation number"}
	PINumber        = Number{Column: "pi_no", Field: "piNo", Label: "PI No"}
)

// For binds the number to the model of one document type.
func (n Number) For(model any) Number {
	n.Model = model
	return n
}

// Conflict reports value as taken.
func (n Number) Conflict(value string) error {
	return &apperror.ConflictError{
		Field:   n.Field,
		Message: fmt.Sprintf("%s %q already exists", n.Label, value),
	}
}

// EnsureUnique fails when another live document already uses candidate.
// It is a no-op when candidate equals current, so an update that keeps its
// number never conflicts with itself.
func EnsureUnique(ctx context.Context, conn *gorm.DB, n Number, candidate, current string) error {
	if candidate == current {
		return nil
	}

	var count int64
	if err := conn.WithContext(ctx).
		Model(n.Model).
		Where(clause.Eq{Column: clause.Column{Name: n.Column}, Value: candidate}).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return n.Conflict(candidate)
	}
	return nil
}

// MapDuplicate turns a unique-index violation on the number into the same
// conflict EnsureUnique reports. Two writers can both pass the pre-check;
// the live-number unique index rejects the second one.
func MapDuplicate(err error, n Number, value string) error {
	if db.IsDuplicateKeyErr(err) {
		return n.Conflict(value)
	}
	return err
}
