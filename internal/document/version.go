package document

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tradedesk/pkg/apperror"
	"gorm.io/gorm"
)

var (
	ErrInvalidID       = errors.New("invalid_id")
	ErrVersionConflict = errors.New("version_conflict")
)

// PatchHeader applies values to one live document row and bumps its
// version. When expected is set the row must still carry that version,
// otherwise ErrVersionConflict is returned and nothing changes.
func PatchHeader(ctx context.Context, tx *gorm.DB, model any, entity string, id snowflake.ID, expected *int64, values map[string]any) error {
	if values == nil {
		values = map[string]any{}
	}
	values["version"] = gorm.Expr("version + 1")

	stmt := tx.WithContext(ctx).Model(model).Where("id = ?", id)
	if expected != nil {
		stmt = stmt.Where("version = ?", *expected)
	}
	res := stmt.Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if expected != nil {
			return ErrVersionConflict
		}
		return apperror.NotFound(entity)
	}
	return nil
}
