package document

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InsertChildren assigns each row to its parent and bulk-inserts the set.
// Associations on the rows are never written.
func InsertChildren[T any](ctx context.Context, tx *gorm.DB, rows []T, assign func(*T)) error {
	if len(rows) == 0 {
		return nil
	}
	for i := range rows {
		assign(&rows[i])
	}
	return tx.WithContext(ctx).Omit(clause.Associations).Create(&rows).Error
}

// ReplaceChildren swaps the whole child collection of one parent.
//
// A nil set leaves the stored rows untouched. A non-nil set, even an empty
// one, deletes every row whose fkColumn equals parentID and inserts the set
// in its place. Run it inside the transaction that patches the parent.
func ReplaceChildren[T any](ctx context.Context, tx *gorm.DB, fkColumn string, parentID snowflake.ID, set *[]T, assign func(*T)) error {
	if set == nil {
		return nil
	}

	var model T
	if err := tx.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: fkColumn}, Value: parentID}).
		Delete(&model).Error; err != nil {
		return err
	}

	return InsertChildren(ctx, tx, *set, assign)
}
