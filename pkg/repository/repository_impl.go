package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tradedesk/pkg/db/option"
	"gorm.io/gorm"
)

type store[T any] struct {
	db *gorm.DB
}

func ProvideStore[T any](db *gorm.DB) Repository[T] {
	return &store[T]{db: db}
}

func (r *store[T]) WithTrx(tx *gorm.DB) Repository[T] {
	return &store[T]{db: tx}
}

func (r *store[T]) Find(ctx context.Context, opts ...option.QueryOption) ([]*T, error) {
	var result []*T
	stmt := r.buildQuery(ctx, opts...)
	err := stmt.Find(&result).Error
	return result, err
}

func (r *store[T]) FindOne(ctx context.Context, opts ...option.QueryOption) (*T, error) {
	var result T
	stmt := r.buildQuery(ctx, opts...)
	err := stmt.Take(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *store[T]) FindByID(ctx context.Context, id snowflake.ID, opts ...option.QueryOption) (*T, error) {
	opts = append([]option.QueryOption{option.ApplyWhere("id = ?", id)}, opts...)
	return r.FindOne(ctx, opts...)
}

func (r *store[T]) Exists(ctx context.Context, id snowflake.ID) (bool, error) {
	count, err := r.Count(ctx, option.ApplyWhere("id = ?", id))
	return count > 0, err
}

func (r *store[T]) Count(ctx context.Context, opts ...option.QueryOption) (int64, error) {
	var count int64
	err := r.buildQuery(ctx, opts...).Count(&count).Error
	return count, err
}

func (r *store[T]) Create(ctx context.Context, resource *T) error {
	return r.db.WithContext(ctx).Create(resource).Error
}

func (r *store[T]) Update(ctx context.Context, id snowflake.ID, values map[string]any) error {
	if len(values) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(values).Error
}

func (r *store[T]) UpdateWhere(ctx context.Context, values map[string]any, query string, args ...any) error {
	if len(values) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(new(T)).Where(query, args...).Updates(values).Error
}

func (r *store[T]) Delete(ctx context.Context, id snowflake.ID) error {
	var dummy T
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&dummy).Error
}

func (r *store[T]) buildQuery(ctx context.Context, opts ...option.QueryOption) *gorm.DB {
	db := r.db.WithContext(ctx).Model(new(T))

	for _, opt := range opts {
		db = opt.Apply(db)
	}

	return db
}
