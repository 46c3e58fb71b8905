package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tradedesk/internal/config"
	"github.com/smallbiznis/tradedesk/internal/settings/domain"
	"github.com/smallbiznis/tradedesk/pkg/apperror"
	"github.com/smallbiznis/tradedesk/pkg/db/option"
	"github.com/smallbiznis/tradedesk/pkg/db/pagination"
	"github.com/smallbiznis/tradedesk/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Policies *config.DocumentConfigHolder `optional:"true"`
}

// Service is the CRUD service shared by every master-data table.
type Service[T any, PT domain.Record[T]] struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	policies *config.DocumentConfigHolder
	kind     domain.Kind
	repo     repository.Repository[T]
}

func newService[T any, PT domain.Record[T]](p Params, kind domain.Kind) *Service[T, PT] {
	return &Service[T, PT]{
		db:       p.DB,
		log:      p.Log.Named("settings.service").With(zap.String("entity", kind.Entity)),
		genID:    p.GenID,
		policies: p.Policies,
		kind:     kind,
		repo:     repository.ProvideStore[T](p.DB),
	}
}

func (s *Service[T, PT]) Create(ctx context.Context, input domain.Input[T]) (*T, error) {
	model, err := input.Build()
	if err != nil {
		return nil, err
	}
	PT(&model).SetID(s.genID.Generate())

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if s.isDefault(&model) {
			if err := s.clearDefaults(ctx, tx, 0); err != nil {
				return err
			}
		}
		return s.repo.WithTrx(tx).Create(ctx, &model)
	})
	if err != nil {
		return nil, err
	}
	return &model, nil
}

func (s *Service[T, PT]) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse[T], error) {
	listing := s.policies.Get().Listing
	page := pagination.Pagination{Page: req.Page, Limit: req.Limit}.Normalize(listing.DefaultLimit, listing.MaxLimit)

	search := option.ApplySearch(req.Search, s.kind.SearchColumns...)
	total, err := s.repo.Count(ctx, search)
	if err != nil {
		return domain.ListResponse[T]{}, err
	}

	orders := []string{"created_at DESC"}
	if s.kind.DefaultColumn != "" {
		orders = append([]string{s.kind.DefaultColumn + " DESC"}, orders...)
	}
	items, err := s.repo.Find(ctx,
		search,
		option.ApplyOrder(orders...),
		option.ApplyPagination(page.Limit, page.Offset()),
	)
	if err != nil {
		return domain.ListResponse[T]{}, err
	}

	data := make([]T, 0, len(items))
	for _, item := range items {
		data = append(data, *item)
	}
	return domain.ListResponse[T]{Data: data, Meta: pagination.BuildMeta(page, total)}, nil
}

func (s *Service[T, PT]) Get(ctx context.Context, id snowflake.ID) (*T, error) {
	if id == 0 {
		return nil, domain.ErrInvalidID
	}
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NotFound(s.kind.Entity)
	}
	return item, nil
}

func (s *Service[T, PT]) Update(ctx context.Context, id snowflake.ID, patch domain.Patch) (*T, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	values, err := patch.Columns()
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if s.kind.DefaultColumn != "" {
			if flag, ok := values[s.kind.DefaultColumn].(bool); ok && flag {
				if err := s.clearDefaults(ctx, tx, id); err != nil {
					return err
				}
			}
		}
		return s.repo.WithTrx(tx).Update(ctx, id, values)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *Service[T, PT]) Delete(ctx context.Context, id snowflake.ID) error {
	if id == 0 {
		return domain.ErrInvalidID
	}
	live, err := s.repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !live {
		return apperror.NotFound(s.kind.Entity)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("soft deleted", zap.String("id", id.String()))
	return nil
}

func (s *Service[T, PT]) isDefault(model *T) bool {
	if s.kind.DefaultColumn == "" {
		return false
	}
	d, ok := any(model).(domain.Defaultable)
	return ok && d.IsDefault()
}

// clearDefaults unsets the default flag on every live row except keep.
func (s *Service[T, PT]) clearDefaults(ctx context.Context, tx *gorm.DB, keep snowflake.ID) error {
	column := s.kind.DefaultColumn
	return s.repo.WithTrx(tx).UpdateWhere(ctx,
		map[string]any{column: false},
		column+" = ? AND id <> ?", true, keep,
	)
}
