package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tradedesk/internal/product/domain"
	"github.com/smallbiznis/tradedesk/internal/product/repository"
	settingsdomain "github.com/smallbiznis/tradedesk/internal/settings/domain"
	"github.com/smallbiznis/tradedesk/pkg/apperror"
	"github.com/smallbiznis/tradedesk/pkg/db"
	"github.com/smallbiznis/tradedesk/pkg/optional"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	node     *snowflake.Node
	products domain.Service
	packages domain.PackageService
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&settingsdomain.Unit{}, &domain.Product{}))
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	p := Params{DB: conn, Log: zap.NewNop(), GenID: node, Repo: repository.Provide()}
	return fixture{db: conn, node: node, products: New(p), packages: NewPackageService(p)}
}

func (f fixture) unit(t *testing.T, name string) settingsdomain.Unit {
	t.Helper()
	u := settingsdomain.Unit{ID: f.node.Generate(), OrderUnit: name}
	require.NoError(t, f.db.Create(&u).Error)
	return u
}

func ptr[T any](v T) *T { return &v }

func TestCreateProductAppliesDefaultsAndPreloadsUnit(t *testing.T) {
	f := newFixture(t)
	kgs := f.unit(t, "KGS")

	p, err := f.products.Create(context.Background(), domain.CreateRequest{
		Name:     "Basmati Rice",
		UnitID:   kgs.ID,
		Variants: []map[string]any{{"grade": "A"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Basmati Rice", *p.Name)
	assert.Equal(t, domain.DefaultInventoryType, p.InventoryType)
	assert.Equal(t, 0.0, p.Gst)
	require.NotNil(t, p.Unit)
	assert.Equal(t, "KGS", p.Unit.OrderUnit)
	require.Len(t, p.Variants, 1)
	assert.Equal(t, "A", p.Variants[0]["grade"])
}

func TestCreateProductRejectsDeletedUnit(t *testing.T) {
	f := newFixture(t)
	kgs := f.unit(t, "KGS")
	require.NoError(t, f.db.Delete(&kgs).Error)

	_, err := f.products.Create(context.Background(), domain.CreateRequest{Name: "Rice", UnitID: kgs.ID})
	assert.ErrorIs(t, err, domain.ErrUnitUnavailable)
	assert.EqualError(t, err, "Unit not found or has been deleted")
}

func TestProductsWithDeletedUnitAreHidden(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	kgs := f.unit(t, "KGS")
	mts := f.unit(t, "MTS")

	_, err := f.products.Create(ctx, domain.CreateRequest{Name: "Rice", UnitID: kgs.ID})
	require.NoError(t, err)
	wheat, err := f.products.Create(ctx, domain.CreateRequest{Name: "Wheat", UnitID: mts.ID})
	require.NoError(t, err)

	require.NoError(t, f.db.Delete(&mts).Error)

	resp, err := f.products.List(ctx, domain.ListRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Rice", *resp.Data[0].Name)
	assert.Equal(t, int64(1), resp.Meta.Total)

	_, err = f.products.Get(ctx, wheat.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestProductSearch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	kgs := f.unit(t, "KGS")

	_, err := f.products.Create(ctx, domain.CreateRequest{Name: "Basmati Rice", UnitID: kgs.ID, HsnSac: ptr("1006")})
	require.NoError(t, err)
	_, err = f.products.Create(ctx, domain.CreateRequest{Name: "Turmeric", UnitID: kgs.ID, ProductTag: ptr("spice")})
	require.NoError(t, err)

	resp, err := f.products.List(ctx, domain.ListRequest{Search: "SPICE"})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Turmeric", *resp.Data[0].Name)

	resp, err = f.products.List(ctx, domain.ListRequest{Search: "100"})
	require.NoError(t, err)
	assert.Len(t, resp.Data, 1)
}

func TestUpdateProductPatchesSuppliedFields(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	kgs := f.unit(t, "KGS")

	p, err := f.products.Create(ctx, domain.CreateRequest{Name: "Rice", UnitID: kgs.ID, Description: ptr("long grain")})
	require.NoError(t, err)

	updated, err := f.products.Update(ctx, p.ID, domain.UpdateRequest{
		SellPrice:   optional.Of(12.5),
		Description: optional.Null[string](),
	})
	require.NoError(t, err)
	assert.Equal(t, "Rice", *updated.Name)
	require.NotNil(t, updated.SellPrice)
	assert.Equal(t, 12.5, *updated.SellPrice)
	assert.Nil(t, updated.Description)
}

func TestDeleteProductTwiceIsNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	kgs := f.unit(t, "KGS")

	p, err := f.products.Create(ctx, domain.CreateRequest{Name: "Rice", UnitID: kgs.ID})
	require.NoError(t, err)

	require.NoError(t, f.products.Delete(ctx, p.ID))
	err = f.products.Delete(ctx, p.ID)
	assert.EqualError(t, err, "Product not found")
}

func TestPackageLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	bag := f.unit(t, "BAG")
	box := f.unit(t, "BOX")

	pkg, err := f.packages.Create(ctx, domain.CreatePackageRequest{UnitID: bag.ID, NetWeight: ptr(25.0), GrossWeight: ptr(25.2)})
	require.NoError(t, err)
	require.NotNil(t, pkg.Unit)
	assert.Equal(t, "BAG", pkg.Unit.OrderUnit)

	_, err = f.packages.Create(ctx, domain.CreatePackageRequest{UnitID: box.ID, NetWeight: ptr(10.0), GrossWeight: ptr(11.0)})
	require.NoError(t, err)

	resp, err := f.packages.List(ctx, domain.ListRequest{Search: "bag"})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, pkg.ID, resp.Data[0].ID)

	updated, err := f.packages.Update(ctx, pkg.ID, domain.UpdatePackageRequest{GrossWeight: optional.Of(26.0)})
	require.NoError(t, err)
	assert.Equal(t, 26.0, *updated.GrossWeight)
	assert.Equal(t, 25.0, *updated.NetWeight)

	require.NoError(t, f.packages.Delete(ctx, pkg.ID))
	_, err = f.packages.Get(ctx, pkg.ID)
	assert.EqualError(t, err, "Package not found")
}

func TestCreatePackageRequiresWeights(t *testing.T) {
	f := newFixture(t)
	bag := f.unit(t, "BAG")

	_, err := f.packages.Create(context.Background(), domain.CreatePackageRequest{UnitID: bag.ID})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "netWeight is required")
}
