package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tradedesk/internal/settings/domain"
	"github.com/smallbiznis/tradedesk/pkg/apperror"
	"github.com/smallbiznis/tradedesk/pkg/db"
	"github.com/smallbiznis/tradedesk/pkg/optional"
	"github.com/smallbiznis/tradedesk/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestParams(t *testing.T) Params {
	t.Helper()
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&domain.Port{},
		&domain.BankDetail{},
		&domain.Unit{},
		&domain.Currency{},
	))
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return Params{DB: conn, Log: zap.NewNop(), GenID: node}
}

func bankRequest(name string, markAsDefault bool) domain.CreateBankDetailRequest {
	return domain.CreateBankDetailRequest{
		BankName:        name,
		AccountNo:       "0001",
		SwiftCode:       "SWIFT01",
		IfscCode:        "IFSC01",
		BeneficiaryName: "Acme Exports",
		AdCode:          "AD01",
		MarkAsDefault:   markAsDefault,
	}
}

func TestBankDetailListPutsDefaultFirst(t *testing.T) {
	ctx := context.Background()
	svc := NewBankDetailService(newTestParams(t))

	_, err := svc.Create(ctx, bankRequest("First Bank", false))
	require.NoError(t, err)
	def, err := svc.Create(ctx, bankRequest("Default Bank", true))
	require.NoError(t, err)
	_, err = svc.Create(ctx, bankRequest("Third Bank", false))
	require.NoError(t, err)

	resp, err := svc.List(ctx, domain.ListRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Data, 3)
	assert.Equal(t, def.ID, resp.Data[0].ID)
	assert.Equal(t, int64(3), resp.Meta.Total)
	assert.Equal(t, 10, resp.Meta.Limit)
}

func TestBankDetailCreateAppliesDefaults(t *testing.T) {
	svc := NewBankDetailService(newTestParams(t))

	bank, err := svc.Create(context.Background(), bankRequest("HDFC", false))
	require.NoError(t, err)
	assert.Equal(t, "N", bank.IsVostroPayment)
	assert.Equal(t, "CURRENT ACCOUNT", bank.AccountType)
}

func TestMarkAsDefaultClearsPreviousDefault(t *testing.T) {
	ctx := context.Background()
	svc := NewBankDetailService(newTestParams(t))

	first, err := svc.Create(ctx, bankRequest("First", true))
	require.NoError(t, err)
	second, err := svc.Create(ctx, bankRequest("Second", true))
	require.NoError(t, err)

	reloaded, err := svc.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.MarkAsDefault)

	updated, err := svc.Update(ctx, first.ID, domain.UpdateBankDetailRequest{MarkAsDefault: optional.Of(true)})
	require.NoError(t, err)
	assert.True(t, updated.MarkAsDefault)

	reloaded, err = svc.Get(ctx, second.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.MarkAsDefault)
}

func TestCreateRejectsMissingRequiredFields(t *testing.T) {
	svc := NewPortService(newTestParams(t))

	_, err := svc.Create(context.Background(), domain.CreatePortRequest{Country: "India"})

	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Violations, 1)
	assert.Equal(t, "portName", verr.Violations[0].Field)
}

func TestPortSearchIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	svc := NewPortService(newTestParams(t))

	for _, req := range []domain.CreatePortRequest{
		{Country: "India", PortName: "Nhava Sheva"},
		{Country: "India", PortName: "Mundra"},
		{Country: "Netherlands", PortName: "Rotterdam"},
	} {
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}

	resp, err := svc.List(ctx, domain.ListRequest{Search: "INDIA"})
	require.NoError(t, err)
	assert.Len(t, resp.Data, 2)

	resp, err = svc.List(ctx, domain.ListRequest{Search: "rotter"})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Rotterdam", resp.Data[0].PortName)
}

func TestListPaginates(t *testing.T) {
	ctx := context.Background()
	svc := NewPortService(newTestParams(t))

	for _, name := range []string{"A", "B", "C"} {
		_, err := svc.Create(ctx, domain.CreatePortRequest{Country: "India", PortName: name})
		require.NoError(t, err)
	}

	resp, err := svc.List(ctx, domain.ListRequest{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, 2, resp.Meta.TotalPages)
}

func TestListPageFarPastTheEndIsEmpty(t *testing.T) {
	ctx := context.Background()
	svc := NewPortService(newTestParams(t))

	for _, name := range []string{"A", "B", "C"} {
		_, err := svc.Create(ctx, domain.CreatePortRequest{Country: "India", PortName: name})
		require.NoError(t, err)
	}

	resp, err := svc.List(ctx, domain.ListRequest{Page: math.MaxInt64 / 5, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, resp.Data)
	assert.Equal(t, int64(3), resp.Meta.Total)
	assert.Equal(t, 1, resp.Meta.TotalPages)
}

func TestDeleteIsSoftAndHidesRow(t *testing.T) {
	ctx := context.Background()
	params := newTestParams(t)
	svc := NewPortService(params)

	port, err := svc.Create(ctx, domain.CreatePortRequest{Country: "India", PortName: "Mundra"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, port.ID))

	_, err = svc.Get(ctx, port.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	assert.EqualError(t, err, "Port not found")

	err = svc.Delete(ctx, port.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	assert.ErrorIs(t, svc.Delete(ctx, 0), domain.ErrInvalidID)

	var count int64
	require.NoError(t, params.DB.Unscoped().Model(&domain.Port{}).Where("id = ?", port.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdateRejectsNullOnRequiredColumn(t *testing.T) {
	ctx := context.Background()
	svc := NewPortService(newTestParams(t))

	port, err := svc.Create(ctx, domain.CreatePortRequest{Country: "India", PortName: "Mundra"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, port.ID, domain.UpdatePortRequest{PortName: optional.Null[string]()})
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)

	code := "INMUN1"
	updated, err := svc.Update(ctx, port.ID, domain.UpdatePortRequest{PortCode: optional.Of(code)})
	require.NoError(t, err)
	require.NotNil(t, updated.PortCode)
	assert.Equal(t, code, *updated.PortCode)
	assert.Equal(t, "Mundra", updated.PortName)
}

func TestUnitDefaultUsesIsDefaultColumn(t *testing.T) {
	ctx := context.Background()
	svc := NewUnitService(newTestParams(t))

	a, err := svc.Create(ctx, domain.CreateUnitRequest{OrderUnit: "KGS", Default: true})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateUnitRequest{OrderUnit: "MTS", Default: true})
	require.NoError(t, err)

	reloaded, err := svc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.Default)
}
