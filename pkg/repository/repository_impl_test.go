package repository

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tradedesk/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type unit struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	Name      string
	DeletedAt gorm.DeletedAt
}

func TestExistsIgnoresSoftDeletedRows(t *testing.T) {
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&unit{}))

	ctx := context.Background()
	repo := ProvideStore[unit](conn)
	require.NoError(t, repo.Create(ctx, &unit{ID: 1, Name: "KGS"}))

	ok, err := repo.Exists(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, repo.Delete(ctx, 1))
	ok, err = repo.Exists(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.Exists(ctx, 2)
	require.NoError(t, err)
	assert.False(t, ok)
}
