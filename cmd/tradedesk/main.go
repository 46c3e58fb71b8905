package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tradedesk/internal/clock"
	"github.com/smallbiznis/tradedesk/internal/config"
	"github.com/smallbiznis/tradedesk/internal/migration"
	"github.com/smallbiznis/tradedesk/internal/observability"
	"github.com/smallbiznis/tradedesk/internal/seed"
	"github.com/smallbiznis/tradedesk/internal/server"
	"github.com/smallbiznis/tradedesk/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core Infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,

		// schema and bootstrap rows before routes accept traffic
		seed.Module,
		migration.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
