package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/nepfund/platform/internal/config"
	"github.com/nepfund/platform/internal/migration"
	"github.com/nepfund/platform/internal/observability"
	"github.com/nepfund/platform/internal/server"
	"github.com/nepfund/platform/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
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
