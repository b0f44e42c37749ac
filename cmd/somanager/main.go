package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/founderspw/somanager/internal/clock"
	"github.com/founderspw/somanager/internal/config"
	"github.com/founderspw/somanager/internal/migration"
	"github.com/founderspw/somanager/internal/scheduler"
	"github.com/founderspw/somanager/internal/server"
	"github.com/founderspw/somanager/pkg/db"
	"github.com/founderspw/somanager/pkg/log"
)

func main() {
	app := fx.New(
		config.Module,
		log.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
		scheduler.Module,
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
