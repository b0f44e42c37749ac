package db

import (
	"fmt"
	"os"

	"github.com/glebarez/sqlite"
	"github.com/founderspw/somanager/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Module opens the local SQLite database.
var Module = fx.Provide(Open)

// Open opens (creating if needed) the SQLite database file under the
// configured data dir. Foreign keys are enabled so cascade deletes of
// order lines and assignments behave like the schema says.
func Open(cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", cfg.DBPath())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	log.Info("database opened", zap.String("path", cfg.DBPath()))
	return gdb, nil
}
