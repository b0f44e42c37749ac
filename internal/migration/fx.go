package migration

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/founderspw/somanager/internal/config"
	"github.com/founderspw/somanager/internal/seed"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if err := RunMigrations(conn); err != nil {
			return err
		}

		if err := seed.EnsureInvoiceSequence(conn); err != nil {
			return err
		}
		if cfg.SeedSampleData {
			return seed.EnsureSampleData(conn)
		}
		return nil
	}),
)
