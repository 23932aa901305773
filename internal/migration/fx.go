package migration

import (
	agentdomain "github.com/hotspotid/salesledger/internal/agent/domain"
	"github.com/hotspotid/salesledger/internal/config"
	saledomain "github.com/hotspotid/salesledger/internal/sale/domain"
	"github.com/hotspotid/salesledger/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// mysql and sqlite deployments rely on gorm's schema sync
			if err := conn.AutoMigrate(&agentdomain.User{}, &saledomain.Sale{}); err != nil {
				return err
			}
		}

		if cfg.BootstrapAdmin {
			return seed.EnsureAdminUser(conn)
		}
		return nil
	}),
)
