package migrate

import (
	"context"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/angelmondragon/storefront-engine/pkg/config"
	"github.com/angelmondragon/storefront-engine/pkg/db"
	"github.com/angelmondragon/storefront-engine/pkg/logger"
)

// ShouldAutoRun reports whether the API applies migrations at boot. Auto-run
// requires the feature flag and is refused in prod; in dev it always runs, and
// elsewhere only against sqlite.
func ShouldAutoRun(cfg *config.Config) bool {
	if cfg == nil || !cfg.FeatureFlags.AutoMigrate || cfg.App.IsProd() {
		return false
	}
	return cfg.App.IsDev() || cfg.DB.Driver == "sqlite"
}

// MaybeAutoRun applies the embedded migrations for the configured driver when
// ShouldAutoRun allows it.
func MaybeAutoRun(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !ShouldAutoRun(cfg) {
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "driver": cfg.DB.Driver})
	logg.Info(ctx, "migrate.autorun.start")

	if err := RunEmbedded(ctx, sqlDB, cfg.DB.Driver, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	logg.Info(logg.WithField(ctx, "version", version), "migrate.autorun.done")
	return nil
}
