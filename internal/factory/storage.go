package factory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/daylio-dash/daylio-dash/internal/config"
	storepkg "github.com/daylio-dash/daylio-dash/internal/store"
	storepg "github.com/daylio-dash/daylio-dash/internal/store/postgres"
	storesqlite "github.com/daylio-dash/daylio-dash/internal/store/sqlite"
)

// NewStore opens and migrates the store selected by cfg.DBDriver.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storepkg.Store, error) {
	storeLog := log.With().Str("component", "store").Str("driver", cfg.DBDriver).Logger()

	switch cfg.DBDriver {
	case config.DriverSQLite:
		st, err := storesqlite.New(ctx, cfg.SQLitePath, storeLog)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store at %s: %w", cfg.SQLitePath, err)
		}
		return st, nil
	case config.DriverPostgres:
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("DAYLIO_POSTGRES_DSN is required when DB_DRIVER=postgres")
		}
		st, err := storepg.New(ctx, cfg.PostgresDSN, storeLog)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}
