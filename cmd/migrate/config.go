package main

import (
	"fmt"

	"booklibrary/internal/config"
)

// migrateSettings resolves the DSN and migrations directory through the shared config
// so MIGRATIONS_DIR, DB_DSN and CONFIG_FILE behave the same as for the API.
func migrateSettings() (dsn, dir string, err error) {
	cfg, err := config.Load()
	if err != nil {
		return "", "", err
	}
	if cfg.DBDriver != "postgres" {
		return "", "", fmt.Errorf("migrations only apply to the postgres driver, DB_DRIVER is %q", cfg.DBDriver)
	}
	return cfg.DBDSN, cfg.MigrationsDir, nil
}
