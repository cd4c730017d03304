package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"booklibrary/internal/config"
	"booklibrary/internal/store"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	slog.SetDefault(config.NewLogger(os.Stderr, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT")))

	dsn, migrationsDir, err := migrateSettings()
	if err != nil {
		fatal("invalid configuration", err)
	}

	if *command == "create" {
		if *name == "" {
			fatal("name is required for 'create' command", nil)
		}
		if err := goose.Create(nil, migrationsDir, *name, "sql"); err != nil {
			fatal("failed to create migration", err)
		}
		slog.Info("migration created", "name", *name, "dir", migrationsDir)
		return
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		fatal("failed to connect to database", err, "dsn", store.RedactDSN(dsn))
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(nil)
	if err := goose.SetDialect("postgres"); err != nil {
		fatal("failed to set dialect", err)
	}

	switch *command {
	case "up":
		if err := goose.UpContext(ctx, db, migrationsDir); err != nil {
			fatal("failed to run migrations", err)
		}
		slog.Info("migrations applied successfully", "dir", migrationsDir)
	case "down":
		if err := goose.DownContext(ctx, db, migrationsDir); err != nil {
			fatal("failed to rollback migrations", err)
		}
		slog.Info("migrations rolled back successfully", "dir", migrationsDir)
	case "status":
		if err := goose.StatusContext(ctx, db, migrationsDir); err != nil {
			fatal("failed to check migration status", err)
		}
	default:
		fatal("unknown command, use: up, down, status, create", nil, "command", *command)
	}
}

func fatal(msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err)
	}
	slog.Error(msg, args...)
	os.Exit(1)
}
