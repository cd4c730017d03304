package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"booklibrary/internal/book"
	"booklibrary/internal/config"
	"booklibrary/internal/store"
)

// opener yields a connected handle and the repository timeout to use with it.
type opener func(ctx context.Context) (*store.Handle, *config.Config, error)

func defaultOpener(ctx context.Context) (*store.Handle, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(config.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat))

	s, err := store.Open(ctx, store.Options{
		Driver:         cfg.DBDriver,
		DSN:            cfg.DBDSN,
		Path:           cfg.PebblePath,
		ConnectTimeout: cfg.DBConnectTimeout,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("Connection Error, Database couldnt be reached: %w", err)
	}
	if err := store.EnsureDesign(ctx, s); err != nil {
		_ = s.Close()
		return nil, nil, fmt.Errorf("ensure design document: %w", err)
	}
	return store.Connected(s), cfg, nil
}

func newRootCmd(open opener) *cobra.Command {
	root := &cobra.Command{
		Use:          "catalogctl",
		Short:        "Administer the book catalog",
		Long:         "catalogctl seeds, imports, audits and checks the book catalog using the same store configuration as the API (DB_DRIVER, DB_DSN, PEBBLE_PATH, CONFIG_FILE).",
		SilenceUsage: true,
	}
	root.AddCommand(newSeedCmd(open), newImportCmd(open), newAuditCmd(open), newCheckISBNCmd())
	return root
}

// withService opens the store, runs fn and closes the store again.
func withService(ctx context.Context, open opener, fn func(*book.Service) error) error {
	handle, cfg, err := open(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = handle.Close() }()

	return fn(book.NewService(book.NewDocumentRepo(handle, cfg.DBTimeout)))
}
