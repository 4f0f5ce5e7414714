// Command migrate applies the SQL migrations in migrations/ to the database
// named by the same env vars the server uses. It shells out to the atlas CLI
// through the atlasexec SDK, so `atlas` must be on PATH.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"ariga.io/atlas-go-sdk/atlasexec"

	"talazo-api/internal/pkg/config"
)

func main() {
	dir := flag.String("dir", "migrations", "directory containing migration files")
	timeout := flag.Duration("timeout", 60*time.Second, "overall timeout")
	flag.Parse()

	if err := run(*dir, *timeout); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func run(dir string, timeout time.Duration) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := atlasexec.NewClient(".", "atlas")
	if err != nil {
		return fmt.Errorf("failed to initialize atlas client: %w", err)
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL:    cfg.DB.BuildDSN(),
		DirURL: "file://" + dir,
	})
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	slog.Info("migrations applied",
		"applied", len(res.Applied),
		"current", res.Current,
		"target", res.Target,
	)
	return nil
}
