// Package main is the SparkEd operator CLI.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sparked/backend/config"
	"github.com/sparked/backend/internal/infra/db"
	"github.com/sparked/backend/internal/infra/logging"
)

// opener returns a database handle. Commands close it when they are done.
type opener func() (*db.Database, error)

type app struct {
	cfg  *config.Config
	open opener
	out  io.Writer
	// keepOpen skips Close, for handles shared across commands in tests.
	keepOpen bool
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	slog.SetDefault(logging.New(cfg.Log, os.Stderr))

	a := &app{
		cfg:  cfg,
		open: func() (*db.Database, error) { return db.Open(&cfg.Database) },
		out:  os.Stdout,
	}
	if err := newRootCmd(a).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "sparkedctl",
		Short:         "Operate the SparkEd authentication backend",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetOut(a.out)

	root.AddCommand(newMigrateCmd(a))
	root.AddCommand(newUsersCmd(a))
	root.AddCommand(newTokensCmd(a))
	return root
}

// withDB opens the database, runs fn and closes the handle.
func (a *app) withDB(fn func(*db.Database) error) error {
	database, err := a.open()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if !a.keepOpen {
		defer func() {
			if err := database.Close(); err != nil {
				slog.Error("Failed to close database connection", "error", err)
			}
		}()
	}
	return fn(database)
}
