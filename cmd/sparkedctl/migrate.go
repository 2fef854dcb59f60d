package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sparked/backend/internal/infra/db"
	"github.com/sparked/backend/internal/integration/persistence/model"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withDB(func(database *db.Database) error {
				if err := database.AutoMigrate(model.All()...); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Migrations applied (%s).\n", database.Driver())
				return nil
			})
		},
	}
}
