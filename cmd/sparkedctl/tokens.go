package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sparked/backend/internal/infra/db"
	"github.com/sparked/backend/internal/integration/persistence"
)

func newTokensCmd(a *app) *cobra.Command {
	tokens := &cobra.Command{
		Use:   "tokens",
		Short: "Maintain refresh and password reset tokens",
	}

	var olderThan time.Duration
	purge := &cobra.Command{
		Use:   "purge",
		Short: "Delete tokens that expired before now minus --older-than",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withDB(func(database *db.Database) error {
				cutoff := time.Now().UTC().Add(-olderThan)
				removed, err := persistence.NewTokenRepository(database.DB()).PurgeExpired(cmd.Context(), cutoff)
				if err != nil {
					return fmt.Errorf("failed to purge tokens: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d expired tokens\n", removed)
				return nil
			})
		},
	}
	purge.Flags().DurationVar(&olderThan, "older-than", 0, "keep tokens that expired more recently than this")

	tokens.AddCommand(purge)
	return tokens
}
