package main

import (
	"github.com/spf13/cobra"

	"github.com/deppfellow/invoice-dashboard/internal/database"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, loggerService, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer loggerService.Shutdown()

			if err := database.Migrate(cmd.Context(), log, cfg); err != nil {
				log.Error().Err(err).Msg("migration failed")
				return err
			}

			log.Info().Msg("database is up to date")
			return nil
		},
	}
}
