package main

import (
	"github.com/spf13/cobra"

	"github.com/jouerflux/jouerflux/internal/database"
	"github.com/jouerflux/jouerflux/internal/logger"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := setup()
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return err
			}
			logger.Log().WithField("driver", cfg.DBDriver).Info("schema migrated")
			return nil
		},
	}
}
