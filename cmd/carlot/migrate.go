package main

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"carlot/internal/database/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		if err := migrations.Up(db); err != nil {
			return err
		}
		return logVersion(db)
	},
}

var downSteps int

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		if err := migrations.Down(db, downSteps); err != nil {
			return err
		}
		return logVersion(db)
	},
}

func logVersion(db *sql.DB) error {
	version, dirty, err := migrations.Version(db)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("schema version")
	return nil
}

func init() {
	migrateDownCmd.Flags().IntVar(&downSteps, "steps", 1, "number of migrations to roll back")
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
}
