package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tesu-tesu/Antrian-Sehat---Backend/cmd/bootstrap"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/infrastructure/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := bootstrap.Load()
		if err != nil {
			return err
		}
		return database.MigrateUp(cfg.DB)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Roll back migrations (default: 1)",
	Long: `Roll back migrations.

Example:
  antrian migrate down      # Roll back 1 migration
  antrian migrate down 2    # Roll back 2 migrations`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps := 1
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("steps must be a positive number, got %q", args[0])
			}
			steps = n
		}

		cfg, _, err := bootstrap.Load()
		if err != nil {
			return err
		}
		return database.MigrateDown(cfg.DB, steps)
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := bootstrap.Load()
		if err != nil {
			return err
		}

		version, dirty, err := database.MigrationVersion(cfg.DB)
		if err != nil {
			return err
		}
		if dirty {
			fmt.Fprintf(cmd.OutOrStdout(), "%d (dirty)\n", version)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), version)
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
	rootCmd.AddCommand(migrateCmd)
}
