package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/banshee-data/holdmap/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the hold store schema",
	Long: `Apply, roll back or inspect the schema migrations of the hold store.

"serve" and "import" migrate up on their own; use this to check a store or
step it back before downgrading the binary.`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.OutOrStdout(), func(database *db.DB) error {
			return database.MigrateUp(db.Migrations())
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.OutOrStdout(), func(database *db.DB) error {
			return database.MigrateDown(db.Migrations())
		})
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the schema version of the hold store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.OutOrStdout(), nil)
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
}

// withStore opens the store without migrating it, runs fn when non-nil and
// reports the resulting schema version.
func withStore(w io.Writer, fn func(*db.DB) error) error {
	database, err := db.OpenDB(cfg.GetDBPath())
	if err != nil {
		return err
	}
	defer database.Close()

	if fn != nil {
		if err := fn(database); err != nil {
			return err
		}
	}

	migrations := db.Migrations()
	version, dirty, err := database.MigrateVersion(migrations)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	latest, err := db.LatestMigrationVersion(migrations)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "schema version %d of %d", version, latest)
	if dirty {
		fmt.Fprint(w, " (dirty)")
	}
	fmt.Fprintln(w)
	return nil
}
