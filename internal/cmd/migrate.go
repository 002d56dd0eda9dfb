package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var skipSeed bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create tables or indexes and seed the administrator",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap()
		if err != nil {
			return err
		}
		defer app.close()

		if err := app.store.Migrate(cmd.Context()); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Migrated %s store\n", app.store.Driver)

		if skipSeed {
			return nil
		}
		admin, err := app.userService.SeedAdmin(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to seed admin user: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Admin user ready: %s\n", admin.Email)
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&skipSeed, "skip-seed", false, "do not create or update the admin user")
	rootCmd.AddCommand(migrateCmd)
}
