package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/auth"
)

var hashCost int

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Print a bcrypt hash for a password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pm := auth.NewPasswordManager(&config.Config{
			Security: config.SecurityConfig{BcryptCost: hashCost},
		})

		hash, err := pm.HashPassword(args[0])
		if err != nil {
			return fmt.Errorf("error generating hash: %w", err)
		}
		if err := pm.VerifyPassword(args[0], hash); err != nil {
			return fmt.Errorf("hash verification failed: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

func init() {
	hashPasswordCmd.Flags().IntVar(&hashCost, "cost", 12, "bcrypt cost")
	rootCmd.AddCommand(hashPasswordCmd)
}
