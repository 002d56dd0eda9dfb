package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/email"
	"github.com/your-org/storefront-backend/internal/pkg/logger"
)

var testEmailTo string

var testEmailCmd = &cobra.Command{
	Use:   "test-email",
	Short: "Check email provider credentials and send a test message",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log, err := logger.New(cfg)
		if err != nil {
			return err
		}
		svc := email.NewEmailService(cfg, log)

		if err := svc.TestConnection(cmd.Context()); err != nil {
			return fmt.Errorf("%s connection failed: %w", cfg.Email.Provider, err)
		}

		result, err := svc.SendEmail(cmd.Context(), &email.Email{
			To:          []string{testEmailTo},
			Subject:     "Test email from " + cfg.App.Name,
			HTMLContent: "<h1>Success!</h1><p>Email delivery is working.</p>",
			Type:        email.EmailTypeCustom,
		})
		if err != nil {
			return fmt.Errorf("send failed: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Email sent via %s (message id %s)\n", cfg.Email.Provider, result.MessageID)
		return nil
	},
}

func init() {
	testEmailCmd.Flags().StringVar(&testEmailTo, "to", "", "recipient address")
	_ = testEmailCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(testEmailCmd)
}
