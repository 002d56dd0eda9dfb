package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API server. Tables or indexes are migrated and the
administrator account is seeded before the server accepts requests.
SIGINT or SIGTERM drains in-flight requests and pending emails.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	app, err := bootstrap()
	if err != nil {
		return err
	}
	defer app.close()

	log := app.logger
	log.WithFields(logrus.Fields{
		"app":         app.config.App.Name,
		"version":     app.config.App.Version,
		"environment": app.config.App.Environment,
		"driver":      app.store.Driver,
	}).Info("starting storefront")

	ctx := cmd.Context()

	if err := app.store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	if _, err := app.userService.SeedAdmin(ctx); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	server := app.server()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		if err != nil {
			return err
		}
		return nil
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		log.WithError(err).Error("server forced to shutdown")
	}
	if err := app.dispatcher.Wait(shutdownCtx); err != nil {
		log.WithError(err).Warn("pending emails abandoned")
	}

	log.Info("server exited")
	return nil
}
