package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/3suji3/Inventory-management-test/cmd"
	httpadapter "github.com/3suji3/Inventory-management-test/internal/adapters/in/http"
	"github.com/3suji3/Inventory-management-test/internal/adapters/out/postgres"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		log.Fatalf("fulfillment: %v", err)
	}
}

func rootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "fulfillment",
		Short:         "Shipping order fulfillment service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file")

	root.AddCommand(serveCmd(&envFile), migrateCmd(&envFile))
	return root
}

func serveCmd(envFile *string) *cobra.Command {
	var seedDemo bool

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the scheduled jobs",
		RunE: func(command *cobra.Command, _ []string) error {
			configs, err := cmd.LoadConfig(*envFile)
			if err != nil {
				return err
			}
			logger := cmd.NewLogger(configs)

			ctx, stop := signal.NotifyContext(command.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := cmd.NewCompositionRoot(ctx, configs, logger)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := app.Close(); closeErr != nil {
					logger.Error("Failed to close adapters", "error", closeErr)
				}
			}()

			if seedDemo {
				if err = app.SeedDemo(ctx); err != nil {
					return err
				}
			}

			jobManager := app.CreateJobManager()
			if err = jobManager.StartAll(); err != nil {
				return err
			}
			defer jobManager.StopAll()

			return startWebServer(ctx, app, logger, configs.HTTPPort)
		},
	}
	serve.Flags().BoolVar(&seedDemo, "seed-demo", false, "load the demo lots and order on start")
	return serve
}

func migrateCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the postgres schema",
		RunE: func(_ *cobra.Command, _ []string) error {
			configs, err := cmd.LoadConfig(*envFile)
			if err != nil {
				return err
			}
			if configs.StorageDriver != cmd.StoragePostgres {
				return fmt.Errorf("migrate needs STORAGE_DRIVER=%s, got %s", cmd.StoragePostgres, configs.StorageDriver)
			}

			db, err := cmd.OpenDB(configs)
			if err != nil {
				return err
			}
			if err = postgres.Migrate(db); err != nil {
				return fmt.Errorf("failed to migrate: %w", err)
			}

			cmd.NewLogger(configs).Info("Schema migrated")
			return nil
		},
	}
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, logger *slog.Logger, port string) error {
	e, err := httpadapter.NewRouter(ctx, app.CreateHTTPServer(), logger)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	}()

	logger.Info("HTTP server started", "port", port)

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
