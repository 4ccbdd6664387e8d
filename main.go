package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mishrapravin114/developers-assessment/config"
	"github.com/mishrapravin114/developers-assessment/handlers"
	"github.com/mishrapravin114/developers-assessment/middleware"
	"github.com/mishrapravin114/developers-assessment/services"
	"github.com/mishrapravin114/developers-assessment/storage"
	"github.com/mishrapravin114/developers-assessment/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "worklogs",
		Short:         "Worklog billing and remittance service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadConfig(); err != nil {
				return err
			}
			return utils.InitLogger(config.AppConfig.LogLevel)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			utils.SyncLogger()
		},
	}
	root.AddCommand(newServeCmd(), newGenerateCmd(), newMigrateCmd())
	return root
}

func openDB() (*gorm.DB, error) {
	db, err := storage.Open(config.AppConfig.DBPath)
	if err != nil {
		return nil, err
	}
	utils.Logger.Info("Database ready", zap.String("path", config.AppConfig.DBPath))
	return db, nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.AppConfig.RequireJWTSecret(); err != nil {
				return err
			}
			db, err := openDB()
			if err != nil {
				return err
			}
			defer storage.Close(db)

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

			handlers.InitHandlers(
				services.NewRemittanceService(db, services.NewMetrics(reg)),
				services.NewWorklogService(db),
			)

			app := fiber.New(fiber.Config{DisableStartupMessage: true})
			app.Use(recover.New())
			app.Use(middleware.RequestLogger)
			handlers.SetupRoutes(app, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				utils.Logger.Info("Shutting down")
				_ = app.Shutdown()
			}()

			addr := ":" + config.AppConfig.Port
			utils.Logger.Info("Listening", zap.String("addr", addr))
			return app.Listen(addr)
		},
	}
}

func newGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate remittances for all users with eligible work",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer storage.Close(db)

			svc := services.NewRemittanceService(db, nil)
			result, err := svc.GenerateRemittances(commandContext(cmd))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message())
			return nil
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			return storage.Close(db)
		},
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
