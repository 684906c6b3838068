package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/biz-tools/biz-atlas/pkg/server"
	"github.com/biz-tools/biz-atlas/pkg/services/config"
	"github.com/biz-tools/biz-atlas/pkg/services/insight"
	"github.com/biz-tools/biz-atlas/pkg/services/period"
	"github.com/biz-tools/biz-atlas/pkg/services/reporting"
	"github.com/biz-tools/biz-atlas/pkg/store/mongodb"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "web",
		Short: "Start the Biz Atlas reporting server",
		RunE:  runServer,
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("No .env file loaded: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	connectCtx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	db, err := mongodb.Connect(connectCtx, mongodb.Settings{
		URL:      cfg.MongoURL,
		Database: cfg.DBName,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to store: %w", err)
	}
	defer func() {
		if err := mongodb.Disconnect(context.Background(), db); err != nil {
			logger.Error().Err(err).Msg("failed to close store connection")
		}
	}()

	invoices := mongodb.NewInvoiceStore(db)
	customers := mongodb.NewCustomerStore(db)
	reports := mongodb.NewReportStore(db)

	reporter := reporting.NewReporter(invoices, customers, reports)
	resolver := period.NewResolver()
	assistant := insight.NewAssistant(
		openai.NewClient(cfg.OpenAIAPIKey),
		invoices,
		customers,
		cfg.ContextCacheTTL,
	)

	addr := net.JoinHostPort(cfg.ServerHost, cfg.ServerPort)
	api := server.NewWebAPI(logger, server.Config{
		Addr:            addr,
		ShutdownTimeout: cfg.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Reporting: reporter,
			Periods:   resolver,
			Assistant: assistant,
		},
	})

	return api.Start()
}
