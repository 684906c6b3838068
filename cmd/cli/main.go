package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/biz-tools/biz-atlas/pkg/models/domain"
	"github.com/biz-tools/biz-atlas/pkg/runtime/terminal"
	"github.com/biz-tools/biz-atlas/pkg/services/period"
	"github.com/biz-tools/biz-atlas/pkg/services/reporting"
	"github.com/biz-tools/biz-atlas/pkg/store/mongodb"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	userID     string
	periodName string
	mongoURL   string
	dbName     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "biz-atlas",
		Short: "Business reporting tool",
	}

	dashboardCmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Print the business overview for a user",
		RunE:  runDashboard,
	}
	dashboardCmd.Flags().StringVarP(&userID, "user", "u", "", "User id to report on (required)")
	dashboardCmd.Flags().StringVarP(&periodName, "period", "p", "month", "Report period (today, week, month, quarter, year)")
	dashboardCmd.Flags().StringVar(&mongoURL, "mongo-url", os.Getenv("MONGO_URL"), "Mongo connection string")
	dashboardCmd.Flags().StringVar(&dbName, "db", "biz_atlas", "Database name")
	_ = dashboardCmd.MarkFlagRequired("user")

	rootCmd.AddCommand(dashboardCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err == nil && mongoURL == "" {
		mongoURL = os.Getenv("MONGO_URL")
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db, err := mongodb.Connect(connectCtx, mongodb.Settings{URL: mongoURL, Database: dbName})
	if err != nil {
		return fmt.Errorf("failed to connect to store: %w", err)
	}
	defer func() {
		_ = mongodb.Disconnect(context.Background(), db)
	}()

	reporter := reporting.NewReporter(
		mongodb.NewInvoiceStore(db),
		mongodb.NewCustomerStore(db),
		mongodb.NewReportStore(db),
	)

	window, err := period.NewResolver().Resolve(domain.ReportPeriod(periodName), nil, nil)
	if err != nil {
		return err
	}

	overview, err := reporter.BusinessOverview(ctx, userID, window)
	if err != nil {
		return fmt.Errorf("failed to compute overview: %w", err)
	}
	kpis, err := reporter.KPIMetrics(ctx, userID, window)
	if err != nil {
		return fmt.Errorf("failed to compute KPIs: %w", err)
	}

	return terminal.NewReporter(os.Stdout).Handle(window, overview, kpis)
}
