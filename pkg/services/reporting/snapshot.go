package reporting

import (
	"context"
	"fmt"

	"github.com/biz-tools/biz-atlas/pkg/models/domain"
	"github.com/biz-tools/biz-atlas/pkg/models/store"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ReportOptions describe one snapshot generation request.
type ReportOptions struct {
	UserID          string
	ReportType      domain.ReportType
	Period          domain.ReportPeriod
	Window          domain.Window
	IncludeCharts   bool
	IncludeInsights bool
}

// GenerateReport computes the requested report, persists it as an
// append-only snapshot and returns it. The snapshot is a point-in-time
// copy: regenerating later may yield different figures.
func (r *Reporter) GenerateReport(ctx context.Context, opts ReportOptions) (domain.ReportSnapshot, error) {
	logger := zerolog.Ctx(ctx)

	var (
		data     any
		charts   []domain.ChartData
		insights []string
	)

	switch opts.ReportType {
	case domain.ReportFinancial:
		metrics, err := r.FinancialMetrics(ctx, opts.UserID, opts.Window)
		if err != nil {
			return domain.ReportSnapshot{}, err
		}
		data = metrics
		if opts.IncludeCharts {
			if charts, err = r.ChartData(ctx, opts.UserID, ChartRevenueTrend, opts.Window); err != nil {
				return domain.ReportSnapshot{}, err
			}
		}
		if opts.IncludeInsights {
			insights = []string{
				fmt.Sprintf("Total revenue: ₹%.2f", metrics.TotalRevenue),
				fmt.Sprintf("Collection rate: %.1f%%", metrics.CollectionRate),
				fmt.Sprintf("Growth rate: %.1f%%", metrics.GrowthRate),
			}
		}

	case domain.ReportSales:
		metrics, err := r.SalesMetrics(ctx, opts.UserID, opts.Window)
		if err != nil {
			return domain.ReportSnapshot{}, err
		}
		data = metrics
		if opts.IncludeCharts {
			if charts, err = r.ChartData(ctx, opts.UserID, ChartRevenueTrend, opts.Window); err != nil {
				return domain.ReportSnapshot{}, err
			}
		}
		if opts.IncludeInsights {
			insights = []string{
				fmt.Sprintf("Total sales: ₹%.2f", metrics.TotalSales),
				fmt.Sprintf("Average sale value: ₹%.2f", metrics.AverageSaleValue),
				fmt.Sprintf("Sales count: %d", metrics.SalesCount),
			}
		}

	case domain.ReportCustomer:
		metrics, err := r.CustomerMetrics(ctx, opts.UserID, opts.Window)
		if err != nil {
			return domain.ReportSnapshot{}, err
		}
		data = metrics
		if opts.IncludeCharts {
			if charts, err = r.ChartData(ctx, opts.UserID, ChartTopCustomers, opts.Window); err != nil {
				return domain.ReportSnapshot{}, err
			}
		}
		if opts.IncludeInsights {
			insights = []string{
				fmt.Sprintf("Total customers: %d", metrics.TotalCustomers),
				fmt.Sprintf("New customers: %d", metrics.NewCustomers),
				fmt.Sprintf("Average customer value: ₹%.2f", metrics.AverageCustomerValue),
			}
		}

	case domain.ReportBusinessOverview:
		overview, err := r.BusinessOverview(ctx, opts.UserID, opts.Window)
		if err != nil {
			return domain.ReportSnapshot{}, err
		}
		data = overview
		if opts.IncludeCharts {
			for _, chartType := range []string{ChartRevenueTrend, ChartInvoiceStatus, ChartTopCustomers} {
				chart, err := r.ChartData(ctx, opts.UserID, chartType, opts.Window)
				if err != nil {
					return domain.ReportSnapshot{}, err
				}
				charts = append(charts, chart...)
			}
		}
		if opts.IncludeInsights {
			insights = overview.KeyInsights
		}

	default:
		return domain.ReportSnapshot{}, domain.NewValidationError(
			"report_type", fmt.Sprintf("unsupported report type %q", opts.ReportType))
	}

	generatedAt := r.now().UTC()
	snapshot := domain.ReportSnapshot{
		ID:          uuid.NewString(),
		UserID:      opts.UserID,
		ReportType:  opts.ReportType,
		Period:      opts.Period,
		StartDate:   opts.Window.Start,
		EndDate:     opts.Window.End,
		GeneratedAt: generatedAt,
		Data:        data,
		Charts:      charts,
		Insights:    insights,
		Summary: map[string]string{
			"period": fmt.Sprintf("%s to %s",
				opts.Window.Start.Format("2006-01-02"), opts.Window.End.Format("2006-01-02")),
			"generated_at": generatedAt.Format("2006-01-02T15:04:05Z07:00"),
			"type":         string(opts.ReportType),
		},
	}

	if err := r.reports.Insert(ctx, snapshot); err != nil {
		return domain.ReportSnapshot{}, fmt.Errorf("persist report: %w", err)
	}

	logger.Info().
		Str("report_id", snapshot.ID).
		Str("report_type", string(opts.ReportType)).
		Str("user_id", opts.UserID).
		Msg("report generated")

	return snapshot, nil
}

func (r *Reporter) ListReports(
	ctx context.Context,
	userID string,
	filter store.ReportFilter,
	page, pageSize int,
) ([]domain.ReportSnapshot, int, error) {
	return r.reports.List(ctx, userID, filter, page, pageSize)
}

func (r *Reporter) GetReport(ctx context.Context, userID, reportID string) (domain.ReportSnapshot, error) {
	return r.reports.Get(ctx, userID, reportID)
}

func (r *Reporter) DeleteReport(ctx context.Context, userID, reportID string) error {
	return r.reports.Delete(ctx, userID, reportID)
}
