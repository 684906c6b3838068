package reporting

import (
	"context"
	"fmt"

	"github.com/biz-tools/biz-atlas/pkg/models/domain"
	"github.com/biz-tools/biz-atlas/pkg/models/store"
)

// Supported chart types.
const (
	ChartRevenueTrend  = "revenue_trend"
	ChartInvoiceStatus = "invoice_status"
	ChartTopCustomers  = "top_customers"
)

// ChartData builds the named chart series for the window. An unknown chart
// type returns an empty list, not an error; callers treat chart names as
// presentation hints, never as strict input.
func (r *Reporter) ChartData(ctx context.Context, userID, chartType string, w domain.Window) ([]domain.ChartData, error) {
	switch chartType {
	case ChartRevenueTrend:
		trend, err := r.salesTrend(ctx, userID, w)
		if err != nil {
			return nil, fmt.Errorf("chart data: %w", err)
		}
		points := make([]domain.ChartPoint, 0, len(trend))
		for _, p := range trend {
			points = append(points, domain.ChartPoint{X: p.Date, Y: p.Sales})
		}
		return []domain.ChartData{{
			ChartType:   "line",
			Title:       "Revenue Trend",
			Data:        points,
			XAxis:       "date",
			YAxis:       "sales",
			Colors:      []string{"#3B82F6"},
			Description: "Daily revenue trend over the selected period",
		}}, nil

	case ChartInvoiceStatus:
		invoices, err := r.invoices.Find(ctx, userID, windowRange(w), store.InvoiceFilter{})
		if err != nil {
			return nil, fmt.Errorf("chart data: %w", err)
		}
		counts := make(map[store.PaymentStatus]int)
		var order []store.PaymentStatus
		for _, inv := range invoices {
			status := inv.PaymentStatus
			if status == "" {
				status = "unknown"
			}
			if _, seen := counts[status]; !seen {
				order = append(order, status)
			}
			counts[status]++
		}
		points := make([]domain.ChartPoint, 0, len(order))
		for _, status := range order {
			points = append(points, domain.ChartPoint{X: string(status), Y: float64(counts[status])})
		}
		return []domain.ChartData{{
			ChartType:   "pie",
			Title:       "Invoice Status Distribution",
			Data:        points,
			XAxis:       "status",
			YAxis:       "count",
			Colors:      []string{"#10B981", "#F59E0B", "#EF4444"},
			Description: "Distribution of invoice statuses",
		}}, nil

	case ChartTopCustomers:
		metrics, err := r.CustomerMetrics(ctx, userID, w)
		if err != nil {
			return nil, fmt.Errorf("chart data: %w", err)
		}
		points := make([]domain.ChartPoint, 0, len(metrics.TopCustomers))
		for _, c := range metrics.TopCustomers {
			points = append(points, domain.ChartPoint{X: c.Name, Y: c.Value})
		}
		return []domain.ChartData{{
			ChartType:   "bar",
			Title:       "Top Customers by Revenue",
			Data:        points,
			XAxis:       "name",
			YAxis:       "value",
			Colors:      []string{"#8B5CF6"},
			Description: "Top customers ranked by total revenue",
		}}, nil

	default:
		return []domain.ChartData{}, nil
	}
}
