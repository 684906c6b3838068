package reporting

import (
	"context"

	"github.com/biz-tools/biz-atlas/pkg/models/domain"
	"github.com/biz-tools/biz-atlas/pkg/models/store"
)

type growthMetric string

// Only revenue is tracked today; the metric name is kept in the signature
// so new series can be added without touching callers.
const metricRevenue growthMetric = "revenue"

// growthRate returns the percentage change of the metric between the window
// and the immediately preceding window of identical length. A zero previous
// value maps to 100.0 when the current value is positive and 0.0 otherwise,
// so growth from an empty base never divides by zero.
func (r *Reporter) growthRate(ctx context.Context, userID string, w domain.Window, metric growthMetric) (float64, error) {
	if metric != metricRevenue {
		return 0, nil
	}

	current, err := r.paidTotal(ctx, userID, w)
	if err != nil {
		return 0, err
	}
	previous, err := r.paidTotal(ctx, userID, w.Previous())
	if err != nil {
		return 0, err
	}

	if previous == 0 {
		if current > 0 {
			return 100.0, nil
		}
		return 0.0, nil
	}
	return round2((current - previous) / previous * 100), nil
}

func (r *Reporter) paidTotal(ctx context.Context, userID string, w domain.Window) (float64, error) {
	paid, err := r.invoices.Find(ctx, userID, windowRange(w), store.InvoiceFilter{PaymentStatus: store.PaymentPaid})
	if err != nil {
		return 0, err
	}
	var total float64
	for _, inv := range paid {
		total += inv.TotalAmount
	}
	return total, nil
}
