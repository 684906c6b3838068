package reporting

import (
	"context"
	"fmt"
	"sort"

	"github.com/biz-tools/biz-atlas/pkg/models/domain"
	"github.com/biz-tools/biz-atlas/pkg/models/store"
)

const topSellingPeriodsLimit = 3

// SalesMetrics summarizes paid invoices inside the window, including a
// gap-filled daily trend and the top selling weekdays. A window with no
// sales yields the zero record.
func (r *Reporter) SalesMetrics(ctx context.Context, userID string, w domain.Window) (domain.SalesMetrics, error) {
	sales, err := r.invoices.Find(ctx, userID, windowRange(w), store.InvoiceFilter{PaymentStatus: store.PaymentPaid})
	if err != nil {
		return domain.SalesMetrics{}, fmt.Errorf("sales metrics: %w", err)
	}
	if len(sales) == 0 {
		return domain.SalesMetrics{}, nil
	}

	var total float64
	for _, sale := range sales {
		total += sale.TotalAmount
	}

	m := domain.SalesMetrics{
		TotalSales:        total,
		SalesCount:        len(sales),
		AverageSaleValue:  round2(total / float64(len(sales))),
		SalesTrend:        dailyTrend(sales, w),
		TopSellingPeriods: topSellingPeriods(sales),
		ConversionRate:    defaultConversionRate,
		RecurringRevenue:  round2(total * recurringRevenueShare),
	}
	return m, nil
}

// dailyTrend buckets sales by calendar day and emits one point per day in
// the window, zero-filled for days with no sales.
func dailyTrend(sales []store.Invoice, w domain.Window) []domain.TrendPoint {
	type bucket struct {
		sales float64
		count int
	}
	byDay := make(map[string]bucket)
	for _, sale := range sales {
		key := sale.CreatedAt.Format("2006-01-02")
		b := byDay[key]
		b.sales += sale.TotalAmount
		b.count++
		byDay[key] = b
	}

	points := make([]domain.TrendPoint, 0, w.Days())
	for day := w.Start; !day.After(w.End); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		b := byDay[key]
		points = append(points, domain.TrendPoint{Date: key, Sales: b.sales, Count: b.count})
	}
	return points
}

// topSellingPeriods ranks weekdays by aggregated sales, descending, keeping
// the top three. Ties keep first-encountered order.
func topSellingPeriods(sales []store.Invoice) []domain.PeriodSales {
	totals := make(map[string]float64)
	var order []string
	for _, sale := range sales {
		day := sale.CreatedAt.Weekday().String()
		if _, seen := totals[day]; !seen {
			order = append(order, day)
		}
		totals[day] += sale.TotalAmount
	}

	ranked := make([]domain.PeriodSales, 0, len(order))
	for _, day := range order {
		ranked = append(ranked, domain.PeriodSales{Period: day, Sales: totals[day]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Sales > ranked[j].Sales
	})

	if len(ranked) > topSellingPeriodsLimit {
		ranked = ranked[:topSellingPeriodsLimit]
	}
	return ranked
}

// salesTrend computes the daily trend on its own, so chart generation can
// produce a full-length series even when the window holds no sales.
func (r *Reporter) salesTrend(ctx context.Context, userID string, w domain.Window) ([]domain.TrendPoint, error) {
	sales, err := r.invoices.Find(ctx, userID, windowRange(w), store.InvoiceFilter{PaymentStatus: store.PaymentPaid})
	if err != nil {
		return nil, fmt.Errorf("sales trend: %w", err)
	}
	return dailyTrend(sales, w), nil
}
