package reporting

import (
	"context"
	"fmt"

	"github.com/biz-tools/biz-atlas/pkg/models/domain"
	"github.com/biz-tools/biz-atlas/pkg/models/store"
)

// FinancialMetrics computes invoicing figures for the window. An empty
// window yields the zero record, never an error.
func (r *Reporter) FinancialMetrics(ctx context.Context, userID string, w domain.Window) (domain.FinancialMetrics, error) {
	invoices, err := r.invoices.Find(ctx, userID, windowRange(w), store.InvoiceFilter{})
	if err != nil {
		return domain.FinancialMetrics{}, fmt.Errorf("financial metrics: %w", err)
	}
	if len(invoices) == 0 {
		return domain.FinancialMetrics{}, nil
	}

	m := domain.FinancialMetrics{
		TotalInvoices: len(invoices),
		ProfitMargin:  defaultProfitMargin,
	}
	for _, inv := range invoices {
		switch inv.PaymentStatus {
		case store.PaymentPaid:
			m.PaidInvoices++
			m.TotalRevenue += inv.TotalAmount
		case store.PaymentPending:
			m.PendingInvoices++
		}
		if inv.PaymentStatus != store.PaymentPaid {
			m.TotalOutstanding += inv.TotalAmount
		}
		if inv.Status == store.InvoiceOverdue {
			m.OverdueInvoices++
		}
	}

	if m.PaidInvoices > 0 {
		m.AverageInvoiceValue = round2(m.TotalRevenue / float64(m.PaidInvoices))
	}
	if m.TotalInvoices > 0 {
		m.CollectionRate = round2(float64(m.PaidInvoices) / float64(m.TotalInvoices) * 100)
	}

	growth, err := r.growthRate(ctx, userID, w, metricRevenue)
	if err != nil {
		return domain.FinancialMetrics{}, fmt.Errorf("financial metrics: %w", err)
	}
	m.GrowthRate = growth

	return m, nil
}
