package reporting

import (
	"context"
	"fmt"

	"github.com/biz-tools/biz-atlas/pkg/models/domain"
)

// KPIMetrics returns the four headline metrics in fixed order: Total
// Revenue, Collection Rate, Average Invoice Value, New Customers. Targets
// are presentation conveniences derived from the current value, not
// forecasts.
func (r *Reporter) KPIMetrics(ctx context.Context, userID string, w domain.Window) ([]domain.KPIMetric, error) {
	financial, err := r.FinancialMetrics(ctx, userID, w)
	if err != nil {
		return nil, fmt.Errorf("kpi metrics: %w", err)
	}
	customers, err := r.CustomerMetrics(ctx, userID, w)
	if err != nil {
		return nil, fmt.Errorf("kpi metrics: %w", err)
	}
	return buildKPIs(financial, customers), nil
}

func buildKPIs(financial domain.FinancialMetrics, customers domain.CustomerMetrics) []domain.KPIMetric {
	return []domain.KPIMetric{
		{
			Name:        "Total Revenue",
			Value:       financial.TotalRevenue,
			Unit:        "₹",
			Change:      financial.GrowthRate,
			ChangeType:  changeType(financial.GrowthRate),
			Description: "Total revenue for the period",
			Target:      round2(financial.TotalRevenue * revenueTargetMultiplier),
			IsGood:      financial.GrowthRate > 0,
		},
		{
			Name:        "Collection Rate",
			Value:       financial.CollectionRate,
			Unit:        "%",
			ChangeType:  "neutral",
			Description: "Percentage of invoices paid on time",
			Target:      collectionRateTarget,
			IsGood:      financial.CollectionRate > collectionRateGoodThreshold,
		},
		{
			Name:        "Average Invoice Value",
			Value:       financial.AverageInvoiceValue,
			Unit:        "₹",
			ChangeType:  "neutral",
			Description: "Average value per invoice",
			Target:      round2(financial.AverageInvoiceValue * invoiceValueTargetMultiplier),
			IsGood:      financial.AverageInvoiceValue > invoiceValueGoodThreshold,
		},
		{
			Name:        "New Customers",
			Value:       float64(customers.NewCustomers),
			Unit:        "",
			ChangeType:  "neutral",
			Description: "New customers acquired this period",
			Target:      round2(float64(customers.NewCustomers) * newCustomersTargetMultiplier),
			IsGood:      customers.NewCustomers > 0,
		},
	}
}

func changeType(change float64) string {
	if change > 0 {
		return "positive"
	}
	return "negative"
}
