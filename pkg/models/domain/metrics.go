package domain

// FinancialMetrics summarizes invoicing activity inside a window. All fields
// are derived; a fresh record is computed per request and never mutated.
// Metric records carry bson tags because they are persisted verbatim inside
// report snapshots and must keep their wire names on the round trip.
type FinancialMetrics struct {
	TotalRevenue        float64 `bson:"total_revenue" json:"total_revenue"`
	TotalInvoices       int     `bson:"total_invoices" json:"total_invoices"`
	PaidInvoices        int     `bson:"paid_invoices" json:"paid_invoices"`
	PendingInvoices     int     `bson:"pending_invoices" json:"pending_invoices"`
	OverdueInvoices     int     `bson:"overdue_invoices" json:"overdue_invoices"`
	AverageInvoiceValue float64 `bson:"average_invoice_value" json:"average_invoice_value"`
	TotalOutstanding    float64 `bson:"total_outstanding" json:"total_outstanding"`
	CollectionRate      float64 `bson:"collection_rate" json:"collection_rate"`
	GrowthRate          float64 `bson:"growth_rate" json:"growth_rate"`
	ProfitMargin        float64 `bson:"profit_margin" json:"profit_margin"`
}

// TrendPoint is one day in a gap-filled daily sales series.
type TrendPoint struct {
	Date  string  `bson:"date" json:"date"`
	Sales float64 `bson:"sales" json:"sales"`
	Count int     `bson:"count" json:"count"`
}

// PeriodSales ranks a named period (a weekday) by aggregated sales.
type PeriodSales struct {
	Period string  `bson:"period" json:"period"`
	Sales  float64 `bson:"sales" json:"sales"`
}

type SalesMetrics struct {
	TotalSales        float64       `bson:"total_sales" json:"total_sales"`
	SalesCount        int           `bson:"sales_count" json:"sales_count"`
	AverageSaleValue  float64       `bson:"average_sale_value" json:"average_sale_value"`
	TopSellingPeriods []PeriodSales `bson:"top_selling_periods" json:"top_selling_periods"`
	SalesTrend        []TrendPoint  `bson:"sales_trend" json:"sales_trend"`
	ConversionRate    float64       `bson:"conversion_rate" json:"conversion_rate"`
	RecurringRevenue  float64       `bson:"recurring_revenue" json:"recurring_revenue"`
}

// CustomerValue is a customer ranked by lifetime paid-invoice revenue.
type CustomerValue struct {
	ID    string  `bson:"id" json:"id"`
	Name  string  `bson:"name" json:"name"`
	Value float64 `bson:"value" json:"value"`
}

// CustomerMetrics mixes window-scoped and all-time figures on purpose:
// TotalCustomers, TopCustomers and AverageCustomerValue cover the user's
// whole history, while NewCustomers and ActiveCustomers are window-scoped.
type CustomerMetrics struct {
	TotalCustomers        int             `bson:"total_customers" json:"total_customers"`
	ActiveCustomers       int             `bson:"active_customers" json:"active_customers"`
	NewCustomers          int             `bson:"new_customers" json:"new_customers"`
	CustomerRetentionRate float64         `bson:"customer_retention_rate" json:"customer_retention_rate"`
	AverageCustomerValue  float64         `bson:"average_customer_value" json:"average_customer_value"`
	TopCustomers          []CustomerValue `bson:"top_customers" json:"top_customers"`
	ChurnRate             float64         `bson:"churn_rate" json:"churn_rate"`
}

type BusinessOverview struct {
	FinancialMetrics      FinancialMetrics  `bson:"financial_metrics" json:"financial_metrics"`
	SalesMetrics          SalesMetrics      `bson:"sales_metrics" json:"sales_metrics"`
	CustomerMetrics       CustomerMetrics   `bson:"customer_metrics" json:"customer_metrics"`
	KeyInsights           []string          `bson:"key_insights" json:"key_insights"`
	Recommendations       []string          `bson:"recommendations" json:"recommendations"`
	PerformanceIndicators map[string]string `bson:"performance_indicators" json:"performance_indicators"`
}
