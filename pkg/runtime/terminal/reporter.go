package terminal

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/biz-tools/biz-atlas/pkg/models/domain"
)

// Reporter renders a business overview to the console in a formatted text
// form.
type Reporter struct {
	writer io.Writer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

type dashboard struct {
	Window   domain.Window
	Overview domain.BusinessOverview
	KPIs     []domain.KPIMetric
}

func (c *Reporter) Handle(window domain.Window, overview domain.BusinessOverview, kpis []domain.KPIMetric) error {
	tmpl := `
Business Overview
Period: {{.Window.Start.Format "2006-01-02"}} to {{.Window.End.Format "2006-01-02"}} ({{.Window.Days}} days)

=== Financial ===
Total Revenue:    {{printf "%.2f" .Overview.FinancialMetrics.TotalRevenue}}
Outstanding:      {{printf "%.2f" .Overview.FinancialMetrics.TotalOutstanding}}
Invoices:         {{.Overview.FinancialMetrics.TotalInvoices}} total / {{.Overview.FinancialMetrics.PaidInvoices}} paid / {{.Overview.FinancialMetrics.OverdueInvoices}} overdue
Collection Rate:  {{printf "%.1f" .Overview.FinancialMetrics.CollectionRate}}%
Growth Rate:      {{printf "%.1f" .Overview.FinancialMetrics.GrowthRate}}%

=== Sales ===
Total Sales:      {{printf "%.2f" .Overview.SalesMetrics.TotalSales}} ({{.Overview.SalesMetrics.SalesCount}} sales)
Average Sale:     {{printf "%.2f" .Overview.SalesMetrics.AverageSaleValue}}

=== Customers ===
Total:            {{.Overview.CustomerMetrics.TotalCustomers}}
New This Period:  {{.Overview.CustomerMetrics.NewCustomers}}
Active:           {{.Overview.CustomerMetrics.ActiveCustomers}}
{{range .Overview.CustomerMetrics.TopCustomers}}- {{.Name}}: {{printf "%.2f" .Value}}
{{end}}
=== KPIs ===
{{range .KPIs}}{{.Name}}: {{printf "%.2f" .Value}}{{.Unit}} (target {{printf "%.2f" .Target}}{{if .IsGood}}, on track{{else}}, needs attention{{end}})
{{end}}
=== Insights ===
{{range .Overview.KeyInsights}}- {{.}}
{{end}}
=== Recommendations ===
{{range .Overview.Recommendations}}- {{.}}
{{end}}`

	t, err := template.New("dashboard").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, dashboard{Window: window, Overview: overview, KPIs: kpis})
}
