package domain

import "time"

type ReportType string

const (
	ReportFinancial        ReportType = "financial"
	ReportSales            ReportType = "sales"
	ReportCustomer         ReportType = "customer"
	ReportBusinessOverview ReportType = "business_overview"
)

type ReportPeriod string

const (
	PeriodToday   ReportPeriod = "today"
	PeriodWeek    ReportPeriod = "week"
	PeriodMonth   ReportPeriod = "month"
	PeriodQuarter ReportPeriod = "quarter"
	PeriodYear    ReportPeriod = "year"
	PeriodCustom  ReportPeriod = "custom"
)

// ReportSnapshot is a persisted, point-in-time copy of computed report data.
// It is append-only and never treated as a source of truth; regenerating the
// same report later may yield different figures.
type ReportSnapshot struct {
	ID          string            `bson:"id" json:"id"`
	UserID      string            `bson:"user_id" json:"user_id"`
	ReportType  ReportType        `bson:"report_type" json:"report_type"`
	Period      ReportPeriod      `bson:"period" json:"period"`
	StartDate   time.Time         `bson:"start_date" json:"start_date"`
	EndDate     time.Time         `bson:"end_date" json:"end_date"`
	GeneratedAt time.Time         `bson:"generated_at" json:"generated_at"`
	Data        any               `bson:"data" json:"data"`
	Charts      []ChartData       `bson:"charts" json:"charts"`
	Insights    []string          `bson:"insights" json:"insights"`
	Summary     map[string]string `bson:"summary" json:"summary"`
}
