package reporting

import (
	"context"
	"math"
	"time"

	"github.com/biz-tools/biz-atlas/pkg/models/domain"
	"github.com/biz-tools/biz-atlas/pkg/models/store"
)

type InvoiceStore interface {
	Find(ctx context.Context, userID string, rng *store.DateRange, filter store.InvoiceFilter) ([]store.Invoice, error)
}

type CustomerStore interface {
	Find(ctx context.Context, userID string, rng *store.DateRange) ([]store.Customer, error)
}

type ReportStore interface {
	Insert(ctx context.Context, snapshot domain.ReportSnapshot) error
	List(ctx context.Context, userID string, filter store.ReportFilter, page, pageSize int) ([]domain.ReportSnapshot, int, error)
	Get(ctx context.Context, userID, reportID string) (domain.ReportSnapshot, error)
	Delete(ctx context.Context, userID, reportID string) error
}

// Reporter computes financial, sales and customer metrics for a user over a
// window, and derives overviews, charts, KPIs and stored report snapshots
// from them. It holds no per-request state; all methods are read-only
// against the stores except snapshot persistence, which is append-only.
type Reporter struct {
	invoices  InvoiceStore
	customers CustomerStore
	reports   ReportStore
	now       func() time.Time
}

func NewReporter(invoices InvoiceStore, customers CustomerStore, reports ReportStore) *Reporter {
	return &Reporter{
		invoices:  invoices,
		customers: customers,
		reports:   reports,
		now:       time.Now,
	}
}

func windowRange(w domain.Window) *store.DateRange {
	return &store.DateRange{Start: w.Start, End: w.End}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
