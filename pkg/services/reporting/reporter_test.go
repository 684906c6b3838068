package reporting

import (
	"context"
	"time"

	"github.com/biz-tools/biz-atlas/pkg/models/domain"
	"github.com/biz-tools/biz-atlas/pkg/models/store"
	"github.com/stretchr/testify/mock"
)

type mockInvoiceStore struct {
	mock.Mock
}

func (m *mockInvoiceStore) Find(ctx context.Context, userID string, rng *store.DateRange, filter store.InvoiceFilter) ([]store.Invoice, error) {
	args := m.Called(ctx, userID, rng, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Invoice), args.Error(1)
}

type mockCustomerStore struct {
	mock.Mock
}

func (m *mockCustomerStore) Find(ctx context.Context, userID string, rng *store.DateRange) ([]store.Customer, error) {
	args := m.Called(ctx, userID, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Customer), args.Error(1)
}

type mockReportStore struct {
	mock.Mock
}

func (m *mockReportStore) Insert(ctx context.Context, snapshot domain.ReportSnapshot) error {
	return m.Called(ctx, snapshot).Error(0)
}

func (m *mockReportStore) List(ctx context.Context, userID string, filter store.ReportFilter, page, pageSize int) ([]domain.ReportSnapshot, int, error) {
	args := m.Called(ctx, userID, filter, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ReportSnapshot), args.Int(1), args.Error(2)
}

func (m *mockReportStore) Get(ctx context.Context, userID, reportID string) (domain.ReportSnapshot, error) {
	args := m.Called(ctx, userID, reportID)
	return args.Get(0).(domain.ReportSnapshot), args.Error(1)
}

func (m *mockReportStore) Delete(ctx context.Context, userID, reportID string) error {
	return m.Called(ctx, userID, reportID).Error(0)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func paidInvoice(customerID string, amount float64, created time.Time) store.Invoice {
	return store.Invoice{
		CustomerID:    customerID,
		TotalAmount:   amount,
		PaymentStatus: store.PaymentPaid,
		Status:        store.InvoicePaid,
		CreatedAt:     created,
	}
}

func pendingInvoice(customerID string, amount float64, created time.Time) store.Invoice {
	return store.Invoice{
		CustomerID:    customerID,
		TotalAmount:   amount,
		PaymentStatus: store.PaymentPending,
		Status:        store.InvoiceSent,
		CreatedAt:     created,
	}
}

// rangeOf mirrors the adapter-facing range the reporter derives from a window.
func rangeOf(w domain.Window) *store.DateRange {
	return &store.DateRange{Start: w.Start, End: w.End}
}
