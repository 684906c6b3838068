package reporting

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/biz-tools/biz-atlas/pkg/models/domain"
	"github.com/biz-tools/biz-atlas/pkg/models/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func customer(id, name string, created int) store.Customer {
	return store.Customer{
		ID:        id,
		UserID:    "user-1",
		Name:      name,
		Status:    store.CustomerActive,
		CreatedAt: day(2024, 1, created),
	}
}

func TestCustomerMetrics(t *testing.T) {
	ctx := context.Background()
	window := domain.Window{Start: day(2024, 1, 1), End: day(2024, 1, 31)}
	paidFilter := store.InvoiceFilter{PaymentStatus: store.PaymentPaid}
	var noRange *store.DateRange

	allCustomers := []store.Customer{
		customer("c1", "Alice & Co", 2),
		customer("c2", "Bob Traders", 10),
		customer("c3", "Cara Supplies", 20),
	}

	t.Run("mixes lifetime and window scopes", func(t *testing.T) {
		lifetimePaid := []store.Invoice{
			paidInvoice("c1", 100, day(2024, 1, 5)),
			paidInvoice("c2", 200, day(2024, 1, 12)),
			paidInvoice("c1", 50, day(2024, 1, 20)),
		}
		windowInvoices := []store.Invoice{
			paidInvoice("c1", 100, day(2024, 1, 5)),
			pendingInvoice("c2", 75, day(2024, 1, 25)),
		}

		customers := new(mockCustomerStore)
		customers.On("Find", ctx, "user-1", noRange).Return(allCustomers, nil)
		customers.On("Find", ctx, "user-1", rangeOf(window)).Return(allCustomers[2:], nil)

		invoices := new(mockInvoiceStore)
		invoices.On("Find", ctx, "user-1", noRange, paidFilter).Return(lifetimePaid, nil)
		invoices.On("Find", ctx, "user-1", rangeOf(window), store.InvoiceFilter{}).Return(windowInvoices, nil)

		reporter := NewReporter(invoices, customers, new(mockReportStore))
		metrics, err := reporter.CustomerMetrics(ctx, "user-1", window)

		require.NoError(t, err)
		assert.Equal(t, 3, metrics.TotalCustomers)
		assert.Equal(t, 1, metrics.NewCustomers)
		assert.Equal(t, 2, metrics.ActiveCustomers)
		assert.Equal(t, defaultRetentionRate, metrics.CustomerRetentionRate)
		assert.Equal(t, defaultChurnRate, metrics.ChurnRate)

		assert.Equal(t, []domain.CustomerValue{
			{ID: "c2", Name: "Bob Traders", Value: 200},
			{ID: "c1", Name: "Alice & Co", Value: 150},
		}, metrics.TopCustomers)
		// 350 lifetime value across all three customers.
		assert.Equal(t, 116.67, metrics.AverageCustomerValue)
	})

	t.Run("customer fetch failure is fatal", func(t *testing.T) {
		customers := new(mockCustomerStore)
		customers.On("Find", ctx, "user-1", noRange).
			Return(nil, fmt.Errorf("%w: find customers: no reachable servers", store.ErrUnavailable))

		reporter := NewReporter(new(mockInvoiceStore), customers, new(mockReportStore))
		_, err := reporter.CustomerMetrics(ctx, "user-1", window)

		require.Error(t, err)
		assert.True(t, errors.Is(err, store.ErrUnavailable))
	})

	t.Run("lifetime revenue lookup failure degrades to empty values", func(t *testing.T) {
		customers := new(mockCustomerStore)
		customers.On("Find", ctx, "user-1", noRange).Return(allCustomers, nil)
		customers.On("Find", ctx, "user-1", rangeOf(window)).Return([]store.Customer{}, nil)

		invoices := new(mockInvoiceStore)
		invoices.On("Find", ctx, "user-1", noRange, paidFilter).Return(nil, errors.New("cursor expired"))
		invoices.On("Find", ctx, "user-1", rangeOf(window), store.InvoiceFilter{}).
			Return([]store.Invoice{paidInvoice("c1", 10, day(2024, 1, 6))}, nil)

		reporter := NewReporter(invoices, customers, new(mockReportStore))
		metrics, err := reporter.CustomerMetrics(ctx, "user-1", window)

		require.NoError(t, err)
		assert.Empty(t, metrics.TopCustomers)
		assert.Zero(t, metrics.AverageCustomerValue)
		assert.Equal(t, 3, metrics.TotalCustomers)
		assert.Equal(t, 1, metrics.ActiveCustomers)
	})

	t.Run("active customer lookup failure degrades to zero", func(t *testing.T) {
		customers := new(mockCustomerStore)
		customers.On("Find", ctx, "user-1", noRange).Return(allCustomers, nil)
		customers.On("Find", ctx, "user-1", rangeOf(window)).Return([]store.Customer{}, nil)

		invoices := new(mockInvoiceStore)
		invoices.On("Find", ctx, "user-1", noRange, paidFilter).
			Return([]store.Invoice{paidInvoice("c1", 10, day(2024, 1, 6))}, nil)
		invoices.On("Find", ctx, "user-1", rangeOf(window), store.InvoiceFilter{}).
			Return(nil, errors.New("cursor expired"))

		reporter := NewReporter(invoices, customers, new(mockReportStore))
		metrics, err := reporter.CustomerMetrics(ctx, "user-1", window)

		require.NoError(t, err)
		assert.Zero(t, metrics.ActiveCustomers)
		assert.Len(t, metrics.TopCustomers, 1)
	})
}

func TestCustomerValues(t *testing.T) {
	t.Run("keeps at most five customers, strictly descending", func(t *testing.T) {
		customers := []store.Customer{
			customer("c1", "One", 1), customer("c2", "Two", 1), customer("c3", "Three", 1),
			customer("c4", "Four", 1), customer("c5", "Five", 1), customer("c6", "Six", 1),
		}
		paid := []store.Invoice{
			paidInvoice("c1", 10, day(2024, 1, 1)),
			paidInvoice("c2", 60, day(2024, 1, 1)),
			paidInvoice("c3", 30, day(2024, 1, 1)),
			paidInvoice("c4", 50, day(2024, 1, 1)),
			paidInvoice("c5", 40, day(2024, 1, 1)),
			paidInvoice("c6", 20, day(2024, 1, 1)),
		}

		top, average := customerValues(paid, customers)

		require.Len(t, top, 5)
		assert.Equal(t, "c2", top[0].ID)
		assert.Equal(t, "c4", top[1].ID)
		assert.Equal(t, "c5", top[2].ID)
		assert.Equal(t, "c3", top[3].ID)
		assert.Equal(t, "c6", top[4].ID)
		assert.Equal(t, 35.0, average)
	})

	t.Run("ties keep first-encountered order", func(t *testing.T) {
		customers := []store.Customer{customer("c1", "One", 1), customer("c2", "Two", 1)}
		paid := []store.Invoice{
			paidInvoice("c2", 100, day(2024, 1, 2)),
			paidInvoice("c1", 100, day(2024, 1, 5)),
		}

		top, _ := customerValues(paid, customers)

		require.Len(t, top, 2)
		assert.Equal(t, "c2", top[0].ID)
		assert.Equal(t, "c1", top[1].ID)
	})

	t.Run("skips invoices whose customer no longer resolves", func(t *testing.T) {
		customers := []store.Customer{customer("c1", "One", 1)}
		paid := []store.Invoice{
			paidInvoice("ghost", 500, day(2024, 1, 1)),
			paidInvoice("c1", 100, day(2024, 1, 2)),
		}

		top, average := customerValues(paid, customers)

		require.Len(t, top, 1)
		assert.Equal(t, "c1", top[0].ID)
		// The unresolved invoice still counts toward total lifetime value.
		assert.Equal(t, 600.0, average)
	})

	t.Run("ignores invoices without a customer reference", func(t *testing.T) {
		customers := []store.Customer{customer("c1", "One", 1)}
		paid := []store.Invoice{paidInvoice("", 75, day(2024, 1, 1))}

		top, average := customerValues(paid, customers)

		assert.Empty(t, top)
		assert.Zero(t, average)
	})
}
