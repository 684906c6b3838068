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

func TestChartData(t *testing.T) {
	ctx := context.Background()
	window := domain.Window{Start: day(2024, 1, 1), End: day(2024, 1, 3)}
	paidFilter := store.InvoiceFilter{PaymentStatus: store.PaymentPaid}

	t.Run("unknown chart type returns an empty list, not an error", func(t *testing.T) {
		invoices := new(mockInvoiceStore)
		reporter := NewReporter(invoices, new(mockCustomerStore), new(mockReportStore))

		charts, err := reporter.ChartData(ctx, "user-1", "sparkline", window)

		require.NoError(t, err)
		assert.NotNil(t, charts)
		assert.Empty(t, charts)
		invoices.AssertNotCalled(t, "Find")
	})

	t.Run("revenue trend spans the window even with no sales", func(t *testing.T) {
		invoices := new(mockInvoiceStore)
		invoices.On("Find", ctx, "user-1", rangeOf(window), paidFilter).Return([]store.Invoice{}, nil)

		reporter := NewReporter(invoices, new(mockCustomerStore), new(mockReportStore))
		charts, err := reporter.ChartData(ctx, "user-1", ChartRevenueTrend, window)

		require.NoError(t, err)
		require.Len(t, charts, 1)

		chart := charts[0]
		assert.Equal(t, "line", chart.ChartType)
		assert.Equal(t, "Revenue Trend", chart.Title)
		assert.Equal(t, []string{"#3B82F6"}, chart.Colors)
		require.Len(t, chart.Data, window.Days())
		for _, p := range chart.Data {
			assert.Zero(t, p.Y)
		}
		assert.Equal(t, "2024-01-01", chart.Data[0].X)
	})

	t.Run("invoice status buckets keep first-encountered order", func(t *testing.T) {
		all := []store.Invoice{
			paidInvoice("c1", 100, day(2024, 1, 1)),
			pendingInvoice("c2", 50, day(2024, 1, 2)),
			{CustomerID: "c3", TotalAmount: 25, CreatedAt: day(2024, 1, 2)},
			paidInvoice("c4", 75, day(2024, 1, 3)),
		}

		invoices := new(mockInvoiceStore)
		invoices.On("Find", ctx, "user-1", rangeOf(window), store.InvoiceFilter{}).Return(all, nil)

		reporter := NewReporter(invoices, new(mockCustomerStore), new(mockReportStore))
		charts, err := reporter.ChartData(ctx, "user-1", ChartInvoiceStatus, window)

		require.NoError(t, err)
		require.Len(t, charts, 1)

		chart := charts[0]
		assert.Equal(t, "pie", chart.ChartType)
		assert.Equal(t, []domain.ChartPoint{
			{X: "paid", Y: 2},
			{X: "pending", Y: 1},
			{X: "unknown", Y: 1},
		}, chart.Data)
	})

	t.Run("top customers chart plots names against lifetime value", func(t *testing.T) {
		var noRange *store.DateRange

		customers := new(mockCustomerStore)
		customers.On("Find", ctx, "user-1", noRange).
			Return([]store.Customer{customer("c1", "Alice & Co", 2)}, nil)
		customers.On("Find", ctx, "user-1", rangeOf(window)).Return([]store.Customer{}, nil)

		invoices := new(mockInvoiceStore)
		invoices.On("Find", ctx, "user-1", noRange, paidFilter).
			Return([]store.Invoice{paidInvoice("c1", 150, day(2024, 1, 2))}, nil)
		invoices.On("Find", ctx, "user-1", rangeOf(window), store.InvoiceFilter{}).
			Return([]store.Invoice{}, nil)

		reporter := NewReporter(invoices, customers, new(mockReportStore))
		charts, err := reporter.ChartData(ctx, "user-1", ChartTopCustomers, window)

		require.NoError(t, err)
		require.Len(t, charts, 1)

		chart := charts[0]
		assert.Equal(t, "bar", chart.ChartType)
		assert.Equal(t, []domain.ChartPoint{{X: "Alice & Co", Y: 150}}, chart.Data)
	})

	t.Run("store failure is fatal", func(t *testing.T) {
		invoices := new(mockInvoiceStore)
		invoices.On("Find", ctx, "user-1", rangeOf(window), paidFilter).
			Return(nil, fmt.Errorf("%w: find invoices: timeout", store.ErrUnavailable))

		reporter := NewReporter(invoices, new(mockCustomerStore), new(mockReportStore))
		_, err := reporter.ChartData(ctx, "user-1", ChartRevenueTrend, window)

		require.Error(t, err)
		assert.True(t, errors.Is(err, store.ErrUnavailable))
	})
}
