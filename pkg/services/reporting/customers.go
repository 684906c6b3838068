package reporting

import (
	"context"
	"fmt"
	"sort"

	"github.com/biz-tools/biz-atlas/pkg/models/domain"
	"github.com/biz-tools/biz-atlas/pkg/models/store"
	"github.com/rs/zerolog"
)

const topCustomersLimit = 5

// CustomerMetrics deliberately mixes scopes: TotalCustomers, TopCustomers
// and AverageCustomerValue cover the user's full history while NewCustomers
// and ActiveCustomers are bound to the window. The invoice-based
// sub-computations degrade to empty values when their lookups fail; the
// customer fetches themselves are fatal.
func (r *Reporter) CustomerMetrics(ctx context.Context, userID string, w domain.Window) (domain.CustomerMetrics, error) {
	logger := zerolog.Ctx(ctx)

	all, err := r.customers.Find(ctx, userID, nil)
	if err != nil {
		return domain.CustomerMetrics{}, fmt.Errorf("customer metrics: %w", err)
	}
	created, err := r.customers.Find(ctx, userID, windowRange(w))
	if err != nil {
		return domain.CustomerMetrics{}, fmt.Errorf("customer metrics: %w", err)
	}

	m := domain.CustomerMetrics{
		TotalCustomers:        len(all),
		NewCustomers:          len(created),
		TopCustomers:          []domain.CustomerValue{},
		CustomerRetentionRate: defaultRetentionRate,
		ChurnRate:             defaultChurnRate,
	}

	paid, err := r.invoices.Find(ctx, userID, nil, store.InvoiceFilter{PaymentStatus: store.PaymentPaid})
	if err != nil {
		logger.Warn().Err(err).Str("user_id", userID).
			Msg("lifetime revenue lookup failed, reporting empty customer values")
	} else {
		m.TopCustomers, m.AverageCustomerValue = customerValues(paid, all)
	}

	windowInvoices, err := r.invoices.Find(ctx, userID, windowRange(w), store.InvoiceFilter{})
	if err != nil {
		logger.Warn().Err(err).Str("user_id", userID).
			Msg("active customer lookup failed, reporting zero active customers")
	} else {
		m.ActiveCustomers = distinctCustomers(windowInvoices)
	}

	return m, nil
}

// customerValues aggregates lifetime paid revenue per customer and returns
// the top customers (joined to their names, strictly descending, ties in
// first-encountered order) plus the average lifetime value across all of
// the user's customers.
func customerValues(paid []store.Invoice, customers []store.Customer) ([]domain.CustomerValue, float64) {
	values := make(map[string]float64)
	var order []string
	for _, inv := range paid {
		if inv.CustomerID == "" {
			continue
		}
		if _, seen := values[inv.CustomerID]; !seen {
			order = append(order, inv.CustomerID)
		}
		values[inv.CustomerID] += inv.TotalAmount
	}

	names := make(map[string]string, len(customers))
	for _, c := range customers {
		names[c.ID] = c.Name
	}

	ranked := make([]domain.CustomerValue, 0, len(order))
	for _, id := range order {
		ranked = append(ranked, domain.CustomerValue{ID: id, Value: values[id]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Value > ranked[j].Value
	})

	top := make([]domain.CustomerValue, 0, topCustomersLimit)
	for _, cv := range ranked {
		if len(top) == topCustomersLimit {
			break
		}
		name, ok := names[cv.ID]
		if !ok {
			// Invoice references a customer record that no longer resolves;
			// leave it out of the ranking.
			continue
		}
		cv.Name = name
		top = append(top, cv)
	}

	var totalValue float64
	for _, v := range values {
		totalValue += v
	}
	var average float64
	if len(customers) > 0 {
		average = round2(totalValue / float64(len(customers)))
	}
	return top, average
}

func distinctCustomers(invoices []store.Invoice) int {
	seen := make(map[string]struct{})
	for _, inv := range invoices {
		if inv.CustomerID == "" {
			continue
		}
		seen[inv.CustomerID] = struct{}{}
	}
	return len(seen)
}
