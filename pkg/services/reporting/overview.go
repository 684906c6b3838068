package reporting

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/biz-tools/biz-atlas/pkg/models/domain"
	"github.com/biz-tools/biz-atlas/pkg/models/store"
	"github.com/rs/zerolog"
)

type overviewStats struct {
	Financial domain.FinancialMetrics
	Sales     domain.SalesMetrics
	Customers domain.CustomerMetrics
}

// rule is one independent (predicate, message) pair. Rules never exclude
// each other; every rule whose predicate holds contributes its message.
type rule struct {
	applies func(overviewStats) bool
	message func(overviewStats) string
}

var insightRules = []rule{
	{
		applies: func(s overviewStats) bool { return s.Financial.GrowthRate > 10 },
		message: func(s overviewStats) string {
			return fmt.Sprintf("Revenue grew by %.1f%% - excellent growth!", s.Financial.GrowthRate)
		},
	},
	{
		applies: func(s overviewStats) bool { return s.Financial.GrowthRate < -5 },
		message: func(s overviewStats) string {
			return fmt.Sprintf("Revenue declined by %.1f%% - needs attention", math.Abs(s.Financial.GrowthRate))
		},
	},
	{
		applies: func(s overviewStats) bool { return s.Financial.CollectionRate > 80 },
		message: func(s overviewStats) string {
			return fmt.Sprintf("Collection rate is healthy at %.1f%%", s.Financial.CollectionRate)
		},
	},
	{
		applies: func(s overviewStats) bool { return s.Financial.CollectionRate < 60 },
		message: func(s overviewStats) string {
			return fmt.Sprintf("Collection rate is low at %.1f%% - improve payment collection", s.Financial.CollectionRate)
		},
	},
	{
		applies: func(s overviewStats) bool { return s.Customers.NewCustomers > 0 },
		message: func(s overviewStats) string {
			return fmt.Sprintf("Acquired %d new customers this period", s.Customers.NewCustomers)
		},
	},
}

var recommendationRules = []rule{
	{
		applies: func(s overviewStats) bool { return s.Financial.OverdueInvoices > 0 },
		message: func(overviewStats) string {
			return "Set up automated payment reminders to reduce overdue invoices"
		},
	},
	{
		applies: func(s overviewStats) bool { return s.Financial.AverageInvoiceValue > 0 },
		message: func(overviewStats) string {
			return "Consider upselling to increase average invoice value"
		},
	},
	{
		applies: func(s overviewStats) bool { return s.Customers.TotalCustomers > 5 },
		message: func(overviewStats) string {
			return "Implement customer loyalty programs to increase retention"
		},
	},
}

func evaluateRules(rules []rule, s overviewStats) []string {
	messages := make([]string, 0, len(rules))
	for _, r := range rules {
		if r.applies(s) {
			messages = append(messages, r.message(s))
		}
	}
	return messages
}

func performanceIndicators(s overviewStats) map[string]string {
	indicators := map[string]string{
		"revenue_health":      "needs_attention",
		"customer_growth":     "stable",
		"cash_flow":           "needs_attention",
		"business_efficiency": "average",
	}
	if s.Financial.GrowthRate > 0 {
		indicators["revenue_health"] = "good"
	}
	if s.Customers.NewCustomers > 0 {
		indicators["customer_growth"] = "good"
	}
	if s.Financial.CollectionRate > 70 {
		indicators["cash_flow"] = "good"
	}
	if s.Financial.AverageInvoiceValue > invoiceValueGoodThreshold {
		indicators["business_efficiency"] = "good"
	}
	return indicators
}

// BusinessOverview composes the three metric records with rule-derived
// insights and recommendations. The calculators are independent, so they
// run concurrently. A calculator that fails for any reason other than the
// store being unreachable is logged and replaced with its zero record; a
// partial dashboard beats none. Store unavailability aborts the request.
func (r *Reporter) BusinessOverview(ctx context.Context, userID string, w domain.Window) (domain.BusinessOverview, error) {
	logger := zerolog.Ctx(ctx)

	var (
		wg                        sync.WaitGroup
		financial                 domain.FinancialMetrics
		sales                     domain.SalesMetrics
		customers                 domain.CustomerMetrics
		finErr, salesErr, custErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		financial, finErr = r.FinancialMetrics(ctx, userID, w)
	}()
	go func() {
		defer wg.Done()
		sales, salesErr = r.SalesMetrics(ctx, userID, w)
	}()
	go func() {
		defer wg.Done()
		customers, custErr = r.CustomerMetrics(ctx, userID, w)
	}()
	wg.Wait()

	for _, err := range []error{finErr, salesErr, custErr} {
		if errors.Is(err, store.ErrUnavailable) {
			return domain.BusinessOverview{}, fmt.Errorf("business overview: %w", err)
		}
		if err != nil {
			logger.Warn().Err(err).Str("user_id", userID).
				Msg("calculator failed, substituting empty metrics")
		}
	}

	stats := overviewStats{Financial: financial, Sales: sales, Customers: customers}
	return domain.BusinessOverview{
		FinancialMetrics:      financial,
		SalesMetrics:          sales,
		CustomerMetrics:       customers,
		KeyInsights:           evaluateRules(insightRules, stats),
		Recommendations:       evaluateRules(recommendationRules, stats),
		PerformanceIndicators: performanceIndicators(stats),
	}, nil
}
