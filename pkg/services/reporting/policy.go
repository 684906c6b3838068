package reporting

// Policy constants reported as-is instead of being computed from data.
// Keeping them in one place makes replacing any of them with a real
// calculation a single-point change.
const (
	defaultProfitMargin   = 85.0
	defaultConversionRate = 75.0
	defaultRetentionRate  = 90.0
	defaultChurnRate      = 5.0

	// Share of total sales assumed to recur next period.
	recurringRevenueShare = 0.6
)

// KPI targets and judgment thresholds.
const (
	revenueTargetMultiplier      = 1.2
	collectionRateTarget         = 85.0
	invoiceValueTargetMultiplier = 1.15
	newCustomersTargetMultiplier = 1.25

	collectionRateGoodThreshold = 75.0
	invoiceValueGoodThreshold   = 1000.0
)
