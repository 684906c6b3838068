package store

// ReportFilter narrows a report snapshot listing. Zero values mean "any".
type ReportFilter struct {
	ReportType string
}
