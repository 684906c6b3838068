package api

// GenerateReportRequest asks for a stored report snapshot. StartDate and
// EndDate are YYYY-MM-DD strings and are only consulted when Period is
// "custom".
type GenerateReportRequest struct {
	ReportType      string `json:"report_type"`
	Period          string `json:"period"`
	StartDate       string `json:"start_date,omitempty"`
	EndDate         string `json:"end_date,omitempty"`
	IncludeCharts   bool   `json:"include_charts"`
	IncludeInsights bool   `json:"include_insights"`
}

type AssistantQueryRequest struct {
	Question string `json:"question"`
}

type AssistantQueryResponse struct {
	Answer string `json:"answer"`
}
