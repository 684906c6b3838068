package reports

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/biz-tools/biz-atlas/pkg/models/api"
	"github.com/biz-tools/biz-atlas/pkg/models/domain"
	"github.com/biz-tools/biz-atlas/pkg/models/store"
	"github.com/biz-tools/biz-atlas/pkg/services/reporting"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const (
	defaultPeriod   = domain.PeriodMonth
	defaultPageSize = 10
	maxPageSize     = 50
	dateLayout      = "2006-01-02"
)

type ReportingService interface {
	FinancialMetrics(ctx context.Context, userID string, w domain.Window) (domain.FinancialMetrics, error)
	SalesMetrics(ctx context.Context, userID string, w domain.Window) (domain.SalesMetrics, error)
	CustomerMetrics(ctx context.Context, userID string, w domain.Window) (domain.CustomerMetrics, error)
	BusinessOverview(ctx context.Context, userID string, w domain.Window) (domain.BusinessOverview, error)
	ChartData(ctx context.Context, userID, chartType string, w domain.Window) ([]domain.ChartData, error)
	KPIMetrics(ctx context.Context, userID string, w domain.Window) ([]domain.KPIMetric, error)
	GenerateReport(ctx context.Context, opts reporting.ReportOptions) (domain.ReportSnapshot, error)
	ListReports(ctx context.Context, userID string, filter store.ReportFilter, page, pageSize int) ([]domain.ReportSnapshot, int, error)
	GetReport(ctx context.Context, userID, reportID string) (domain.ReportSnapshot, error)
	DeleteReport(ctx context.Context, userID, reportID string) error
}

type PeriodResolver interface {
	Resolve(p domain.ReportPeriod, start, end *time.Time) (domain.Window, error)
}

type Assistant interface {
	Ask(ctx context.Context, userID, question string) (string, error)
}

type Handler struct {
	reporting ReportingService
	periods   PeriodResolver
	assistant Assistant
}

func NewHandler(reportingSvc ReportingService, periods PeriodResolver, assistant Assistant) *Handler {
	return &Handler{
		reporting: reportingSvc,
		periods:   periods,
		assistant: assistant,
	}
}

// Dashboard bundles the overview, the KPIs and the default charts into one
// response, mirroring what the dashboard screen renders.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	window, period, err := h.resolveWindow(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	overview, err := h.reporting.BusinessOverview(ctx, userID, window)
	if err != nil {
		writeError(w, r, err)
		return
	}
	kpis, err := h.reporting.KPIMetrics(ctx, userID, window)
	if err != nil {
		writeError(w, r, err)
		return
	}

	charts := make([]domain.ChartData, 0, 2)
	for _, chartType := range []string{reporting.ChartRevenueTrend, reporting.ChartInvoiceStatus} {
		chart, err := h.reporting.ChartData(ctx, userID, chartType, window)
		if err != nil {
			writeError(w, r, err)
			return
		}
		charts = append(charts, chart...)
	}

	writeSuccess(w, r, "Dashboard data retrieved successfully", map[string]any{
		"overview":    overview,
		"kpi_metrics": kpis,
		"charts":      charts,
		"period":      period,
		"date_range": map[string]string{
			"start_date": window.Start.Format(dateLayout),
			"end_date":   window.End.Format(dateLayout),
		},
	})
}

func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req api.GenerateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.NewValidationError("body", "malformed JSON"))
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		writeError(w, r, err)
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		writeError(w, r, err)
		return
	}

	period := domain.ReportPeriod(req.Period)
	window, err := h.periods.Resolve(period, start, end)
	if err != nil {
		writeError(w, r, err)
		return
	}

	snapshot, err := h.reporting.GenerateReport(ctx, reporting.ReportOptions{
		UserID:          userID,
		ReportType:      domain.ReportType(req.ReportType),
		Period:          period,
		Window:          window,
		IncludeCharts:   req.IncludeCharts,
		IncludeInsights: req.IncludeInsights,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, r, "Report generated successfully", map[string]any{"report": snapshot})
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	page := queryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := queryInt(r, "page_size", defaultPageSize)
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}
	filter := store.ReportFilter{ReportType: r.URL.Query().Get("report_type")}

	snapshots, total, err := h.reporting.ListReports(ctx, userID, filter, page, pageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}

	totalPages := (total + pageSize - 1) / pageSize
	writeJSON(w, r, http.StatusOK, api.PaginatedResponse{
		Success: true,
		Message: "Reports retrieved successfully",
		Data:    snapshots,
		Pagination: api.Pagination{
			Page:       page,
			PageSize:   pageSize,
			TotalItems: total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
			HasPrev:    page > 1,
		},
	})
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	snapshot, err := h.reporting.GetReport(r.Context(), userID, chi.URLParam(r, "reportID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, r, "Report retrieved successfully", map[string]any{"report": snapshot})
}

func (h *Handler) DeleteReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	if err := h.reporting.DeleteReport(r.Context(), userID, chi.URLParam(r, "reportID")); err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, r, "Report deleted successfully", nil)
}

func (h *Handler) FinancialMetrics(w http.ResponseWriter, r *http.Request) {
	h.metrics(w, r, func(ctx context.Context, userID string, window domain.Window) (any, error) {
		return h.reporting.FinancialMetrics(ctx, userID, window)
	})
}

func (h *Handler) SalesMetrics(w http.ResponseWriter, r *http.Request) {
	h.metrics(w, r, func(ctx context.Context, userID string, window domain.Window) (any, error) {
		return h.reporting.SalesMetrics(ctx, userID, window)
	})
}

func (h *Handler) CustomerMetrics(w http.ResponseWriter, r *http.Request) {
	h.metrics(w, r, func(ctx context.Context, userID string, window domain.Window) (any, error) {
		return h.reporting.CustomerMetrics(ctx, userID, window)
	})
}

func (h *Handler) metrics(
	w http.ResponseWriter,
	r *http.Request,
	compute func(ctx context.Context, userID string, window domain.Window) (any, error),
) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	window, _, err := h.resolveWindow(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	metrics, err := compute(r.Context(), userID, window)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, r, "Metrics retrieved successfully", metrics)
}

func (h *Handler) ChartData(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	window, _, err := h.resolveWindow(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	charts, err := h.reporting.ChartData(r.Context(), userID, chi.URLParam(r, "chartType"), window)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, r, "Chart data retrieved successfully", charts)
}

func (h *Handler) KPIMetrics(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	window, _, err := h.resolveWindow(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	kpis, err := h.reporting.KPIMetrics(r.Context(), userID, window)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, r, "KPI metrics retrieved successfully", kpis)
}

func (h *Handler) AssistantQuery(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req api.AssistantQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.NewValidationError("body", "malformed JSON"))
		return
	}
	answer, err := h.assistant.Ask(r.Context(), userID, req.Question)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, r, "Query answered successfully", api.AssistantQueryResponse{Answer: answer})
}

// resolveWindow reads period/start_date/end_date from the query string and
// resolves them into a window. The period defaults to "month".
func (h *Handler) resolveWindow(r *http.Request) (domain.Window, string, error) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = string(defaultPeriod)
	}
	start, err := parseDate(r.URL.Query().Get("start_date"))
	if err != nil {
		return domain.Window{}, "", err
	}
	end, err := parseDate(r.URL.Query().Get("end_date"))
	if err != nil {
		return domain.Window{}, "", err
	}
	window, err := h.periods.Resolve(domain.ReportPeriod(period), start, end)
	return window, period, err
}

// requireUser reads the authenticated user injected by the auth layer.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		writeJSON(w, r, http.StatusUnauthorized, api.Response{
			Success:   false,
			Message:   "missing user identity",
			ErrorCode: "UNAUTHENTICATED",
		})
		return "", false
	}
	return userID, true
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, domain.NewValidationError("date", "expected format YYYY-MM-DD")
	}
	return &t, nil
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func writeSuccess(w http.ResponseWriter, r *http.Request, message string, data any) {
	writeJSON(w, r, http.StatusOK, api.Response{Success: true, Message: message, Data: data})
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	logger := zerolog.Ctx(r.Context())

	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, r, http.StatusBadRequest, api.Response{
			Success: false, Message: validationErr.Error(), ErrorCode: "VALIDATION_ERROR",
		})
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, r, http.StatusNotFound, api.Response{
			Success: false, Message: "not found", ErrorCode: "NOT_FOUND",
		})
	case errors.Is(err, store.ErrUnavailable):
		logger.Error().Err(err).Msg("data store unavailable")
		writeJSON(w, r, http.StatusServiceUnavailable, api.Response{
			Success: false, Message: "data store unavailable", ErrorCode: "STORE_UNAVAILABLE",
		})
	default:
		logger.Error().Err(err).Msg("request failed")
		writeJSON(w, r, http.StatusInternalServerError, api.Response{
			Success: false, Message: "internal error", ErrorCode: "INTERNAL_ERROR",
		})
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}
