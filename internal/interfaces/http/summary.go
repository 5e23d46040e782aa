package http

import (
	"context"
	"net/http"

	"finman/internal/domain/report"
)

// ReportService is the part of report.Service the dashboard routes need.
type ReportService interface {
	Summary(ctx context.Context, userID, start, end string) (*report.Summary, error)
	CategoryWise(ctx context.Context, userID, month string) (*report.CategoryBreakdown, error)
	Monthly(ctx context.Context, userID, month string) (*report.PeriodReport, error)
	Yearly(ctx context.Context, userID, year string) (*report.PeriodReport, error)
}

// SummaryHandler serves read-only dashboard aggregates.
type SummaryHandler struct {
	reports ReportService
}

func NewSummaryHandler(reports ReportService) *SummaryHandler {
	return &SummaryHandler{reports: reports}
}

func (h *SummaryHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "failed to build summary", func(ctx context.Context, userID string) (any, error) {
		q := r.URL.Query()
		return h.reports.Summary(ctx, userID, q.Get("start_date"), q.Get("end_date"))
	})
}

func (h *SummaryHandler) HandleCategoryWise(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "failed to build category breakdown", func(ctx context.Context, userID string) (any, error) {
		return h.reports.CategoryWise(ctx, userID, r.URL.Query().Get("month"))
	})
}

func (h *SummaryHandler) HandleMonthlyReport(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "failed to build monthly report", func(ctx context.Context, userID string) (any, error) {
		return h.reports.Monthly(ctx, userID, r.URL.Query().Get("month"))
	})
}

func (h *SummaryHandler) HandleYearlyReport(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "failed to build yearly report", func(ctx context.Context, userID string) (any, error) {
		return h.reports.Yearly(ctx, userID, r.URL.Query().Get("year"))
	})
}

// serve handles the GET-only, user-scoped read shared by every dashboard route.
func (h *SummaryHandler) serve(w http.ResponseWriter, r *http.Request, action string, read func(ctx context.Context, userID string) (any, error)) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	v, err := read(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, action)
		return
	}

	writeJSON(w, http.StatusOK, v)
}
