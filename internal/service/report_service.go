package service

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/export"
	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/pkg/api"
)

// ReportService implements apiconnect.ReportServiceHandler. All views are
// recomputed from stored lines and payments on every call.
type ReportService struct {
	ledger *ledger.Ledger
}

func NewReportService(l *ledger.Ledger) *ReportService {
	return &ReportService{ledger: l}
}

func (s *ReportService) ListSummaries(ctx context.Context, req *connect.Request[api.ListSummariesRequest]) (*connect.Response[api.ListSummariesResponse], error) {
	ownerID, err := ownerOf(ctx)
	if err != nil {
		return nil, err
	}

	summaries, err := s.ledger.Summaries(ctx, ownerID)
	if err != nil {
		return nil, toConnectError("ListSummaries", err)
	}
	return connect.NewResponse(&api.ListSummariesResponse{Summaries: toAPISummaries(summaries)}), nil
}

func (s *ReportService) GetDashboard(ctx context.Context, req *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error) {
	ownerID, err := ownerOf(ctx)
	if err != nil {
		return nil, err
	}
	slog.Debug("GetDashboard request received", "owner_id", ownerID)

	d, err := s.ledger.Dashboard(ctx, ownerID)
	if err != nil {
		return nil, toConnectError("GetDashboard", err)
	}

	resp := &api.GetDashboardResponse{
		Income:    d.Income,
		Expense:   d.Expense,
		Payments:  d.Payments,
		Balance:   d.Balance,
		People:    toAPISummaries(d.People),
		TotalDebt: d.TotalDebt,
	}
	for _, r := range d.Recent {
		m := toAPIMovement(r.Movement)
		m.Lines = nil
		resp.Recent = append(resp.Recent, m)
	}
	for _, c := range d.Categories {
		resp.Categories = append(resp.Categories, api.CategoryTotal{Category: c.Category, Total: c.Total})
	}
	for _, p := range d.Series {
		resp.Series = append(resp.Series, api.SeriesPoint{Date: p.Date, Income: p.Income, Expense: p.Expense})
	}
	return connect.NewResponse(resp), nil
}

// ExportCSV serves the owner's movements as a CSV download. It expects
// middleware.RequireBearer in front of it. Optional from/to query
// parameters bound the date range.
func (s *ReportService) ExportCSV(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())
	if ownerID == "" {
		http.Error(w, errAuthRequired.Error(), http.StatusUnauthorized)
		return
	}

	q := r.URL.Query()
	movements, err := s.ledger.ListMovements(r.Context(), ownerID, q.Get("from"), q.Get("to"))
	if err != nil {
		slog.Error("CSV export failed", "owner_id", ownerID, "error", err)
		http.Error(w, errInternal.Error(), http.StatusInternalServerError)
		return
	}

	filename := "movimientos-" + time.Now().UTC().Format("20060102") + ".csv"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	writer := &export.CSVWriter{}
	if err := writer.Write(w, movements); err != nil {
		// Headers are already sent; all we can do is log.
		slog.Error("CSV export interrupted", "owner_id", ownerID, "error", err)
		return
	}
	slog.Info("CSV exported", "owner_id", ownerID, "movements", len(movements))
}
