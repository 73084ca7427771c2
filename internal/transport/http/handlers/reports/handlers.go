package reportshandler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"promoback/internal/domain/busday"
	"promoback/internal/domain/org"
	"promoback/internal/domain/payroll"
	"promoback/internal/domain/promoter"
	"promoback/internal/domain/reports"
	"promoback/internal/platform/jobs"
	"promoback/internal/sink"
	"promoback/internal/transport/http/api"
	"promoback/internal/transport/http/middleware"
)

type Handler struct {
	Reports   *reports.Service
	Payroll   *payroll.Service
	Promoters *promoter.Store
	Orgs      *org.Store
	Mirror    sink.SheetMirror
	Jobs      *jobs.Service
}

func NewHandler(rep *reports.Service, pay *payroll.Service, promoters *promoter.Store, orgs *org.Store, mirror sink.SheetMirror, jobRunner *jobs.Service) *Handler {
	return &Handler{Reports: rep, Payroll: pay, Promoters: promoters, Orgs: orgs, Mirror: mirror, Jobs: jobRunner}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/reports/daily", middleware.RequireAdmin(h.handleDaily))
	r.Get("/reports/activity", middleware.RequireAdmin(h.handleActivity))
	r.Get("/reports/leaderboard", middleware.RequireAuth(h.handleLeaderboard))
	r.Get("/reports/payroll", middleware.RequireAdmin(h.handlePayroll))
	r.Get("/reports/payroll/register", middleware.RequireAdmin(h.handleRegister))
	r.Post("/reports/payroll/export", middleware.RequireAdmin(h.handleExport))
}

func parseRange(r *http.Request) (time.Time, time.Time, error) {
	from, err := busday.ParseDate(r.URL.Query().Get("from"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("некорректная дата начала")
	}
	to, err := busday.ParseDate(r.URL.Query().Get("to"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("некорректная дата окончания")
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("дата окончания раньше даты начала")
	}
	return from, to, nil
}

func (h *Handler) handleDaily(w http.ResponseWriter, r *http.Request) {
	date, err := busday.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "некорректная дата")
		return
	}
	rows, err := h.Reports.DailyPanel(r.Context(), date)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.Success(w, map[string]any{"date": busday.FormatDate(date), "rows": rows})
}

func (h *Handler) handleActivity(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseRange(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := h.Reports.ActivityPanel(r.Context(), from, to)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.Success(w, map[string]any{"rows": rows})
}

func (h *Handler) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseRange(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := h.Reports.Leaderboard(r.Context(), from, to)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.Success(w, map[string]any{"rows": rows})
}

func (h *Handler) handlePayroll(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseRange(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	var totals []payroll.Totals
	switch r.URL.Query().Get("by") {
	case "", "promoter":
		totals, err = h.Payroll.ByPromoter(r.Context(), from, to)
	case "org":
		totals, err = h.Payroll.ByOrganization(r.Context(), from, to)
	default:
		api.Fail(w, http.StatusBadRequest, "параметр by: promoter или org")
		return
	}
	if err != nil {
		api.Error(w, err)
		return
	}
	api.Success(w, map[string]any{"totals": totals})
}

func (h *Handler) names(ctx context.Context) (payroll.RegisterNames, error) {
	promoters, err := h.Promoters.List(ctx)
	if err != nil {
		return payroll.RegisterNames{}, err
	}
	orgs, err := h.Orgs.List(ctx, false)
	if err != nil {
		return payroll.RegisterNames{}, err
	}

	names := payroll.RegisterNames{
		Promoters:     make(map[string]string, len(promoters)),
		Organizations: make(map[string]string, len(orgs)),
	}
	for _, p := range promoters {
		names.Promoters[p.ID] = p.Name
	}
	for _, o := range orgs {
		names.Organizations[o.ID] = o.Name
	}
	return names, nil
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseRange(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	priced, err := h.Payroll.PricedShifts(r.Context(), from, to)
	if err != nil {
		api.Error(w, err)
		return
	}
	names, err := h.names(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}

	blob, err := payroll.BuildRegister(priced, from, to, names)
	if err != nil {
		api.Error(w, err)
		return
	}

	filename := fmt.Sprintf("payroll-%s-%s.pdf", busday.FormatDate(from), busday.FormatDate(to))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(blob)
}

// handleExport mirrors the priced shifts for a range onto the spreadsheet.
// The push runs on the background runner; the response only confirms the
// dispatch.
func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseRange(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	priced, err := h.Payroll.PricedShifts(r.Context(), from, to)
	if err != nil {
		api.Error(w, err)
		return
	}
	names, err := h.names(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}

	rows := make([][]string, 0, len(priced)+1)
	rows = append(rows, []string{"Промоутер", "Организация", "Дата", "Контакты", "Ставка", "Оплата", "Сумма"})
	for _, p := range priced {
		rows = append(rows, []string{
			names.Promoters[p.PromoterID],
			names.Organizations[p.OrgID],
			busday.FormatDate(p.Date),
			fmt.Sprintf("%d", p.Contacts),
			fmt.Sprintf("%d", p.Rate),
			p.PaymentType,
			fmt.Sprintf("%d", p.GrossPay),
		})
	}

	worksheet := fmt.Sprintf("payroll %s - %s", busday.FormatDate(from), busday.FormatDate(to))
	h.Jobs.Dispatch("payroll_export", func(ctx context.Context) error {
		return h.Mirror.Replace(ctx, worksheet, rows)
	})
	api.OK(w)
}
