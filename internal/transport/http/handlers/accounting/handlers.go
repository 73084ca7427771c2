package accountinghandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"promoback/internal/domain/accounting"
	"promoback/internal/domain/busday"
	"promoback/internal/transport/http/api"
	"promoback/internal/transport/http/middleware"
)

type Handler struct {
	Store *accounting.Store
}

func NewHandler(store *accounting.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/accounting", middleware.RequireAdmin(h.handleList))
	r.Get("/accounting/row", middleware.RequireAdmin(h.handleGet))
	r.Put("/accounting/row", middleware.RequireAdmin(h.handleUpsert))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	date, err := busday.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "некорректная дата")
		return
	}
	rows, err := h.Store.ListForDate(r.Context(), date)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.Success(w, map[string]any{"rows": rows})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	date, err := busday.ParseDate(q.Get("date"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "некорректная дата")
		return
	}
	row, err := h.Store.Get(r.Context(), q.Get("promoterId"), date, q.Get("orgId"))
	if err != nil {
		api.Error(w, err)
		return
	}
	api.Success(w, row)
}

type upsertPayload struct {
	accounting.Row
	Date string `json:"date"`
}

func (h *Handler) handleUpsert(w http.ResponseWriter, r *http.Request) {
	var payload upsertPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "некорректный запрос")
		return
	}
	date, err := busday.ParseDate(payload.Date)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "некорректная дата")
		return
	}
	if payload.PromoterID == "" || payload.OrgID == "" {
		api.Fail(w, http.StatusBadRequest, "укажите промоутера и организацию")
		return
	}

	row := payload.Row
	row.Date = date
	normalizeDates(&row)
	if err := h.Store.Upsert(r.Context(), row); err != nil {
		api.Error(w, err)
		return
	}
	api.OK(w)
}

// normalizeDates pins the optional invoice dates to business dates so range
// filters stay exact.
func normalizeDates(row *accounting.Row) {
	if row.InvoiceIssuedDate != nil {
		d := busday.Date(*row.InvoiceIssuedDate)
		row.InvoiceIssuedDate = &d
	}
	if row.InvoicePaidDate != nil {
		d := busday.Date(*row.InvoicePaidDate)
		row.InvoicePaidDate = &d
	}
}
