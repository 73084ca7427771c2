package contactshandler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"promoback/internal/domain/busday"
	"promoback/internal/domain/contact"
	"promoback/internal/transport/http/api"
	"promoback/internal/transport/http/middleware"
)

type Handler struct {
	Store *contact.Store
}

func NewHandler(store *contact.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/contacts", middleware.RequireAuth(h.handleCreate))
	r.Get("/contacts", middleware.RequireAdmin(h.handleList))
	r.Post("/contacts/{eventID}/deactivate", middleware.RequireAdmin(h.handleDeactivate))
}

type createPayload struct {
	OrgID   string `json:"orgId"`
	Kind    string `json:"kind"`
	Result  string `json:"result"`
	Comment string `json:"comment"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.GetPrincipal(r.Context())

	var payload createPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "некорректный запрос")
		return
	}
	if payload.OrgID == "" {
		api.Fail(w, http.StatusBadRequest, "не указана организация")
		return
	}
	if payload.Kind != contact.KindContact && payload.Kind != contact.KindApproach {
		api.Fail(w, http.StatusBadRequest, "некорректный тип события")
		return
	}

	id, err := h.Store.Create(r.Context(), p.ID, payload.OrgID,
		payload.Kind, payload.Result, time.Now().UTC(), payload.Comment, "")
	if err != nil {
		api.Error(w, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	date, err := busday.ParseDate(q.Get("date"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "некорректная дата")
		return
	}
	key := contact.Key{PromoterID: q.Get("promoterId"), Date: date, OrgID: q.Get("orgId")}
	if key.PromoterID == "" || key.OrgID == "" {
		api.Fail(w, http.StatusBadRequest, "укажите промоутера и организацию")
		return
	}

	events, err := h.Store.ListFor(r.Context(), key)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.Success(w, map[string]any{"events": events})
}

// handleDeactivate hides an event from every count and report without
// destroying the record.
func (h *Handler) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "eventID"), 10, 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "некорректный идентификатор события")
		return
	}
	if err := h.Store.Deactivate(r.Context(), id); err != nil {
		api.Error(w, err)
		return
	}
	api.OK(w)
}
