package orgshandler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"promoback/internal/domain/busday"
	"promoback/internal/domain/org"
	"promoback/internal/transport/http/api"
	"promoback/internal/transport/http/middleware"
)

type Handler struct {
	Store *org.Store
}

func NewHandler(store *org.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/orgs", middleware.RequireAuth(h.handleList))
	r.Post("/orgs", middleware.RequireAdmin(h.handleCreate))
	r.Post("/orgs/{orgID}/active", middleware.RequireAdmin(h.handleSetActive))
	r.Get("/orgs/{orgID}/rate-periods", middleware.RequireAdmin(h.handleListPeriods))
	r.Post("/orgs/{orgID}/rate-periods", middleware.RequireAdmin(h.handleCreatePeriod))
	r.Delete("/orgs/{orgID}/rate-periods/{periodID}", middleware.RequireAdmin(h.handleDeletePeriod))
	r.Get("/orgs/{orgID}/rate", middleware.RequireAdmin(h.handleResolveRate))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("all") == ""
	orgs, err := h.Store.List(r.Context(), activeOnly)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.Success(w, map[string]any{"organizations": orgs})
}

type createPayload struct {
	Name        string `json:"name"`
	ContactRate int    `json:"contactRate"`
	PaymentType string `json:"paymentType"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload createPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "некорректный запрос")
		return
	}
	if payload.Name == "" {
		api.Fail(w, http.StatusBadRequest, "не указано название организации")
		return
	}
	id, err := h.Store.Create(r.Context(), payload.Name, payload.ContactRate, payload.PaymentType)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, map[string]string{"id": id})
}

type activePayload struct {
	Active bool `json:"active"`
}

func (h *Handler) handleSetActive(w http.ResponseWriter, r *http.Request) {
	var payload activePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "некорректный запрос")
		return
	}
	if err := h.Store.SetActive(r.Context(), chi.URLParam(r, "orgID"), payload.Active); err != nil {
		api.Error(w, err)
		return
	}
	api.OK(w)
}

func (h *Handler) handleListPeriods(w http.ResponseWriter, r *http.Request) {
	periods, err := h.Store.ListPeriods(r.Context(), chi.URLParam(r, "orgID"))
	if err != nil {
		api.Error(w, err)
		return
	}
	api.Success(w, map[string]any{"periods": periods})
}

type periodPayload struct {
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	ContactRate int    `json:"contactRate"`
	PaymentType string `json:"paymentType"`
}

func (h *Handler) handleCreatePeriod(w http.ResponseWriter, r *http.Request) {
	var payload periodPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "некорректный запрос")
		return
	}
	startDate, err := busday.ParseDate(payload.StartDate)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "некорректная дата начала")
		return
	}
	var endDate *time.Time
	if payload.EndDate != "" {
		parsed, err := busday.ParseDate(payload.EndDate)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "некорректная дата окончания")
			return
		}
		if parsed.Before(startDate) {
			api.Fail(w, http.StatusBadRequest, "дата окончания раньше даты начала")
			return
		}
		endDate = &parsed
	}

	id, err := h.Store.CreatePeriod(r.Context(), chi.URLParam(r, "orgID"), startDate, endDate, payload.ContactRate, payload.PaymentType)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handler) handleDeletePeriod(w http.ResponseWriter, r *http.Request) {
	periodID, err := strconv.ParseInt(chi.URLParam(r, "periodID"), 10, 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "некорректный идентификатор периода")
		return
	}
	if err := h.Store.DeletePeriod(r.Context(), chi.URLParam(r, "orgID"), periodID); err != nil {
		api.Error(w, err)
		return
	}
	api.OK(w)
}

func (h *Handler) handleResolveRate(w http.ResponseWriter, r *http.Request) {
	date, err := busday.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "некорректная дата")
		return
	}
	rate, err := h.Store.RateFor(r.Context(), chi.URLParam(r, "orgID"), date)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.Success(w, rate)
}
