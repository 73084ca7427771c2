package shiftshandler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"promoback/internal/domain/accounting"
	"promoback/internal/domain/busday"
	"promoback/internal/domain/contact"
	"promoback/internal/domain/shift"
	"promoback/internal/platform/jobs"
	"promoback/internal/sink"
	"promoback/internal/transport/http/api"
	"promoback/internal/transport/http/middleware"
)

type Handler struct {
	Shifts   *shift.Store
	Editor   *shift.Editor
	Contacts *contact.Store
	Relay    sink.ChannelRelay
	Storage  sink.ObjectStore
	Jobs     *jobs.Service
}

func NewHandler(shifts *shift.Store, editor *shift.Editor, contacts *contact.Store, relay sink.ChannelRelay, storage sink.ObjectStore, jobRunner *jobs.Service) *Handler {
	return &Handler{Shifts: shifts, Editor: editor, Contacts: contacts, Relay: relay, Storage: storage, Jobs: jobRunner}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/shifts", middleware.RequireAdmin(h.handleList))
	r.Get("/shifts/one", middleware.RequireAdmin(h.handleDerive))
	r.Post("/shifts/markers", middleware.RequireAuth(h.handleCreateMarker))
	r.Post("/shifts/manual", middleware.RequireAdmin(h.handleAddManual))
	r.Post("/shifts/edit", middleware.RequireAdmin(h.handleEdit))
}

type keyPayload struct {
	PromoterID string `json:"promoterId"`
	Date       string `json:"date"`
	OrgID      string `json:"orgId"`
}

func (k keyPayload) parse() (contact.Key, error) {
	if k.PromoterID == "" || k.OrgID == "" {
		return contact.Key{}, fmt.Errorf("missing key fields")
	}
	date, err := busday.ParseDate(k.Date)
	if err != nil {
		return contact.Key{}, err
	}
	return contact.Key{PromoterID: k.PromoterID, Date: date, OrgID: k.OrgID}, nil
}

// parseClock reads "HH:MM" as business-timezone wall clock on a date and
// returns the UTC instant.
func parseClock(date time.Time, value string) (time.Time, error) {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return time.Time{}, err
	}
	return busday.At(date, parsed.Hour(), parsed.Minute()), nil
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	from, err := busday.ParseDate(r.URL.Query().Get("from"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "некорректная дата начала")
		return
	}
	to, err := busday.ParseDate(r.URL.Query().Get("to"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "некорректная дата окончания")
		return
	}

	shifts, err := h.Shifts.ListInRange(r.Context(), from, to)
	if err != nil {
		api.Error(w, err)
		return
	}

	keys := make([]contact.Key, 0, len(shifts))
	for _, s := range shifts {
		keys = append(keys, contact.Key{PromoterID: s.PromoterID, Date: s.Date, OrgID: s.OrgID})
	}
	counts, err := h.Contacts.CountBulk(r.Context(), keys)
	if err != nil {
		api.Error(w, err)
		return
	}
	for i := range shifts {
		shifts[i].Contacts = counts[contact.Key{PromoterID: shifts[i].PromoterID, Date: shifts[i].Date, OrgID: shifts[i].OrgID}]
	}
	api.Success(w, map[string]any{"shifts": shifts})
}

func (h *Handler) handleDerive(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	key, err := keyPayload{PromoterID: q.Get("promoterId"), Date: q.Get("date"), OrgID: q.Get("orgId")}.parse()
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "некорректный ключ смены")
		return
	}

	derived, ok, err := h.Shifts.DeriveFor(r.Context(), key.PromoterID, key.OrgID, key.Date)
	if err != nil {
		api.Error(w, err)
		return
	}
	if !ok {
		api.Fail(w, http.StatusNotFound, "смена не найдена")
		return
	}
	derived.Contacts, err = h.Contacts.CountFor(r.Context(), key)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.Success(w, derived)
}

// handleCreateMarker ingests a start/end video marker from the promoter app.
// The video goes to object storage and a notice to the channel, both in the
// background; the marker row is durable before the response.
func (h *Handler) handleCreateMarker(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.GetPrincipal(r.Context())

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		api.Fail(w, http.StatusBadRequest, "некорректный запрос")
		return
	}
	orgID := r.FormValue("orgId")
	kind := r.FormValue("kind")
	if orgID == "" || (kind != shift.MarkerStart && kind != shift.MarkerEnd) {
		api.Fail(w, http.StatusBadRequest, "укажите организацию и тип метки (start или end)")
		return
	}

	now := time.Now().UTC()
	date := busday.Date(now)
	id, err := h.Shifts.CreateMarker(r.Context(), p.ID, orgID, kind, date, now)
	if err != nil {
		api.Error(w, err)
		return
	}

	var video []byte
	var videoName string
	if file, header, err := r.FormFile("video"); err == nil {
		video, err = io.ReadAll(file)
		file.Close()
		if err != nil {
			api.Error(w, err)
			return
		}
		videoName = header.Filename
	}

	promoterName := p.Name
	h.Jobs.Dispatch("shift_marker_relay", func(ctx context.Context) error {
		text := fmt.Sprintf("Смена %s: %s, %s", kind, promoterName, busday.FormatDate(date))
		if len(video) > 0 {
			name := fmt.Sprintf("shifts/%s/%s-%s-%s", busday.FormatDate(date), p.ID, kind, uuid.NewString())
			if _, err := h.Storage.Upload(ctx, name, video); err != nil {
				return err
			}
		}
		_, err := h.Relay.Send(ctx, sink.Message{Text: text, Media: video, MediaName: videoName})
		return err
	})

	api.WriteJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

type manualPayload struct {
	keyPayload
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	ContactCount int    `json:"contactCount"`
}

func (h *Handler) handleAddManual(w http.ResponseWriter, r *http.Request) {
	var payload manualPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "некорректный запрос")
		return
	}
	key, err := payload.parse()
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "некорректный ключ смены")
		return
	}
	startAt, err := parseClock(key.Date, payload.StartTime)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "некорректное время начала")
		return
	}
	endAt, err := parseClock(key.Date, payload.EndTime)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "некорректное время окончания")
		return
	}
	if payload.ContactCount < 0 {
		api.Fail(w, http.StatusBadRequest, "количество контактов не может быть отрицательным")
		return
	}

	if _, err := h.Shifts.CreateManual(r.Context(), shift.ManualShift{
		PromoterID: key.PromoterID,
		OrgID:      key.OrgID,
		Date:       key.Date,
		StartAt:    startAt,
		EndAt:      endAt,
	}); err != nil {
		api.Error(w, err)
		return
	}

	for _, at := range shift.SyntheticTimes(startAt, payload.ContactCount) {
		if _, err := h.Contacts.Create(r.Context(), key.PromoterID, key.OrgID,
			contact.KindContact, contact.ResultAgreed, at, "", ""); err != nil {
			api.Error(w, err)
			return
		}
	}
	api.OK(w)
}

type editPayload struct {
	Old          keyPayload     `json:"old"`
	New          keyPayload     `json:"new"`
	StartTime    string         `json:"startTime"`
	EndTime      string         `json:"endTime"`
	ContactCount int            `json:"contactCount"`
	Accounting   accounting.Row `json:"accounting"`
}

func (h *Handler) handleEdit(w http.ResponseWriter, r *http.Request) {
	var payload editPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "некорректный запрос")
		return
	}
	oldKey, err := payload.Old.parse()
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "некорректный исходный ключ смены")
		return
	}
	newKey, err := payload.New.parse()
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "некорректный новый ключ смены")
		return
	}
	startAt, err := parseClock(newKey.Date, payload.StartTime)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "некорректное время начала")
		return
	}
	endAt, err := parseClock(newKey.Date, payload.EndTime)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "некорректное время окончания")
		return
	}
	if payload.ContactCount < 0 {
		api.Fail(w, http.StatusBadRequest, "количество контактов не может быть отрицательным")
		return
	}

	if err := h.Editor.Edit(r.Context(), shift.EditRequest{
		Old:          oldKey,
		New:          newKey,
		StartAt:      startAt,
		EndAt:        endAt,
		ContactCount: payload.ContactCount,
		Accounting:   payload.Accounting,
	}); err != nil {
		api.Error(w, err)
		return
	}
	api.OK(w)
}
