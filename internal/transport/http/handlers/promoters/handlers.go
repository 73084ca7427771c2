package promotershandler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"promoback/internal/domain/promoter"
	"promoback/internal/platform/jobs"
	"promoback/internal/sink"
	"promoback/internal/transport/http/api"
	"promoback/internal/transport/http/middleware"
)

type Handler struct {
	Store    *promoter.Store
	Approval *promoter.Service
	Storage  sink.ObjectStore
	Jobs     *jobs.Service
}

func NewHandler(store *promoter.Store, approval *promoter.Service, storage sink.ObjectStore, jobRunner *jobs.Service) *Handler {
	return &Handler{Store: store, Approval: approval, Storage: storage, Jobs: jobRunner}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/promoters", middleware.RequireAdmin(h.handleList))
	r.Post("/promoters/{promoterID}/approve", middleware.RequireAdmin(h.handleApprove))
	r.Post("/promoters/{promoterID}/reject", middleware.RequireAdmin(h.handleReject))
	r.Post("/promoters/{promoterID}/deactivate", middleware.RequireAdmin(h.handleDeactivate))
	r.Post("/promoters/{promoterID}/activate", middleware.RequireAdmin(h.handleActivate))
	r.Post("/promoters/channel-binding", middleware.RequireAuth(h.handleSetChannelBinding))
	r.Post("/promoters/avatar", middleware.RequireAuth(h.handleUploadAvatar))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	promoters, err := h.Store.List(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}
	api.Success(w, map[string]any{"promoters": promoters})
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, id, actorID string) error) {
	actor, _ := middleware.GetPrincipal(r.Context())
	id := chi.URLParam(r, "promoterID")
	if id == "" {
		api.Fail(w, http.StatusBadRequest, "не указан промоутер")
		return
	}
	if err := apply(r.Context(), id, actor.ID); err != nil {
		api.Error(w, err)
		return
	}
	api.OK(w)
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Approval.Approve)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Approval.Reject)
}

func (h *Handler) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Approval.Deactivate)
}

func (h *Handler) handleActivate(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Approval.Activate)
}

type bindingPayload struct {
	ChatID string `json:"chatId"`
}

func (h *Handler) handleSetChannelBinding(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.GetPrincipal(r.Context())
	var payload bindingPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "некорректный запрос")
		return
	}
	if err := h.Store.SetChannelBinding(r.Context(), p.ID, payload.ChatID); err != nil {
		api.Error(w, err)
		return
	}
	api.OK(w)
}

// handleUploadAvatar accepts the image inline and hands the durable upload
// to object storage in the background; the stored URL lands on the row once
// the sink answers.
func (h *Handler) handleUploadAvatar(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.GetPrincipal(r.Context())

	if err := r.ParseMultipartForm(8 << 20); err != nil {
		api.Fail(w, http.StatusBadRequest, "некорректный запрос")
		return
	}
	file, header, err := r.FormFile("avatar")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "не найден файл avatar")
		return
	}
	defer file.Close()

	blob, err := io.ReadAll(file)
	if err != nil {
		api.Error(w, err)
		return
	}

	name := "avatars/" + p.ID + "-" + uuid.NewString() + "-" + header.Filename
	promoterID := p.ID
	h.Jobs.Dispatch("avatar_upload", func(ctx context.Context) error {
		url, err := h.Storage.Upload(ctx, name, blob)
		if err != nil {
			return err
		}
		if url == "" {
			return nil
		}
		return h.Store.SetAvatarURL(ctx, promoterID, url)
	})

	api.OK(w)
}
