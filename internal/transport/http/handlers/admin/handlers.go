package adminhandler

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"promoback/internal/domain/promoter"
	"promoback/internal/platform/metrics"
	"promoback/internal/transport/http/api"
	"promoback/internal/transport/http/middleware"
)

type Handler struct {
	Stats     *metrics.Collector
	Promoters *promoter.Store
}

func NewHandler(stats *metrics.Collector, promoters *promoter.Store) *Handler {
	return &Handler{Stats: stats, Promoters: promoters}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/admin/metrics", middleware.RequireAdmin(h.handleMetrics))
	r.Get("/admin/blocked-ips", middleware.RequireAdmin(h.handleListBlockedIPs))
	r.Delete("/admin/blocked-ips/{ip}", middleware.RequireAdmin(h.handleUnblockIP))
}

func (h *Handler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if h.Stats == nil {
		api.Fail(w, http.StatusNotFound, "metrics collection is disabled")
		return
	}
	api.Success(w, h.Stats.Snapshot())
}

func (h *Handler) handleListBlockedIPs(w http.ResponseWriter, r *http.Request) {
	ips, err := h.Promoters.ListBlockedIPs(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}
	api.Success(w, map[string]any{"blockedIps": ips})
}

func (h *Handler) handleUnblockIP(w http.ResponseWriter, r *http.Request) {
	ip, err := url.PathUnescape(chi.URLParam(r, "ip"))
	if err != nil || ip == "" {
		api.Fail(w, http.StatusBadRequest, "некорректный адрес")
		return
	}
	if err := h.Promoters.UnblockIP(r.Context(), ip); err != nil {
		api.Error(w, err)
		return
	}
	api.OK(w)
}
