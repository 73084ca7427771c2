package authhandler

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"promoback/internal/auth"
	"promoback/internal/domain/promoter"
	"promoback/internal/platform/codes"
	"promoback/internal/platform/config"
	"promoback/internal/platform/jobs"
	"promoback/internal/sink"
	"promoback/internal/transport/http/api"
	"promoback/internal/transport/http/middleware"
)

type Handler struct {
	Store *promoter.Store
	Codes codes.Store
	Relay sink.ChannelRelay
	Jobs  *jobs.Service
	Cfg   config.Config
}

func NewHandler(store *promoter.Store, codeStore codes.Store, relay sink.ChannelRelay, jobRunner *jobs.Service, cfg config.Config) *Handler {
	return &Handler{Store: store, Codes: codeStore, Relay: relay, Jobs: jobRunner, Cfg: cfg}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/register", h.handleRegister)
	r.Post("/auth/login", h.handleLogin)
	r.Post("/auth/verify-2fa", h.handleVerify2FA)
	r.Post("/auth/logout", middleware.RequireAuth(h.handleLogout))
	r.Get("/auth/me", middleware.RequireAuth(h.handleMe))
}

type registerPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Location string `json:"location"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var payload registerPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "некорректный запрос")
		return
	}
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))
	if payload.Name == "" || payload.Email == "" || len(payload.Password) < 6 {
		api.Fail(w, http.StatusBadRequest, "укажите имя, email и пароль не короче 6 символов")
		return
	}

	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		api.Error(w, err)
		return
	}
	id, err := h.Store.Register(r.Context(), payload.Name, payload.Email, hash, clientIP(r), payload.Location)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, map[string]string{"id": id})
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "некорректный запрос")
		return
	}

	p, err := h.Store.FindByEmail(r.Context(), strings.ToLower(strings.TrimSpace(payload.Email)))
	if err != nil {
		if errors.Is(err, promoter.ErrNotFound) {
			// Removed promoters get the same generic answer as unknown emails.
			api.Error(w, promoter.ErrWrongPassword)
			return
		}
		api.Error(w, err)
		return
	}
	if err := auth.CheckPassword(p.PasswordHash, payload.Password); err != nil {
		api.Error(w, promoter.ErrWrongPassword)
		return
	}
	if err := promoter.LoginGate(p); err != nil {
		api.Error(w, err)
		return
	}

	if p.Admin {
		h.startTwoFactor(w, r, p)
		return
	}
	h.issueSession(w, r, p)
}

// startTwoFactor issues the signed login ticket and pushes the code through
// the promoter's own channel binding. The code delivery is dispatched on the
// background runner; the response does not wait for the channel.
func (h *Handler) startTwoFactor(w http.ResponseWriter, r *http.Request, p promoter.Promoter) {
	if p.ChannelChatID == "" {
		api.Error(w, promoter.ErrNoChannelBinding)
		return
	}

	code, err := codes.Generate()
	if err != nil {
		api.Error(w, err)
		return
	}
	if err := h.Codes.Put(r.Context(), p.ID, code, h.Cfg.LoginTicketTTL); err != nil {
		api.Error(w, err)
		return
	}
	ticket, err := auth.GenerateLoginTicket(h.Cfg.LoginTicketSecret, p.ID, h.Cfg.LoginTicketTTL)
	if err != nil {
		api.Error(w, err)
		return
	}

	chatID := p.ChannelChatID
	h.Jobs.Dispatch("2fa_code", func(ctx context.Context) error {
		if tg, ok := h.Relay.(*sink.Telegram); ok {
			_, err := tg.SendTo(ctx, chatID, "Код подтверждения входа: "+code)
			return err
		}
		_, err := h.Relay.Send(ctx, sink.Message{Text: "Код подтверждения входа: " + code})
		return err
	})

	api.Success(w, map[string]any{"twoFactorRequired": true, "ticket": ticket})
}

type verifyPayload struct {
	Ticket string `json:"ticket"`
	Code   string `json:"code"`
}

func (h *Handler) handleVerify2FA(w http.ResponseWriter, r *http.Request) {
	var payload verifyPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "некорректный запрос")
		return
	}

	claims, err := auth.ParseLoginTicket(h.Cfg.LoginTicketSecret, payload.Ticket)
	if err != nil {
		api.Error(w, promoter.ErrBadCode)
		return
	}
	ok, err := h.Codes.Take(r.Context(), claims.PromoterID, payload.Code)
	if err != nil {
		api.Error(w, err)
		return
	}
	if !ok {
		api.Error(w, promoter.ErrBadCode)
		return
	}

	p, err := h.Store.Get(r.Context(), claims.PromoterID)
	if err != nil {
		api.Error(w, err)
		return
	}
	h.issueSession(w, r, p)
}

func (h *Handler) issueSession(w http.ResponseWriter, r *http.Request, p promoter.Promoter) {
	token := auth.NewSessionToken()
	expires := time.Now().Add(h.Cfg.SessionTTL)
	if err := h.Store.CreateSession(r.Context(), p.ID, token, expires); err != nil {
		api.Error(w, err)
		return
	}
	_ = h.Store.TouchLastSeen(r.Context(), p.ID)
	api.Success(w, map[string]any{
		"token":     token,
		"expiresAt": expires.UTC(),
		"promoter":  p,
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("X-Session-Token")
	if token != "" {
		if err := h.Store.DeleteSession(r.Context(), token); err != nil {
			api.Error(w, err)
			return
		}
	}
	api.OK(w)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.GetPrincipal(r.Context())
	api.Success(w, p)
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
