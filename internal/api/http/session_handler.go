package http

import (
	"net/http"
	"strings"
	"time"

	"nexuscore-backend/internal/config"
	"nexuscore-backend/internal/domain"
	"nexuscore-backend/internal/logger"
	"nexuscore-backend/internal/session"

	"github.com/gorilla/mux"
)

type openSessionResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	State     session.State `json:"state"`
}

type credentialsRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role,omitempty"`
}

type memberResponse struct {
	Member *domain.Member `json:"member"`
	State  session.State  `json:"state"`
}

type viewResponse struct {
	Decision config.Decision `json:"decision"`
	State    session.State   `json:"state"`
}

// OpenSession starts a guest session on a fresh copy of the seed data. The
// community insight is computed in the background and shows up on the feed
// once the generator answers.
func (h *Handler) OpenSession(w http.ResponseWriter, r *http.Request) {
	ctrl, token, expires, err := h.sessions.Open(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.insight.PrimeCommunityInsight(r.Context(), ctrl.ID()); err != nil {
		logger.WarnContext(r.Context(), "Community insight not started", "session_id", ctrl.ID(), "error", err)
	}
	writeJSON(w, http.StatusCreated, openSessionResponse{Token: token, ExpiresAt: expires, State: ctrl.Snapshot()})
}

// CloseSession ends the caller's session and halts its open flows. The token
// stops resolving.
func (h *Handler) CloseSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Close(r.Context(), sessionFrom(r.Context()).ID()); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionFrom(r.Context()).Snapshot())
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctrl := sessionFrom(r.Context())
	var req credentialsRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	m, err := h.auth.Login(r.Context(), ctrl.ID(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, memberResponse{Member: m, State: ctrl.Snapshot()})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctrl := sessionFrom(r.Context())
	var req credentialsRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	m, err := h.auth.Register(r.Context(), ctrl.ID(), req.Email, req.Password, req.Role)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, memberResponse{Member: m, State: ctrl.Snapshot()})
}

func (h *Handler) QuickAccess(w http.ResponseWriter, r *http.Request) {
	ctrl := sessionFrom(r.Context())
	m, err := h.auth.QuickAccess(r.Context(), ctrl.ID(), mux.Vars(r)["label"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, memberResponse{Member: m, State: ctrl.Snapshot()})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctrl := sessionFrom(r.Context())
	if err := h.auth.Logout(r.Context(), ctrl.ID()); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

func (h *Handler) DismissPrompt(w http.ResponseWriter, r *http.Request) {
	ctrl := sessionFrom(r.Context())
	ctrl.DismissAuthPrompt()
	writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

// ChangeView always answers 200 for a known view; the decision says whether
// the navigation happened, redirected or raised the auth prompt.
func (h *Handler) ChangeView(w http.ResponseWriter, r *http.Request) {
	ctrl := sessionFrom(r.Context())
	view := domain.View(strings.ToUpper(mux.Vars(r)["view"]))
	decision, err := ctrl.ChangeView(view)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewResponse{Decision: decision, State: ctrl.Snapshot()})
}
