package http

import (
	"net/http"

	"nexuscore-backend/internal/domain"
	"nexuscore-backend/internal/logger"
	"nexuscore-backend/internal/session"
)

type profileRequest struct {
	Bio string `json:"bio"`
}

type passwordRequest struct {
	Current string `json:"current"`
	Next    string `json:"next"`
	Confirm string `json:"confirm"`
}

// GetProfile renders the acting member's own page and, like a registry
// selection, starts the audit and manifesto fetches for them.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctrl := sessionFrom(r.Context())
	if err := ctrl.Authorize(domain.ViewProfile); err != nil {
		writeError(w, r, err)
		return
	}
	// A logout on the same session may land between the two calls.
	me := ctrl.CurrentUser()
	if me == nil {
		writeError(w, r, domain.ErrAuthRequired)
		return
	}
	if err := h.insight.EnrichMember(r.Context(), ctrl.ID(), me.ID); err != nil {
		logger.WarnContext(r.Context(), "Profile enrichment not started", "member_id", me.ID, "error", err)
	}
	profile, err := ctrl.Profile(me.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	m, err := h.profile.SaveProfile(r.Context(), sessionFrom(r.Context()).ID(), req.Bio)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req session.Settings
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	settings, err := h.profile.UpdateSettings(r.Context(), sessionFrom(r.Context()).ID(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req passwordRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.profile.UpdatePassword(r.Context(), sessionFrom(r.Context()).ID(), req.Current, req.Next, req.Confirm); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	view, err := sessionFrom(r.Context()).Dashboard()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) GetTreasury(w http.ResponseWriter, r *http.Request) {
	view, err := sessionFrom(r.Context()).Treasury()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
