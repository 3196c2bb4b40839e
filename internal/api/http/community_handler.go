package http

import (
	"net/http"

	"nexuscore-backend/internal/domain"
	"nexuscore-backend/internal/enrichment"
	"nexuscore-backend/internal/logger"

	"github.com/gorilla/mux"
)

type likeResponse struct {
	Liked bool         `json:"liked"`
	Post  *domain.Post `json:"post"`
}

type commentRequest struct {
	Text string `json:"text"`
}

type copyRequest struct {
	Topic string              `json:"topic"`
	Type  enrichment.CopyType `json:"type"`
}

type copyResponse struct {
	Text string `json:"text"`
}

type insightResponse struct {
	Insight string `json:"insight"`
}

func (h *Handler) GetFeed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionFrom(r.Context()).Feed())
}

// RefreshInsight recomputes the community insight and waits for the result.
func (h *Handler) RefreshInsight(w http.ResponseWriter, r *http.Request) {
	text, err := h.insight.RefreshCommunityInsight(r.Context(), sessionFrom(r.Context()).ID())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, insightResponse{Insight: text})
}

func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	ctrl := sessionFrom(r.Context())
	id := mux.Vars(r)["id"]
	liked, err := ctrl.ToggleLike(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	post, err := ctrl.Post(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, likeResponse{Liked: liked, Post: post})
}

// AddComment answers 204 when the text is blank and nothing was stored.
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	ctrl := sessionFrom(r.Context())
	var req commentRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	comment, err := ctrl.AddComment(mux.Vars(r)["id"], req.Text)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if comment == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

func (h *Handler) GetBlog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionFrom(r.Context()).BlogPosts())
}

func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionFrom(r.Context()).Products())
}

func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	members, err := sessionFrom(r.Context()).Registry(q.Get("search"), q.Get("status"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

// GetMember selects a member from the registry and kicks off the audit and
// manifesto fetches. The profile returned may not carry them yet.
func (h *Handler) GetMember(w http.ResponseWriter, r *http.Request) {
	ctrl := sessionFrom(r.Context())
	id := mux.Vars(r)["id"]
	if err := ctrl.Authorize(domain.ViewMembers); err != nil {
		writeError(w, r, err)
		return
	}
	if err := ctrl.SelectMember(id); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.insight.EnrichMember(r.Context(), ctrl.ID(), id); err != nil {
		logger.WarnContext(r.Context(), "Member enrichment not started", "member_id", id, "error", err)
	}
	profile, err := ctrl.Profile(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) MarketingCopy(w http.ResponseWriter, r *http.Request) {
	ctrl := sessionFrom(r.Context())
	var req copyRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	text, err := h.insight.MarketingCopy(r.Context(), ctrl.ID(), req.Topic, req.Type)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, copyResponse{Text: text})
}
