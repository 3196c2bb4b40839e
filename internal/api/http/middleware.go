package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"nexuscore-backend/internal/logger"
	"nexuscore-backend/internal/security"
	"nexuscore-backend/internal/session"
)

type sessionKey struct{}

func withSession(ctx context.Context, ctrl *session.Controller) context.Context {
	return context.WithValue(ctx, sessionKey{}, ctrl)
}

// sessionFrom returns the controller resolved by requireSession.
func sessionFrom(ctx context.Context) *session.Controller {
	ctrl, _ := ctx.Value(sessionKey{}).(*session.Controller)
	return ctrl
}

// requireSession resolves the bearer token to a live session.
func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, r, security.ErrInvalidToken)
			return
		}
		ctrl, err := h.sessions.Resolve(r.Context(), token)
		if err != nil {
			writeError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), ctrl)))
	})
}

func bearerToken(r *http.Request) string {
	token := r.Header.Get("Authorization")
	// Remove Bearer prefix if present
	if len(token) > 7 && strings.ToUpper(token[0:7]) == "BEARER " {
		token = token[7:]
	}
	return strings.TrimSpace(token)
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (s *statusWriter) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		logger.DebugContext(r.Context(), "HTTP request",
			"method", r.Method, "path", r.URL.Path, "status", sw.status, "duration", time.Since(start))
	})
}
