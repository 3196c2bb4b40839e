package http

import (
	"net/http"

	"nexuscore-backend/internal/metrics"
	"nexuscore-backend/internal/service"

	"github.com/gorilla/mux"
)

// Services bundles what the HTTP surface calls into.
type Services struct {
	Sessions service.SessionService
	Auth     service.AuthService
	Profile  service.ProfileService
	Checkout service.CheckoutService
	Gateways service.GatewayService
	Insight  service.InsightService
}

type Handler struct {
	sessions service.SessionService
	auth     service.AuthService
	profile  service.ProfileService
	checkout service.CheckoutService
	gateways service.GatewayService
	insight  service.InsightService
}

func NewHandler(s Services) *Handler {
	return &Handler{
		sessions: s.Sessions,
		auth:     s.Auth,
		profile:  s.Profile,
		checkout: s.Checkout,
		gateways: s.Gateways,
		insight:  s.Insight,
	}
}

// NewRouter wires every route. m may be nil, which drops /metrics.
func NewRouter(h *Handler, m *metrics.Metrics) *mux.Router {
	router := mux.NewRouter()
	router.Use(requestLogger)
	if m != nil {
		router.Use(m.Middleware)
		router.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
	}
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/sessions", h.OpenSession).Methods(http.MethodPost)

	s := api.NewRoute().Subrouter()
	s.Use(h.requireSession)

	s.HandleFunc("/sessions", h.CloseSession).Methods(http.MethodDelete)
	s.HandleFunc("/state", h.GetState).Methods(http.MethodGet)
	s.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
	s.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost)
	s.HandleFunc("/auth/quick/{label}", h.QuickAccess).Methods(http.MethodPost)
	s.HandleFunc("/auth/logout", h.Logout).Methods(http.MethodPost)
	s.HandleFunc("/auth/prompt/dismiss", h.DismissPrompt).Methods(http.MethodPost)

	s.HandleFunc("/views/{view}", h.ChangeView).Methods(http.MethodPost)

	s.HandleFunc("/feed", h.GetFeed).Methods(http.MethodGet)
	s.HandleFunc("/feed/insight", h.RefreshInsight).Methods(http.MethodPost)
	s.HandleFunc("/posts/{id}/like", h.ToggleLike).Methods(http.MethodPost)
	s.HandleFunc("/posts/{id}/comments", h.AddComment).Methods(http.MethodPost)
	s.HandleFunc("/blog", h.GetBlog).Methods(http.MethodGet)
	s.HandleFunc("/products", h.GetProducts).Methods(http.MethodGet)

	s.HandleFunc("/members", h.ListMembers).Methods(http.MethodGet)
	s.HandleFunc("/members/{id}", h.GetMember).Methods(http.MethodGet)

	s.HandleFunc("/profile", h.GetProfile).Methods(http.MethodGet)
	s.HandleFunc("/profile", h.SaveProfile).Methods(http.MethodPut)
	s.HandleFunc("/settings", h.UpdateSettings).Methods(http.MethodPut)
	s.HandleFunc("/settings/password", h.UpdatePassword).Methods(http.MethodPut)

	s.HandleFunc("/dashboard", h.GetDashboard).Methods(http.MethodGet)
	s.HandleFunc("/treasury", h.GetTreasury).Methods(http.MethodGet)

	s.HandleFunc("/checkout", h.StartCheckout).Methods(http.MethodPost)
	s.HandleFunc("/checkout", h.GetCheckout).Methods(http.MethodGet)
	s.HandleFunc("/checkout/method", h.ChooseMethod).Methods(http.MethodPost)
	s.HandleFunc("/checkout", h.CancelCheckout).Methods(http.MethodDelete)

	s.HandleFunc("/gateways", h.ListGateways).Methods(http.MethodGet)
	s.HandleFunc("/gateways/link", h.GetLink).Methods(http.MethodGet)
	s.HandleFunc("/gateways/initiate", h.InitiateLink).Methods(http.MethodPost)
	s.HandleFunc("/gateways/{kind}", h.OpenLink).Methods(http.MethodPost)
	s.HandleFunc("/gateways", h.CancelLink).Methods(http.MethodDelete)

	s.HandleFunc("/studio/copy", h.MarketingCopy).Methods(http.MethodPost)

	return router
}
