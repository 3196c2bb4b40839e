package http

import (
	"net/http"
	"strings"

	"nexuscore-backend/internal/domain"
	"nexuscore-backend/internal/service"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type checkoutRequest struct {
	ContextType domain.ContextType `json:"context_type"`
	ContextID   string             `json:"context_id"`
	Amount      decimal.Decimal    `json:"amount"`
	PayeeID     string             `json:"payee_id,omitempty"`
}

type methodRequest struct {
	Method domain.PaymentMethod `json:"method"`
}

func (h *Handler) StartCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	st, err := h.checkout.Start(r.Context(), sessionFrom(r.Context()).ID(), service.CheckoutInput{
		ContextType: req.ContextType,
		ContextID:   req.ContextID,
		Amount:      req.Amount,
		PayeeID:     req.PayeeID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, st)
}

func (h *Handler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	st, err := h.checkout.Status(r.Context(), sessionFrom(r.Context()).ID())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *Handler) ChooseMethod(w http.ResponseWriter, r *http.Request) {
	var req methodRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	st, err := h.checkout.ChooseMethod(r.Context(), sessionFrom(r.Context()).ID(), req.Method)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *Handler) CancelCheckout(w http.ResponseWriter, r *http.Request) {
	st, err := h.checkout.Cancel(r.Context(), sessionFrom(r.Context()).ID())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *Handler) ListGateways(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.gateways.Gateways())
}

func (h *Handler) OpenLink(w http.ResponseWriter, r *http.Request) {
	kind := domain.GatewayKind(strings.ToUpper(mux.Vars(r)["kind"]))
	st, err := h.gateways.Open(r.Context(), sessionFrom(r.Context()).ID(), kind)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, st)
}

func (h *Handler) GetLink(w http.ResponseWriter, r *http.Request) {
	st, err := h.gateways.Status(r.Context(), sessionFrom(r.Context()).ID())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *Handler) InitiateLink(w http.ResponseWriter, r *http.Request) {
	st, err := h.gateways.Initiate(r.Context(), sessionFrom(r.Context()).ID())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *Handler) CancelLink(w http.ResponseWriter, r *http.Request) {
	st, err := h.gateways.Cancel(r.Context(), sessionFrom(r.Context()).ID())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
