package session

import (
	"nexuscore-backend/internal/domain"
	"nexuscore-backend/internal/flow"
	"nexuscore-backend/internal/logger"
	"nexuscore-backend/internal/utils"
)

var providerRefPrefix = map[domain.PaymentMethod]string{
	domain.PaymentMethodStripe: "pi_",
	domain.PaymentMethodWallet: "wl_",
	domain.PaymentMethodLocal:  "ll_",
}

// Hooks observe records produced by completed flows. They run outside the
// controller lock.
type Hooks struct {
	PaymentRecorded func(domain.PaymentRecord)
	WalletLinked    func(domain.Wallet)
}

func (c *Controller) SetHooks(h Hooks) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = h
}

// BeginCheckout opens the session's checkout. The payer is pinned to the
// acting member at this point. Guests raise the auth prompt instead.
func (c *Controller) BeginCheckout(req flow.CheckoutRequest, timings flow.CheckoutTimings) (*flow.Checkout, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.currentUser == nil {
		c.authPrompt = true
		return nil, domain.ErrAuthRequired
	}
	if c.checkout != nil && !c.checkout.Closed() {
		return nil, domain.ErrFlowInProgress
	}
	if !req.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	payerID := c.currentUser.ID
	c.checkout = flow.NewCheckout(utils.NewFlowID(), req, timings, c.clock, func(method domain.PaymentMethod) {
		c.RecordPayment(payerID, method, req)
	})
	return c.checkout, nil
}

// Checkout returns the latest checkout, open or closed.
func (c *Controller) Checkout() (*flow.Checkout, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.checkout == nil {
		return nil, domain.ErrNoActiveFlow
	}
	return c.checkout, nil
}

// RecordPayment stores the synthetic record of a settled checkout at the head
// of the payment log.
func (c *Controller) RecordPayment(payerID string, method domain.PaymentMethod, req flow.CheckoutRequest) domain.PaymentRecord {
	c.mu.Lock()

	currency := req.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	payeeID := req.PayeeID
	if payeeID == "" {
		payeeID = domain.DefaultPayeeID
	}
	record := domain.PaymentRecord{
		ID:          utils.NewTransactionID(),
		PayerID:     payerID,
		PayeeID:     payeeID,
		Amount:      req.Amount,
		Currency:    currency,
		Method:      method,
		Status:      domain.PaymentStatusSuccess,
		ContextType: req.ContextType,
		ContextID:   req.ContextID,
		ProviderRef: utils.NewProviderRef(providerRefPrefix[method]),
		CreatedAt:   c.clock.Now(),
	}
	c.payments = append([]domain.PaymentRecord{record}, c.payments...)
	logger.WithSession(c.id).Info("Payment recorded",
		"payment_id", record.ID, "amount", record.Amount.StringFixed(2), "method", method, "context", req.ContextType)
	hook := c.hooks.PaymentRecorded
	c.mu.Unlock()

	if hook != nil {
		hook(record)
	}
	return record
}

// BeginLink opens the session's gateway link for kind.
func (c *Controller) BeginLink(kind domain.GatewayKind, timings flow.LinkTimings) (*flow.Link, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.currentUser == nil {
		c.authPrompt = true
		return nil, domain.ErrAuthRequired
	}
	if c.link != nil && !c.link.Closed() {
		return nil, domain.ErrFlowInProgress
	}

	ownerID := c.currentUser.ID
	link, err := flow.NewLink(utils.NewFlowID(), kind, timings, c.clock, func(k domain.GatewayKind) {
		c.LinkWallet(ownerID, k)
	})
	if err != nil {
		return nil, err
	}
	c.link = link
	return link, nil
}

// Link returns the latest gateway link, open or closed.
func (c *Controller) Link() (*flow.Link, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.link == nil {
		return nil, domain.ErrNoActiveFlow
	}
	return c.link, nil
}

// LinkWallet appends the wallet produced by a completed gateway link.
func (c *Controller) LinkWallet(ownerID string, kind domain.GatewayKind) domain.Wallet {
	c.mu.Lock()

	wallet := domain.Wallet{
		ID:               utils.NewWalletID(),
		OwnerID:          ownerID,
		Currency:         domain.CurrencyBTC,
		Address:          "bank-routing-..." + utils.RandomDigits(4),
		SecurityProtocol: domain.SecurityProtocolQuantumShield,
	}
	if kind == domain.GatewayCrypto {
		wallet.Currency = domain.CurrencyUSDT
		wallet.Address = "0x" + utils.RandomHex(6) + "...f92a"
	}
	c.wallets = append(c.wallets, wallet)
	logger.WithSession(c.id).Info("Wallet linked", "wallet_id", wallet.ID, "owner_id", ownerID, "gateway", kind)
	hook := c.hooks.WalletLinked
	c.mu.Unlock()

	if hook != nil {
		hook(wallet)
	}
	return wallet
}

// Stop halts the timers of any open flow. Called when the session is evicted.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.checkout != nil {
		c.checkout.Stop()
	}
	if c.link != nil {
		c.link.Stop()
	}
}
