package flow

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"nexuscore-backend/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	CheckoutSelect     State = "SELECT"
	CheckoutProcessing State = "PROCESSING"
	CheckoutSuccess    State = "SUCCESS"
	CheckoutCompleted  State = "COMPLETED"
	CheckoutCancelled  State = "CANCELLED"
)

const (
	EventChoose   Event = "choose"
	EventSettle   Event = "settle"
	EventComplete Event = "complete"
	EventCancel   Event = "cancel"
)

var checkoutTransitions = []Transition{
	{From: CheckoutSelect, Event: EventChoose, To: CheckoutProcessing},
	{From: CheckoutSelect, Event: EventCancel, To: CheckoutCancelled},
	{From: CheckoutProcessing, Event: EventSettle, To: CheckoutSuccess},
	{From: CheckoutSuccess, Event: EventComplete, To: CheckoutCompleted},
}

// CheckoutRequest is pinned when the checkout opens and never changes.
type CheckoutRequest struct {
	Amount          decimal.Decimal
	Currency        string
	ContextType     domain.ContextType
	ContextID       string
	PayeeID         string
	AcceptedMethods []domain.PaymentMethod // empty means every method
}

type CheckoutTimings struct {
	Processing time.Duration
	Confirm    time.Duration
}

// CheckoutStatus is a point-in-time view of a checkout.
type CheckoutStatus struct {
	ID              string                 `json:"id"`
	State           State                  `json:"state"`
	Method          domain.PaymentMethod   `json:"method,omitempty"`
	Amount          decimal.Decimal        `json:"amount"`
	Currency        string                 `json:"currency"`
	ContextType     domain.ContextType     `json:"context_type"`
	ContextID       string                 `json:"context_id"`
	AcceptedMethods []domain.PaymentMethod `json:"accepted_methods"`
}

// Checkout walks SELECT -> PROCESSING -> SUCCESS and then hands the chosen
// method to onSuccess. There is no failure path.
type Checkout struct {
	id        string
	request   CheckoutRequest
	machine   *Machine
	mu        sync.Mutex
	method    domain.PaymentMethod
	onSuccess func(domain.PaymentMethod)
}

func NewCheckout(id string, req CheckoutRequest, timings CheckoutTimings, clock Clock, onSuccess func(domain.PaymentMethod)) *Checkout {
	if req.Currency == "" {
		req.Currency = domain.DefaultCurrency
	}
	c := &Checkout{
		id:        id,
		request:   req,
		machine:   NewMachine("checkout", id, CheckoutSelect, clock, checkoutTransitions),
		onSuccess: onSuccess,
	}
	c.machine.OnEnter(CheckoutProcessing, func() {
		c.machine.After(timings.Processing, EventSettle)
	})
	c.machine.OnEnter(CheckoutSuccess, func() {
		c.machine.After(timings.Confirm, EventComplete)
	})
	c.machine.OnEnter(CheckoutCompleted, func() {
		c.mu.Lock()
		method := c.method
		c.mu.Unlock()
		if c.onSuccess != nil {
			c.onSuccess(method)
		}
	})
	return c
}

func (c *Checkout) ID() string {
	return c.id
}

func (c *Checkout) Request() CheckoutRequest {
	return c.request
}

func (c *Checkout) AcceptedMethods() []domain.PaymentMethod {
	if len(c.request.AcceptedMethods) == 0 {
		return slices.Clone(domain.AllPaymentMethods)
	}
	return slices.Clone(c.request.AcceptedMethods)
}

// Choose picks the payment method and starts processing.
func (c *Checkout) Choose(method domain.PaymentMethod) error {
	if !method.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
	if !slices.Contains(c.AcceptedMethods(), method) {
		return fmt.Errorf("%w: %s", ErrMethodNotAccepted, method)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	previous := c.method
	c.method = method
	if err := c.machine.Fire(EventChoose); err != nil {
		c.method = previous
		return err
	}
	return nil
}

// Cancel closes the checkout. Only possible before a method is chosen.
func (c *Checkout) Cancel() error {
	if err := c.machine.Fire(EventCancel); err != nil {
		return fmt.Errorf("%w: checkout is %s", ErrNotCancellable, c.machine.State())
	}
	return nil
}

// Closed reports whether the checkout reached a terminal state.
func (c *Checkout) Closed() bool {
	s := c.machine.State()
	return s == CheckoutCompleted || s == CheckoutCancelled
}

// Stop drops any scheduled transition, used when the owning session goes away.
func (c *Checkout) Stop() {
	c.machine.Stop()
}

func (c *Checkout) Status() CheckoutStatus {
	c.mu.Lock()
	method := c.method
	c.mu.Unlock()
	return CheckoutStatus{
		ID:              c.id,
		State:           c.machine.State(),
		Method:          method,
		Amount:          c.request.Amount,
		Currency:        c.request.Currency,
		ContextType:     c.request.ContextType,
		ContextID:       c.request.ContextID,
		AcceptedMethods: c.AcceptedMethods(),
	}
}
