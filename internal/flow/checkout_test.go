package flow

import (
	"sync"
	"testing"
	"time"

	"nexuscore-backend/internal/domain"
	"nexuscore-backend/internal/flow/flowtest"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCheckoutTimings = CheckoutTimings{Processing: 2 * time.Second, Confirm: 1500 * time.Millisecond}

// recorder collects completion callbacks, which run on fake clock goroutines.
type recorder[T any] struct {
	mu  sync.Mutex
	got []T
}

func (r *recorder[T]) add(v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, v)
}

func (r *recorder[T]) all() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]T(nil), r.got...)
}

func TestCheckout_HappyPath(t *testing.T) {
	for _, method := range domain.AllPaymentMethods {
		t.Run(string(method), func(t *testing.T) {
			clock := flowtest.NewClock(time.Now())
			settled := &recorder[domain.PaymentMethod]{}
			c := NewCheckout("co-1", CheckoutRequest{
				Amount:      decimal.RequireFromString("15.00"),
				ContextType: domain.ContextTypeTip,
				ContextID:   "post-1",
				PayeeID:     "user-2",
			}, testCheckoutTimings, clock, settled.add)

			assert.Equal(t, CheckoutSelect, c.Status().State)
			assert.Equal(t, domain.DefaultCurrency, c.Status().Currency)
			require.NoError(t, c.Choose(method))
			assert.Equal(t, CheckoutProcessing, c.Status().State)

			flowtest.Step(t, clock, 1, 2*time.Second)
			flowtest.Eventually(t, func() bool { return c.Status().State == CheckoutSuccess }, "processing done")
			assert.Empty(t, settled.all())

			flowtest.Step(t, clock, 1, 1500*time.Millisecond)
			flowtest.Eventually(t, c.Closed, "checkout closed")
			assert.Equal(t, CheckoutCompleted, c.Status().State)
			flowtest.Eventually(t, func() bool { return len(settled.all()) == 1 }, "payment settled")
			assert.Equal(t, []domain.PaymentMethod{method}, settled.all())

			flowtest.Idle(t, clock)
			clock.Advance(time.Minute)
			assert.Len(t, settled.all(), 1)
		})
	}
}

func TestCheckout_CancelFromSelect(t *testing.T) {
	clock := flowtest.NewClock(time.Now())
	settled := &recorder[domain.PaymentMethod]{}
	c := NewCheckout("co-2", CheckoutRequest{Amount: decimal.NewFromInt(5)}, testCheckoutTimings, clock, settled.add)

	require.NoError(t, c.Cancel())
	assert.Equal(t, CheckoutCancelled, c.Status().State)
	assert.True(t, c.Closed())

	err := c.Choose(domain.PaymentMethodStripe)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, c.Status().Method)

	flowtest.Idle(t, clock)
	clock.Advance(time.Hour)
	assert.Empty(t, settled.all())
}

func TestCheckout_CannotCancelOnceProcessing(t *testing.T) {
	clock := flowtest.NewClock(time.Now())
	c := NewCheckout("co-3", CheckoutRequest{Amount: decimal.NewFromInt(5)}, testCheckoutTimings, clock, nil)

	require.NoError(t, c.Choose(domain.PaymentMethodWallet))
	assert.ErrorIs(t, c.Cancel(), ErrNotCancellable)
	assert.Equal(t, CheckoutProcessing, c.Status().State)

	flowtest.Step(t, clock, 1, 2*time.Second)
	flowtest.Eventually(t, func() bool { return c.Status().State == CheckoutSuccess }, "processing done")
	assert.ErrorIs(t, c.Cancel(), ErrNotCancellable)
	assert.ErrorIs(t, c.Choose(domain.PaymentMethodLocal), ErrInvalidTransition)
	assert.Equal(t, domain.PaymentMethodWallet, c.Status().Method)
}

func TestCheckout_AcceptedMethods(t *testing.T) {
	clock := flowtest.NewClock(time.Now())
	c := NewCheckout("co-4", CheckoutRequest{
		Amount:          decimal.RequireFromString("49.99"),
		ContextType:     domain.ContextTypeProduct,
		ContextID:       "prod-1",
		AcceptedMethods: []domain.PaymentMethod{domain.PaymentMethodStripe, domain.PaymentMethodWallet},
	}, testCheckoutTimings, clock, nil)

	assert.ErrorIs(t, c.Choose(domain.PaymentMethodLocal), ErrMethodNotAccepted)
	assert.ErrorIs(t, c.Choose("PAYPAL"), ErrUnknownMethod)
	assert.Equal(t, CheckoutSelect, c.Status().State)
	assert.Equal(t, []domain.PaymentMethod{domain.PaymentMethodStripe, domain.PaymentMethodWallet}, c.Status().AcceptedMethods)

	require.NoError(t, c.Choose(domain.PaymentMethodStripe))
	assert.Equal(t, CheckoutProcessing, c.Status().State)
}

func TestCheckout_StopHaltsTimers(t *testing.T) {
	clock := flowtest.NewClock(time.Now())
	settled := &recorder[domain.PaymentMethod]{}
	c := NewCheckout("co-5", CheckoutRequest{Amount: decimal.NewFromInt(1)}, testCheckoutTimings, clock, settled.add)

	require.NoError(t, c.Choose(domain.PaymentMethodLocal))
	c.Stop()
	flowtest.Idle(t, clock)
	clock.Advance(time.Hour)

	assert.Equal(t, CheckoutProcessing, c.Status().State)
	assert.Empty(t, settled.all())
}

func TestCheckout_ZeroTimingsCompleteOnRealClock(t *testing.T) {
	done := make(chan domain.PaymentMethod, 1)
	c := NewCheckout("co-6", CheckoutRequest{Amount: decimal.NewFromInt(1)}, CheckoutTimings{}, RealClock(),
		func(m domain.PaymentMethod) { done <- m })

	require.NoError(t, c.Choose(domain.PaymentMethodStripe))
	select {
	case m := <-done:
		assert.Equal(t, domain.PaymentMethodStripe, m)
	case <-time.After(2 * time.Second):
		t.Fatal("checkout never completed")
	}
}
