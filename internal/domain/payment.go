package domain

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodStripe PaymentMethod = "STRIPE"
	PaymentMethodWallet PaymentMethod = "WALLET"
	PaymentMethodLocal  PaymentMethod = "LOCAL"
)

// AllPaymentMethods lists every checkout method in display order.
var AllPaymentMethods = []PaymentMethod{PaymentMethodStripe, PaymentMethodWallet, PaymentMethodLocal}

func (m PaymentMethod) Valid() bool {
	return slices.Contains(AllPaymentMethods, m)
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

type ContextType string

const (
	ContextTypeTip          ContextType = "TIP"
	ContextTypeProduct      ContextType = "PRODUCT"
	ContextTypeSubscription ContextType = "SUBSCRIPTION"
)

// DefaultPayeeID receives payments that have no resolvable creator.
const DefaultPayeeID = "creator-alpha-1"

// DefaultCurrency is the currency of every checkout.
const DefaultCurrency = "USD"

type PaymentRecord struct {
	ID          string          `json:"id"`
	PayerID     string          `json:"payer_id"`
	PayeeID     string          `json:"payee_id"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Method      PaymentMethod   `json:"method"`
	Status      PaymentStatus   `json:"status"`
	ContextType ContextType     `json:"context_type"`
	ContextID   string          `json:"context_id"`
	ProviderRef string          `json:"provider_ref,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

type ProductItem struct {
	ID              string          `json:"id"`
	CreatorID       string          `json:"creator_id"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	Currency        string          `json:"currency"`
	AcceptedMethods []PaymentMethod `json:"accepted_methods"`
}
