package domain

import "github.com/shopspring/decimal"

type Currency string

const (
	CurrencyUSDT Currency = "USDT"
	CurrencyBTC  Currency = "BTC"
	CurrencyETH  Currency = "ETH"
)

type SecurityProtocol string

const (
	SecurityProtocolStandard      SecurityProtocol = "STANDARD"
	SecurityProtocolQuantumShield SecurityProtocol = "QUANTUM_SHIELD"
	SecurityProtocolBioLocked     SecurityProtocol = "BIO_LOCKED"
)

type Wallet struct {
	ID               string           `json:"id"`
	OwnerID          string           `json:"owner_id"`
	Address          string           `json:"address"`
	Currency         Currency         `json:"currency"`
	Balance          decimal.Decimal  `json:"balance"`
	SecurityProtocol SecurityProtocol `json:"security_protocol,omitempty"`
}

// GatewayKind selects the external provider an account-linking flow targets.
type GatewayKind string

const (
	GatewayStripe GatewayKind = "STRIPE"
	GatewayCrypto GatewayKind = "CRYPTO"
	GatewayLocal  GatewayKind = "LOCAL"
)

// GatewayInfo is display metadata only; every kind links the same way.
type GatewayInfo struct {
	Kind        GatewayKind `json:"kind"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Detail      string      `json:"detail"`
}

var gateways = map[GatewayKind]GatewayInfo{
	GatewayStripe: {
		Kind:        GatewayStripe,
		Title:       "Stripe Terminal",
		Description: "Synchronize fiat settlement rails for global payouts.",
		Detail:      "AES-256 encrypted link to Stripe Connect",
	},
	GatewayCrypto: {
		Kind:        GatewayCrypto,
		Title:       "Web3 Bridge",
		Description: "Authorize on-chain signatures and smart contract interactions.",
		Detail:      "EVM compatible wallet handshake",
	},
	GatewayLocal: {
		Kind:        GatewayLocal,
		Title:       "Local Ledger",
		Description: "Direct integration with local banking protocols (SEPA/ACH).",
		Detail:      "Institutional grade bank verification",
	},
}

// LookupGateway returns the metadata for kind.
func LookupGateway(kind GatewayKind) (GatewayInfo, bool) {
	info, ok := gateways[kind]
	return info, ok
}

// GatewayKinds lists every gateway in display order.
var GatewayKinds = []GatewayKind{GatewayStripe, GatewayCrypto, GatewayLocal}
