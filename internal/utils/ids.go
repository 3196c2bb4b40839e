package utils

import (
	"encoding/hex"
	"math/rand/v2"
	"strings"

	"github.com/btcsuite/btcutil/base58"
	"github.com/google/uuid"
	"github.com/nrednav/cuid2"
)

var (
	shortID = mustGenerator(5)
	longID  = mustGenerator(9)
)

func mustGenerator(length int) func() string {
	gen, err := cuid2.Init(cuid2.WithLength(length))
	if err != nil {
		panic(err)
	}
	return gen
}

// NewMemberID returns an id for a freshly registered member, e.g. "user-k3v9q".
func NewMemberID() string {
	return "user-" + shortID()
}

func NewCommentID() string {
	return "c-" + shortID()
}

func NewWalletID() string {
	return "w-" + shortID()
}

// NewTransactionID returns an upper-case transaction id, e.g. "TX-QH2M0X8ZL".
func NewTransactionID() string {
	return "TX-" + strings.ToUpper(longID())
}

// NewGuestID returns the anonymous actor id a session keeps for its lifetime.
func NewGuestID() string {
	return "guest-" + longID()
}

func NewSessionID() string {
	return uuid.NewString()
}

// NewProviderRef returns an opaque gateway reference: prefix plus base58 of a random uuid.
func NewProviderRef(prefix string) string {
	id := uuid.New()
	return prefix + base58.Encode(id[:])
}

// RandomHex returns n random bytes hex encoded.
func RandomHex(n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(rand.IntN(256))
	}
	return hex.EncodeToString(buf)
}

// RandomDigits returns n random decimal digits.
func RandomDigits(n int) string {
	var sb strings.Builder
	for range n {
		sb.WriteByte(byte('0' + rand.IntN(10)))
	}
	return sb.String()
}

// NewFlowID names one checkout or gateway link run.
func NewFlowID() string {
	return "flow-" + longID()
}
