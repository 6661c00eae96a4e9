// Package reference generates the caller-side unique references that tag
// gateway charges and transfers so webhooks can be correlated back to the
// originating transaction.
package reference

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
)

// Prefixes per money-movement flow. The gateway echoes the reference back in
// charge responses and webhook payloads.
const (
	PrefixCardCharge   = "CCREF_"
	PrefixBankTransfer = "BTCREF_"
	PrefixInApp        = "IATREF_"
	PrefixWithdrawal   = "BWREF_"
)

// New returns prefix followed by n random lowercase hex characters.
func New(prefix string, n int) string {
	buf := make([]byte, (n+1)/2)
	if _, err := rand.Read(buf); err != nil {
		// A failed crypto/rand read is unrecoverable.
		panic("reference: " + err.Error())
	}
	return prefix + hex.EncodeToString(buf)[:n]
}

// CardCharge returns a CCREF_ reference with 8 hex characters.
func CardCharge() string { return New(PrefixCardCharge, 8) }

// BankTransfer returns a BTCREF_ reference with 8 hex characters.
func BankTransfer() string { return New(PrefixBankTransfer, 8) }

// InApp returns an IATREF_ reference with 6 hex characters.
func InApp() string { return New(PrefixInApp, 6) }

// Withdrawal returns a BWREF_ reference with 8 hex characters.
func Withdrawal() string { return New(PrefixWithdrawal, 8) }

// LocalTransactionID generates the numeric id recorded for in-app transfers,
// which never receive a gateway-assigned id. Five digits, no leading zero,
// mirroring the id space gateway-assigned ids live in.
func LocalTransactionID() int64 {
	n, err := rand.Int(rand.Reader, big.NewInt(90000))
	if err != nil {
		panic("reference: " + err.Error())
	}
	return n.Int64() + 10000
}
