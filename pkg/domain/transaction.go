package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TransactionType classifies a money-movement attempt.
type TransactionType string

const (
	TypeCardTransaction TransactionType = "Card Transaction"
	TypeBankTransfer    TransactionType = "Bank transfer"
	TypeInAppTransfer   TransactionType = "User in-app transfer"
	TypeWithdrawal      TransactionType = "Withdrawal"
)

// TransactionStatus is the closed settlement-state set. Gateway vocabulary is
// mapped into it at the boundary so the reconciler never compares free-form
// strings.
type TransactionStatus string

const (
	StatusPending    TransactionStatus = "pending"
	StatusSuccessful TransactionStatus = "successful"
	StatusFailed     TransactionStatus = "failed"
)

// StatusFromGateway maps the gateway's status vocabulary into the closed set.
// Unknown values are treated as pending so a later webhook can settle them.
func StatusFromGateway(s string) TransactionStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "success", "successful":
		return StatusSuccessful
	case "failed", "error":
		return StatusFailed
	case "pending", "processing", "new":
		return StatusPending
	default:
		return StatusPending
	}
}

// Transaction is the ledger record for one money-movement attempt. The ID is
// gateway-assigned for card, bank-transfer and withdrawal flows and locally
// generated for in-app transfers. Reference is globally unique and correlates
// webhook redeliveries. Amount is kept as the decimal string the gateway
// reported it in.
type Transaction struct {
	ID        int64             `json:"id"`
	Reference string            `json:"reference"`
	Amount    string            `json:"amount"`
	Currency  string            `json:"currency"`
	Status    TransactionStatus `json:"status"`
	Narration string            `json:"narration"`
	Type      TransactionType   `json:"type"`
	Recipient string            `json:"recipient,omitempty"`
	UserID    uuid.UUID         `json:"user_id"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// AmountMinor parses the recorded amount into minor units, truncating any
// fractional part the gateway may have included.
func (t *Transaction) AmountMinor() (int64, error) {
	s := strings.TrimSpace(t.Amount)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	return strconv.ParseInt(s, 10, 64)
}

// Settled reports whether the transaction already had its balance effect
// applied. The reconciler only credits or debits on the pending → successful
// transition.
func (t *Transaction) Settled() bool {
	return t.Status == StatusSuccessful
}
