// Package gateway defines the outbound contract with the third-party payment
// gateway: card charges (two-step PIN and redirect authorization), bank
// transfer instruments, charge OTP validation, transaction verification,
// beneficiary registration and transfer initiation/lookup. The HTTP
// implementation lives in infra/gateway/flutterwave.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
)

// Authorization modes a card charge can come back with.
const (
	AuthModePin      = "pin"
	AuthModeRedirect = "redirect"
)

// Client is the outbound payment gateway API. Charge-initiation calls are
// non-idempotent and must never be retried; verify/get calls are idempotent
// reads and may be.
type Client interface {
	ChargeCard(ctx context.Context, req CardChargeRequest) (*ChargeResponse, error)
	ValidateCharge(ctx context.Context, otp, flwRef string) (*ChargeResponse, error)
	ChargeBankTransfer(ctx context.Context, req BankTransferRequest) (*BankTransferResponse, error)
	VerifyTransaction(ctx context.Context, id int64) (*VerifyResponse, error)
	CreateBeneficiary(ctx context.Context, req BeneficiaryRequest) (*BeneficiaryResponse, error)
	DeleteBeneficiary(ctx context.Context, id int64) error
	InitiateTransfer(ctx context.Context, req TransferRequest) (*TransferResponse, error)
	GetTransfer(ctx context.Context, id int64) (*TransferResponse, error)
}

// Error is a gateway-call failure. Services surface it to callers as a
// bad-gateway condition with the upstream message sanitized at the edge.
type Error struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("gateway error (http %d): %s", e.StatusCode, e.Message)
}

// CardChargeRequest initiates a card charge. Authorization is nil on the
// first call; the second call carries the PIN when the gateway demanded
// pin-mode authorization.
type CardChargeRequest struct {
	Amount        string         `json:"amount"`
	CardNumber    string         `json:"card_number"`
	CVV           string         `json:"cvv"`
	ExpiryMonth   string         `json:"expiry_month"`
	ExpiryYear    string         `json:"expiry_year"`
	Currency      string         `json:"currency"`
	Email         string         `json:"email"`
	Phone         string         `json:"phone"`
	FullName      string         `json:"fullname"`
	ClientIP      string         `json:"client_ip"`
	Narration     string         `json:"narration"`
	TxRef         string         `json:"tx_ref"`
	Authorization *Authorization `json:"authorization,omitempty"`
}

// Authorization is the second-step payload for pin-mode charges.
type Authorization struct {
	Mode string `json:"mode"`
	Pin  string `json:"pin,omitempty"`
}

// ChargeResponse is the gateway's reply to card charge and charge validation
// calls.
type ChargeResponse struct {
	Status  string     `json:"status"`
	Message string     `json:"message"`
	Data    ChargeData `json:"data"`
	Meta    ChargeMeta `json:"meta"`
}

// ChargeData carries the gateway-assigned transaction identity and outcome.
type ChargeData struct {
	ID                int64       `json:"id"`
	TxRef             string      `json:"tx_ref"`
	FlwRef            string      `json:"flw_ref"`
	Amount            json.Number `json:"amount"`
	Currency          string      `json:"currency"`
	Status            string      `json:"status"`
	Narration         string      `json:"narration"`
	ProcessorResponse string      `json:"processor_response"`
}

// ChargeMeta carries the authorization instruction for the next step.
type ChargeMeta struct {
	Authorization MetaAuthorization `json:"authorization"`
}

// MetaAuthorization tells the caller how to complete the charge: submit a PIN
// or send the cardholder to a redirect URL.
type MetaAuthorization struct {
	Mode     string `json:"mode"`
	Redirect string `json:"redirect,omitempty"`
}

// BankTransferRequest requests a bank-transfer payment instrument (virtual
// account) for funding the wallet.
type BankTransferRequest struct {
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	FullName    string `json:"fullname"`
	ClientIP    string `json:"client_ip"`
	Narration   string `json:"narration"`
	IsPermanent bool   `json:"is_permanent"`
	TxRef       string `json:"tx_ref"`
}

// BankTransferResponse carries the transfer instructions under meta.
type BankTransferResponse struct {
	Status  string           `json:"status"`
	Message string           `json:"message"`
	Meta    BankTransferMeta `json:"meta"`
}

// BankTransferMeta holds the virtual-account authorization sub-object.
type BankTransferMeta struct {
	Authorization BankTransferAuthorization `json:"authorization"`
	Currency      string                    `json:"currency"`
}

// BankTransferAuthorization identifies the provisioned instrument and the
// expected payment.
type BankTransferAuthorization struct {
	ID                int64       `json:"id"`
	TransferReference string      `json:"transfer_reference"`
	TransferAccount   string      `json:"transfer_account"`
	TransferBank      string      `json:"transfer_bank"`
	TransferAmount    json.Number `json:"transfer_amount"`
	AccountExpiration string      `json:"account_expiration"`
	Narration         string      `json:"transfer_note"`
	Mode              string      `json:"mode"`
	Status            string      `json:"status"`
}

// VerifyResponse is the reply to a transaction verify-by-id call.
type VerifyResponse struct {
	Status  string     `json:"status"`
	Message string     `json:"message"`
	Data    VerifyData `json:"data"`
}

// VerifyData is the gateway's authoritative view of a transaction. Webhook
// reconciliation trusts these fields, never the webhook payload.
type VerifyData struct {
	ID       int64       `json:"id"`
	TxRef    string      `json:"tx_ref"`
	FlwRef   string      `json:"flw_ref"`
	Amount   json.Number `json:"amount"`
	Currency string      `json:"currency"`
	Status   string      `json:"status"`
}

// BeneficiaryRequest registers a withdrawal destination with the gateway.
type BeneficiaryRequest struct {
	AccountNumber   string `json:"account_number"`
	AccountBank     string `json:"account_bank"`
	BankName        string `json:"bank_name,omitempty"`
	BeneficiaryName string `json:"beneficiary_name"`
	Currency        string `json:"currency"`
}

// BeneficiaryResponse is the reply to beneficiary registration.
type BeneficiaryResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    BeneficiaryData `json:"data"`
}

// BeneficiaryData carries the gateway-assigned beneficiary identity.
type BeneficiaryData struct {
	ID            int64  `json:"id"`
	AccountNumber string `json:"account_number"`
	BankCode      string `json:"bank_code"`
	BankName      string `json:"bank_name"`
	FullName      string `json:"full_name"`
}

// TransferMeta is caller metadata attached to a transfer initiation.
type TransferMeta struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobile_number"`
}

// TransferRequest initiates a payout to a beneficiary bank account.
type TransferRequest struct {
	Amount          string       `json:"amount"`
	AccountBank     string       `json:"account_bank"`
	AccountNumber   string       `json:"account_number"`
	Currency        string       `json:"currency"`
	Narration       string       `json:"narration"`
	BeneficiaryName string       `json:"beneficiary_name"`
	Reference       string       `json:"reference"`
	Meta            TransferMeta `json:"meta"`
}

// TransferResponse is the reply to transfer initiation and lookup.
type TransferResponse struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	Data    TransferData `json:"data"`
}

// TransferData identifies the transfer and its settlement state.
type TransferData struct {
	ID            int64       `json:"id"`
	AccountNumber string      `json:"account_number"`
	BankCode      string      `json:"bank_code"`
	FullName      string      `json:"full_name"`
	Reference     string      `json:"reference"`
	Narration     string      `json:"narration"`
	Currency      string      `json:"currency"`
	Amount        json.Number `json:"amount"`
	Status        string      `json:"status"`
}

// StatusSuccess is the gateway's top-level call outcome for a successful
// request (distinct from a transaction's settlement status).
const StatusSuccess = "success"
