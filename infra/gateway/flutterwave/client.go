// Package flutterwave implements the payment gateway contract against the
// Flutterwave v3 REST API.
package flutterwave

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/nokolie/kudiwallet/config"
	"github.com/nokolie/kudiwallet/pkg/gateway"
)

// Client calls the Flutterwave v3 API. Charge-initiation calls are sent
// exactly once; only the idempotent verify/lookup reads are retried.
type Client struct {
	BaseURL       string
	SecretKey     string
	EncryptionKey string
	HTTPClient    *http.Client
	VerifyRetries int
	logger        *slog.Logger
}

var _ gateway.Client = (*Client)(nil)

// New creates a Client from gateway configuration.
func New(cfg config.GatewayConfig, logger *slog.Logger) *Client {
	return &Client{
		BaseURL:       cfg.BaseURL,
		SecretKey:     cfg.SecretKey,
		EncryptionKey: cfg.EncryptionKey,
		HTTPClient:    &http.Client{Timeout: cfg.HTTPTimeout},
		VerifyRetries: cfg.VerifyRetries,
		logger:        logger,
	}
}

// ChargeCard initiates a card charge. The card payload is 3DES-encrypted with
// the account encryption key and sent as the "client" field, as the charge
// endpoint requires.
func (c *Client) ChargeCard(ctx context.Context, req gateway.CardChargeRequest) (*gateway.ChargeResponse, error) {
	plain, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	enc, err := encrypt3DES(c.EncryptionKey, plain)
	if err != nil {
		return nil, fmt.Errorf("encrypting card payload: %w", err)
	}

	var res gateway.ChargeResponse
	if err := c.do(ctx, http.MethodPost, "/charges?type=card",
		map[string]string{"client": enc}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ValidateCharge submits the OTP completing a pin-mode card charge.
func (c *Client) ValidateCharge(ctx context.Context, otp, flwRef string) (*gateway.ChargeResponse, error) {
	body := map[string]string{
		"otp":     otp,
		"flw_ref": flwRef,
		"type":    "card",
	}
	var res gateway.ChargeResponse
	if err := c.do(ctx, http.MethodPost, "/validate-charge", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ChargeBankTransfer provisions a bank-transfer payment instrument.
func (c *Client) ChargeBankTransfer(ctx context.Context, req gateway.BankTransferRequest) (*gateway.BankTransferResponse, error) {
	var res gateway.BankTransferResponse
	if err := c.do(ctx, http.MethodPost, "/charges?type=bank_transfer", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// VerifyTransaction fetches the authoritative state of a transaction by id.
func (c *Client) VerifyTransaction(ctx context.Context, id int64) (*gateway.VerifyResponse, error) {
	var res gateway.VerifyResponse
	path := fmt.Sprintf("/transactions/%d/verify", id)
	if err := c.doWithRetry(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// CreateBeneficiary registers a withdrawal destination.
func (c *Client) CreateBeneficiary(ctx context.Context, req gateway.BeneficiaryRequest) (*gateway.BeneficiaryResponse, error) {
	var res gateway.BeneficiaryResponse
	if err := c.do(ctx, http.MethodPost, "/beneficiaries", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// DeleteBeneficiary removes a gateway-side beneficiary record.
func (c *Client) DeleteBeneficiary(ctx context.Context, id int64) error {
	var res struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	path := fmt.Sprintf("/beneficiaries/%d", id)
	if err := c.do(ctx, http.MethodDelete, path, nil, &res); err != nil {
		return err
	}
	if res.Status != gateway.StatusSuccess {
		return &gateway.Error{StatusCode: http.StatusOK, Status: res.Status, Message: res.Message}
	}
	return nil
}

// InitiateTransfer starts a payout to a bank account.
func (c *Client) InitiateTransfer(ctx context.Context, req gateway.TransferRequest) (*gateway.TransferResponse, error) {
	var res gateway.TransferResponse
	if err := c.do(ctx, http.MethodPost, "/transfers", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetTransfer fetches the authoritative state of a transfer by id.
func (c *Client) GetTransfer(ctx context.Context, id int64) (*gateway.TransferResponse, error) {
	var res gateway.TransferResponse
	path := fmt.Sprintf("/transfers/%d", id)
	if err := c.doWithRetry(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// doWithRetry repeats an idempotent read on transport failure or 5xx, with a
// short linear backoff. Non-idempotent calls go through do directly.
func (c *Client) doWithRetry(ctx context.Context, method, path string, body, out any) error {
	var lastErr error
	attempts := c.VerifyRetries + 1
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(i) * 500 * time.Millisecond):
			}
		}
		lastErr = c.do(ctx, method, path, body, out)
		if lastErr == nil {
			return nil
		}
		if gwErr, ok := lastErr.(*gateway.Error); ok && gwErr.StatusCode < http.StatusInternalServerError {
			return lastErr
		}
		c.logger.Warn("gateway read failed, retrying",
			"method", method, "path", path, "attempt", i+1, "error", lastErr)
	}
	return lastErr
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request %s %s: %w", method, path, err)
	}
	defer func() { _ = res.Body.Close() }()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("reading gateway response: %w", err)
	}

	if res.StatusCode >= http.StatusBadRequest {
		var e struct {
			Status  string `json:"status"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(raw, &e); err != nil || e.Message == "" {
			e.Message = http.StatusText(res.StatusCode)
		}
		return &gateway.Error{StatusCode: res.StatusCode, Status: e.Status, Message: e.Message}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding gateway response: %w", err)
	}
	return nil
}
