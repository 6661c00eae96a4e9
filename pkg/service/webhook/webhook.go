// Package webhook implements the reconciler for asynchronous gateway
// notifications. Every event is re-verified against the gateway before any
// balance effect is applied; settlement is idempotent under redelivery
// because balances only move on the pending → successful status transition,
// and the transaction row is locked for the duration of the unit of work.
package webhook

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nokolie/kudiwallet/pkg/domain"
	"github.com/nokolie/kudiwallet/pkg/gateway"
	"github.com/nokolie/kudiwallet/pkg/repository"
)

// Event types the reconciler handles. Anything else is logged and discarded.
const (
	EventCardTransaction   = "CARD_TRANSACTION"
	EventTransferCompleted = "TRANSFER_COMPLETED"
)

// Payload is the minimal gateway webhook body the reconciler depends on.
// Amounts and statuses in the payload are never trusted; the transaction is
// re-verified with the gateway by id.
type Payload struct {
	ID    int64 `json:"id"`
	Event struct {
		Type string `json:"type"`
	} `json:"event"`
}

// Service verifies and applies gateway notifications.
type Service struct {
	uow        repository.UnitOfWork
	gw         gateway.Client
	secretHash string
	logger     *slog.Logger
}

// New creates a webhook Service. The shared secret is injected at
// construction time.
func New(uow repository.UnitOfWork, gw gateway.Client, secretHash string, logger *slog.Logger) *Service {
	return &Service{uow: uow, gw: gw, secretHash: secretHash, logger: logger}
}

// VerifySignature compares the verif-hash header against the pre-shared
// secret in constant time. A missing or mismatched value means the request is
// noise or an attack and must be silently discarded.
func (s *Service) VerifySignature(header string) bool {
	if header == "" || s.secretHash == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(header), []byte(s.secretHash)) == 1
}

// Process dispatches a signature-verified notification body. Errors are
// returned for logging only: the HTTP handler always acknowledges with 200
// once the signature checked out, so the gateway does not retry-storm us.
func (s *Service) Process(ctx context.Context, body []byte) error {
	var p Payload
	if err := json.Unmarshal(body, &p); err != nil {
		return fmt.Errorf("malformed webhook payload: %w", err)
	}

	log := s.logger.With("context", "Process", "event", p.Event.Type, "gatewayID", p.ID)
	log.Debug("webhook received")

	switch p.Event.Type {
	case EventCardTransaction:
		return s.settleCardTransaction(ctx, p.ID, log)
	case EventTransferCompleted:
		return s.settleTransfer(ctx, p.ID, log)
	default:
		log.Info("ignoring webhook event of unhandled type")
		return nil
	}
}

// settleCardTransaction credits the user for a verified successful card
// charge. The credit applies at most once: only when the locally recorded
// transaction has not already settled.
func (s *Service) settleCardTransaction(ctx context.Context, id int64, log *slog.Logger) error {
	verified, err := s.gw.VerifyTransaction(ctx, id)
	if err != nil {
		return fmt.Errorf("card transaction verify: %w", err)
	}

	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}

		trn, err := transactions.GetByIDForUpdate(ctx, verified.Data.ID)
		if errors.Is(err, domain.ErrTransactionNotFound) {
			log.Warn("webhook for unknown transaction, discarding")
			return nil
		}
		if err != nil {
			return err
		}

		status := domain.StatusFromGateway(verified.Data.Status)
		if s.cardCreditApplies(trn, verified) {
			user, err := users.GetByIDForUpdate(ctx, trn.UserID)
			if err != nil {
				return err
			}
			amount, err := trn.AmountMinor()
			if err != nil {
				return fmt.Errorf("recorded amount unparsable: %w", err)
			}
			if err := users.UpdateBalance(ctx, user.ID, user.Balance+amount); err != nil {
				return err
			}
			log.Info("card transaction settled, balance credited",
				"transactionID", trn.ID, "amount", amount)
		}

		// The latest verified status is persisted whether or not the balance
		// moved, so replays and late failures stay observable.
		return transactions.UpdateStatus(ctx, trn.ID, status)
	})
}

// cardCreditApplies gates the credit: reference and currency must match the
// local record, the verified amount must cover the recorded amount, the
// verified status must be successful, and the transaction must not have been
// settled by an earlier delivery.
func (s *Service) cardCreditApplies(trn *domain.Transaction, verified *gateway.VerifyResponse) bool {
	if trn.Settled() {
		return false
	}
	if verified.Data.TxRef != trn.Reference || verified.Data.Currency != trn.Currency {
		return false
	}
	if domain.StatusFromGateway(verified.Data.Status) != domain.StatusSuccessful {
		return false
	}
	recorded, err := trn.AmountMinor()
	if err != nil {
		return false
	}
	verifiedAmount, err := minor(verified.Data.Amount.String())
	if err != nil {
		return false
	}
	return verifiedAmount >= recorded
}

// settleTransfer debits the user for a completed withdrawal transfer. This is
// where withdrawal debits take effect; initiation only checked the balance.
func (s *Service) settleTransfer(ctx context.Context, id int64, log *slog.Logger) error {
	verified, err := s.gw.GetTransfer(ctx, id)
	if err != nil {
		return fmt.Errorf("transfer lookup: %w", err)
	}

	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}

		trn, err := transactions.GetByIDForUpdate(ctx, verified.Data.ID)
		if errors.Is(err, domain.ErrTransactionNotFound) {
			log.Warn("webhook for unknown transfer, discarding")
			return nil
		}
		if err != nil {
			return err
		}

		status := domain.StatusFromGateway(verified.Data.Status)
		if verified.Data.Reference == trn.Reference && status == domain.StatusSuccessful && !trn.Settled() {
			user, err := users.GetByIDForUpdate(ctx, trn.UserID)
			if err != nil {
				return err
			}
			amount, err := trn.AmountMinor()
			if err != nil {
				return fmt.Errorf("recorded amount unparsable: %w", err)
			}
			if err := users.UpdateBalance(ctx, user.ID, user.Balance-amount); err != nil {
				return err
			}
			log.Info("transfer settled, balance debited",
				"transactionID", trn.ID, "amount", amount)
		}

		return transactions.UpdateStatus(ctx, trn.ID, status)
	})
}

// minor parses a gateway decimal-string amount into minor units, truncating
// fractions the same way Transaction.AmountMinor does.
func minor(s string) (int64, error) {
	t := domain.Transaction{Amount: s}
	return t.AmountMinor()
}
