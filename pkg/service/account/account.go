// Package account implements the money-movement orchestrator: it translates
// user-initiated payment requests into gateway calls and reconciles the
// results into the local ledger and user balances.
//
// Balance invariants enforced here:
//   - a balance never changes without a Transaction row recording the delta;
//   - every multi-write (both balances plus the ledger row of an in-app
//     transfer) runs inside one unit of work with the affected user rows
//     locked FOR UPDATE.
package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nokolie/kudiwallet/pkg/domain"
	"github.com/nokolie/kudiwallet/pkg/gateway"
	"github.com/nokolie/kudiwallet/pkg/reference"
	"github.com/nokolie/kudiwallet/pkg/repository"
)

// Service coordinates gateway calls with local transaction and balance state.
type Service struct {
	uow      repository.UnitOfWork
	gw       gateway.Client
	currency string
	logger   *slog.Logger
}

// New creates an account Service. The gateway client is injected fully
// constructed; no credentials are read at call time.
func New(uow repository.UnitOfWork, gw gateway.Client, currency string, logger *slog.Logger) *Service {
	return &Service{uow: uow, gw: gw, currency: currency, logger: logger}
}

// Balance returns the user's current balance in minor units.
func (s *Service) Balance(ctx context.Context, userID uuid.UUID) (balance int64, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err := users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		balance = u.Balance
		return nil
	})
	return balance, err
}

// CardChargeInput carries the validated card charge request.
type CardChargeInput struct {
	Amount      string
	CardNumber  string
	CVV         string
	ExpiryMonth string
	ExpiryYear  string
	CardPin     string
	ClientIP    string
}

// CardChargeResult tells the caller how the charge proceeded. For pin-mode
// charges the OTP step is still outstanding: the caller must follow up with
// ValidateCharge using the flw_ref from Data. For redirect-mode charges the
// caller must send the cardholder to RedirectURL; no local state exists yet.
type CardChargeResult struct {
	Mode        string              `json:"mode"`
	Message     string              `json:"message"`
	RedirectURL string              `json:"redirect_url,omitempty"`
	Data        *gateway.ChargeData `json:"data,omitempty"`
}

// InitializeCard starts a card charge with a fresh CCREF_ reference. When the
// gateway demands pin authorization the charge is re-submitted with the
// supplied PIN and the resulting transaction is recorded pending OTP
// validation. When it demands redirect authorization the redirect URL is
// returned to the caller.
func (s *Service) InitializeCard(ctx context.Context, userID uuid.UUID, in CardChargeInput) (*CardChargeResult, error) {
	log := s.logger.With("context", "InitializeCard", "userID", userID)
	log.Debug("InitializeCard called")

	var user *domain.User
	if err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		user, err = users.GetByID(ctx, userID)
		return err
	}); err != nil {
		return nil, err
	}

	req := gateway.CardChargeRequest{
		Amount:      in.Amount,
		CardNumber:  in.CardNumber,
		CVV:         in.CVV,
		ExpiryMonth: in.ExpiryMonth,
		ExpiryYear:  in.ExpiryYear,
		Currency:    s.currency,
		Email:       user.Email,
		Phone:       user.Phone,
		FullName:    user.FullName(),
		ClientIP:    in.ClientIP,
		Narration:   "Card Transaction",
		TxRef:       reference.CardCharge(),
	}

	res, err := s.gw.ChargeCard(ctx, req)
	if err != nil {
		// No local state was touched; surface as a bad-gateway condition.
		log.Error("InitializeCard gateway charge failed", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrGateway, err)
	}

	switch res.Meta.Authorization.Mode {
	case gateway.AuthModePin:
		return s.completePinCharge(ctx, userID, req, res, in.CardPin, log)
	case gateway.AuthModeRedirect:
		log.Info("InitializeCard requires redirect authorization")
		return &CardChargeResult{
			Mode:        gateway.AuthModeRedirect,
			Message:     "Complete the charge by visiting the authorization URL.",
			RedirectURL: res.Meta.Authorization.Redirect,
		}, nil
	default:
		log.Warn("InitializeCard unexpected authorization mode", "mode", res.Meta.Authorization.Mode)
		return &CardChargeResult{
			Mode:    res.Meta.Authorization.Mode,
			Message: res.Message,
			Data:    &res.Data,
		}, nil
	}
}

// completePinCharge re-submits the charge with the PIN as the second
// authorization step and records the resulting transaction. The gateway does
// not roll back the first charge step if this one fails, so the failure path
// persists a pending transaction from the first response (when the gateway
// already assigned an id) to keep the dangling charge inspectable.
func (s *Service) completePinCharge(
	ctx context.Context,
	userID uuid.UUID,
	req gateway.CardChargeRequest,
	first *gateway.ChargeResponse,
	pin string,
	log *slog.Logger,
) (*CardChargeResult, error) {
	req.Authorization = &gateway.Authorization{Mode: gateway.AuthModePin, Pin: pin}

	recall, err := s.gw.ChargeCard(ctx, req)
	if err != nil {
		log.Error("InitializeCard pin authorization failed",
			"reference", req.TxRef, "error", err)
		if first.Data.ID != 0 {
			trn := &domain.Transaction{
				ID:        first.Data.ID,
				Reference: req.TxRef,
				Amount:    req.Amount,
				Currency:  req.Currency,
				Status:    domain.StatusPending,
				Narration: req.Narration,
				Type:      domain.TypeCardTransaction,
				UserID:    userID,
			}
			if perr := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
				transactions, rerr := uow.TransactionRepository()
				if rerr != nil {
					return rerr
				}
				return transactions.Upsert(ctx, trn)
			}); perr != nil {
				log.Error("InitializeCard dangling charge persist failed", "error", perr)
			}
		}
		return nil, fmt.Errorf("%w: pin authorization for %s: %w", domain.ErrGateway, req.TxRef, err)
	}

	if recall.Status == gateway.StatusSuccess {
		trn := &domain.Transaction{
			ID:        recall.Data.ID,
			Reference: recall.Data.TxRef,
			Amount:    recall.Data.Amount.String(),
			Currency:  recall.Data.Currency,
			Status:    domain.StatusFromGateway(recall.Data.Status),
			Narration: recall.Data.Narration,
			Type:      domain.TypeCardTransaction,
			UserID:    userID,
		}
		if err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
			transactions, err := uow.TransactionRepository()
			if err != nil {
				return err
			}
			return transactions.Create(ctx, trn)
		}); err != nil {
			log.Error("InitializeCard transaction persist failed", "error", err)
			return nil, err
		}
		log.Info("InitializeCard pin charge recorded",
			"transactionID", trn.ID, "reference", trn.Reference, "status", trn.Status)
	}

	return &CardChargeResult{
		Mode: gateway.AuthModePin,
		Message: fmt.Sprintf(
			"Successfully initialized charge. %s. Use the 'flw_ref' key to validate this charge.",
			recall.Data.ProcessorResponse,
		),
		Data: &recall.Data,
	}, nil
}

// ValidateCharge submits the OTP completing a pending pin-mode card charge
// and upserts the transaction's settlement status by gateway id. The final
// balance credit still arrives via the webhook reconciler.
func (s *Service) ValidateCharge(ctx context.Context, userID uuid.UUID, otp, flwRef string) (*gateway.ChargeData, error) {
	log := s.logger.With("context", "ValidateCharge", "userID", userID, "flwRef", flwRef)
	log.Debug("ValidateCharge called")

	res, err := s.gw.ValidateCharge(ctx, otp, flwRef)
	if err != nil {
		log.Error("ValidateCharge gateway call failed", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrGateway, err)
	}

	if res.Status == gateway.StatusSuccess {
		trn := &domain.Transaction{
			ID:        res.Data.ID,
			Reference: res.Data.TxRef,
			Amount:    res.Data.Amount.String(),
			Currency:  res.Data.Currency,
			Status:    domain.StatusFromGateway(res.Data.Status),
			Narration: res.Data.Narration,
			Type:      domain.TypeCardTransaction,
			UserID:    userID,
		}
		if err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
			transactions, err := uow.TransactionRepository()
			if err != nil {
				return err
			}
			return transactions.Upsert(ctx, trn)
		}); err != nil {
			log.Error("ValidateCharge transaction upsert failed", "error", err)
			return nil, err
		}
		log.Info("ValidateCharge recorded", "transactionID", trn.ID, "status", trn.Status)
	}
	return &res.Data, nil
}

// BankTransfer provisions a permanent bank-transfer instrument for funding
// the wallet and records the expected payment with the gateway's real
// settlement status; the webhook reconciler applies the credit when the
// transfer actually settles.
func (s *Service) BankTransfer(ctx context.Context, userID uuid.UUID, amount, clientIP string) (*gateway.BankTransferResponse, error) {
	log := s.logger.With("context", "BankTransfer", "userID", userID)
	log.Debug("BankTransfer called", "amount", amount)

	var user *domain.User
	if err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		var err2 error
		user, err2 = users.GetByID(ctx, userID)
		return err2
	}); err != nil {
		return nil, err
	}

	req := gateway.BankTransferRequest{
		Amount:      amount,
		Currency:    s.currency,
		Email:       user.Email,
		PhoneNumber: user.Phone,
		FullName:    user.FullName(),
		ClientIP:    clientIP,
		Narration:   "Bank Transfer",
		IsPermanent: true,
		TxRef:       reference.BankTransfer(),
	}

	res, err := s.gw.ChargeBankTransfer(ctx, req)
	if err != nil {
		log.Error("BankTransfer gateway call failed", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrGateway, err)
	}

	if res.Status == gateway.StatusSuccess {
		auth := res.Meta.Authorization
		currency := res.Meta.Currency
		if currency == "" {
			currency = s.currency
		}
		trn := &domain.Transaction{
			ID:        auth.ID,
			Reference: auth.TransferReference,
			Amount:    auth.TransferAmount.String(),
			Currency:  currency,
			Status:    domain.StatusFromGateway(auth.Status),
			Narration: auth.Narration,
			Type:      domain.TypeBankTransfer,
			UserID:    userID,
		}
		if err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
			transactions, err := uow.TransactionRepository()
			if err != nil {
				return err
			}
			return transactions.Create(ctx, trn)
		}); err != nil {
			log.Error("BankTransfer transaction persist failed", "error", err)
			return nil, err
		}
		log.Info("BankTransfer recorded",
			"transactionID", trn.ID, "reference", trn.Reference, "status", trn.Status)
	}
	return res, nil
}
