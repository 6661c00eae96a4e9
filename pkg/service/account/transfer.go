package account

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/nokolie/kudiwallet/pkg/domain"
	"github.com/nokolie/kudiwallet/pkg/gateway"
	"github.com/nokolie/kudiwallet/pkg/reference"
	"github.com/nokolie/kudiwallet/pkg/repository"
)

// FundUserResult reports a completed in-app transfer.
type FundUserResult struct {
	RecipientName string `json:"recipient_name"`
	Balance       int64  `json:"balance"`
}

// FundUser moves amount from the sender to the recipient looked up by email.
// Pure local operation: both balance updates and the single ledger row commit
// in one unit of work, with both user rows locked FOR UPDATE in a
// deterministic order so concurrent transfers cannot deadlock or lose
// updates.
func (s *Service) FundUser(ctx context.Context, senderID uuid.UUID, recipientEmail, narration string, amount int64) (*FundUserResult, error) {
	log := s.logger.With("context", "FundUser", "senderID", senderID, "recipientEmail", recipientEmail)
	log.Debug("FundUser called", "amount", amount)

	if amount <= 0 {
		return nil, fmt.Errorf("transfer amount must be positive, got %d", amount)
	}

	var result *FundUserResult
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}

		recipient, err := users.GetByEmail(ctx, recipientEmail)
		if err != nil {
			return err
		}
		if recipient.ID == senderID {
			return fmt.Errorf("cannot transfer to your own wallet")
		}

		sender, recipient, err := lockPair(ctx, users, senderID, recipient.ID)
		if err != nil {
			return err
		}

		if sender.Balance < amount {
			return &domain.InsufficientBalanceError{Balance: sender.Balance}
		}

		if err := users.UpdateBalance(ctx, sender.ID, sender.Balance-amount); err != nil {
			return err
		}
		if err := users.UpdateBalance(ctx, recipient.ID, recipient.Balance+amount); err != nil {
			return err
		}

		trn := &domain.Transaction{
			ID:        reference.LocalTransactionID(),
			Reference: reference.InApp(),
			Amount:    strconv.FormatInt(amount, 10),
			Currency:  s.currency,
			Status:    domain.StatusSuccessful,
			Narration: narration,
			Type:      domain.TypeInAppTransfer,
			Recipient: recipient.ID.String(),
			UserID:    sender.ID,
		}
		if err := transactions.Create(ctx, trn); err != nil {
			return err
		}

		result = &FundUserResult{
			RecipientName: recipient.FullName(),
			Balance:       sender.Balance - amount,
		}
		return nil
	})
	if err != nil {
		log.Error("FundUser failed", "error", err)
		return nil, err
	}
	log.Info("FundUser successful", "amount", amount, "balance", result.Balance)
	return result, nil
}

// lockPair locks two user rows FOR UPDATE in ascending id order and returns
// them as (first, second) matching the argument order.
func lockPair(ctx context.Context, users repository.UserRepository, firstID, secondID uuid.UUID) (*domain.User, *domain.User, error) {
	a, b := firstID, secondID
	swapped := false
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
		swapped = true
	}
	ua, err := users.GetByIDForUpdate(ctx, a)
	if err != nil {
		return nil, nil, err
	}
	ub, err := users.GetByIDForUpdate(ctx, b)
	if err != nil {
		return nil, nil, err
	}
	if swapped {
		return ub, ua, nil
	}
	return ua, ub, nil
}

// WithdrawInput carries a validated beneficiary payout request.
type WithdrawInput struct {
	BeneficiaryID   int64
	Amount          int64
	Narration       string
	BeneficiaryName string
}

// Withdraw initiates a payout to one of the user's saved beneficiaries. The
// balance is checked up front and the gateway transfer recorded pending; the
// debit itself is applied by the webhook reconciler when the gateway reports
// the transfer completed.
func (s *Service) Withdraw(ctx context.Context, userID uuid.UUID, in WithdrawInput) (*gateway.TransferData, error) {
	log := s.logger.With("context", "Withdraw", "userID", userID, "beneficiaryID", in.BeneficiaryID)
	log.Debug("Withdraw called", "amount", in.Amount)

	var (
		user        *domain.User
		beneficiary *domain.Beneficiary
	)
	if err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		beneficiaries, err := uow.BeneficiaryRepository()
		if err != nil {
			return err
		}
		user, err = users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if user.Balance < in.Amount {
			return &domain.InsufficientBalanceError{Balance: user.Balance}
		}
		beneficiary, err = beneficiaries.GetByIDForUser(ctx, in.BeneficiaryID, userID)
		return err
	}); err != nil {
		log.Error("Withdraw rejected", "error", err)
		return nil, err
	}

	name := in.BeneficiaryName
	if name == "" {
		name = beneficiary.BeneficiaryName
	}
	req := gateway.TransferRequest{
		Amount:          strconv.FormatInt(in.Amount, 10),
		AccountBank:     beneficiary.BankCode,
		AccountNumber:   beneficiary.AccountNumber,
		Currency:        beneficiary.Currency,
		Narration:       in.Narration,
		BeneficiaryName: name,
		Reference:       reference.Withdrawal(),
		Meta: gateway.TransferMeta{
			FirstName:    user.FirstName,
			LastName:     user.LastName,
			Email:        user.Email,
			MobileNumber: user.Phone,
		},
	}

	res, err := s.gw.InitiateTransfer(ctx, req)
	if err != nil {
		log.Error("Withdraw gateway transfer failed", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrGateway, err)
	}

	if res.Status == gateway.StatusSuccess {
		trn := &domain.Transaction{
			ID:        res.Data.ID,
			Reference: res.Data.Reference,
			Amount:    res.Data.Amount.String(),
			Currency:  beneficiary.Currency,
			Status:    domain.StatusFromGateway(res.Data.Status),
			Narration: res.Data.Narration,
			Type:      domain.TypeWithdrawal,
			Recipient: strconv.FormatInt(beneficiary.ID, 10),
			UserID:    userID,
		}
		if err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
			transactions, err := uow.TransactionRepository()
			if err != nil {
				return err
			}
			return transactions.Create(ctx, trn)
		}); err != nil {
			log.Error("Withdraw transaction persist failed", "error", err)
			return nil, err
		}
		log.Info("Withdraw recorded",
			"transactionID", trn.ID, "reference", trn.Reference, "status", trn.Status)
	}
	return &res.Data, nil
}
