// Package beneficiary manages saved withdrawal destinations. A beneficiary
// exists locally only while the gateway-side registration exists: creation
// persists after the gateway accepted it, deletion removes the gateway record
// first and keeps the local row when that fails.
package beneficiary

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nokolie/kudiwallet/pkg/domain"
	"github.com/nokolie/kudiwallet/pkg/gateway"
	"github.com/nokolie/kudiwallet/pkg/repository"
)

// Service provides beneficiary operations.
type Service struct {
	uow    repository.UnitOfWork
	gw     gateway.Client
	logger *slog.Logger
}

// New creates a beneficiary Service.
func New(uow repository.UnitOfWork, gw gateway.Client, logger *slog.Logger) *Service {
	return &Service{uow: uow, gw: gw, logger: logger}
}

// CreateInput carries a validated beneficiary registration.
type CreateInput struct {
	AccountNumber   string
	BankCode        string
	BankName        string
	BeneficiaryName string
	Currency        string
}

// Create registers the destination with the gateway and persists the local
// record with the gateway-assigned id.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, in CreateInput) (*domain.Beneficiary, error) {
	log := s.logger.With("context", "Create", "userID", userID)
	log.Debug("Create called", "bankCode", in.BankCode)

	currency := in.Currency
	if currency == "" {
		currency = "NGN"
	}

	res, err := s.gw.CreateBeneficiary(ctx, gateway.BeneficiaryRequest{
		AccountNumber:   in.AccountNumber,
		AccountBank:     in.BankCode,
		BankName:        in.BankName,
		BeneficiaryName: in.BeneficiaryName,
		Currency:        currency,
	})
	if err != nil {
		log.Error("Create gateway registration failed", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrGateway, err)
	}
	if res.Status != gateway.StatusSuccess {
		log.Error("Create gateway registration rejected", "status", res.Status, "message", res.Message)
		return nil, fmt.Errorf("%w: %s", domain.ErrGateway, res.Message)
	}

	b := &domain.Beneficiary{
		ID:              res.Data.ID,
		AccountNumber:   res.Data.AccountNumber,
		BankCode:        res.Data.BankCode,
		BankName:        res.Data.BankName,
		BeneficiaryName: res.Data.FullName,
		Currency:        currency,
		UserID:          userID,
	}
	if err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		beneficiaries, err := uow.BeneficiaryRepository()
		if err != nil {
			return err
		}
		return beneficiaries.Create(ctx, b)
	}); err != nil {
		log.Error("Create local persist failed", "beneficiaryID", b.ID, "error", err)
		return nil, err
	}
	log.Info("Create successful", "beneficiaryID", b.ID)
	return b, nil
}

// List returns a page of the user's beneficiaries, newest first.
func (s *Service) List(ctx context.Context, userID uuid.UUID, page, limit int) (items []domain.Beneficiary, total int64, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		beneficiaries, err := uow.BeneficiaryRepository()
		if err != nil {
			return err
		}
		items, total, err = beneficiaries.ListByUser(ctx, userID, page, limit)
		return err
	})
	return items, total, err
}

// Get returns one of the user's beneficiaries by id.
func (s *Service) Get(ctx context.Context, userID uuid.UUID, id int64) (b *domain.Beneficiary, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		beneficiaries, err := uow.BeneficiaryRepository()
		if err != nil {
			return err
		}
		b, err = beneficiaries.GetByIDForUser(ctx, id, userID)
		return err
	})
	return b, err
}

// Delete removes the beneficiary. The gateway-side record is deleted first;
// the local row stays intact unless the gateway confirmed the deletion.
func (s *Service) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	log := s.logger.With("context", "Delete", "userID", userID, "beneficiaryID", id)
	log.Debug("Delete called")

	var b *domain.Beneficiary
	if err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		beneficiaries, err := uow.BeneficiaryRepository()
		if err != nil {
			return err
		}
		b, err = beneficiaries.GetByIDForUser(ctx, id, userID)
		return err
	}); err != nil {
		return err
	}

	if err := s.gw.DeleteBeneficiary(ctx, b.ID); err != nil {
		log.Error("Delete gateway call failed, keeping local record", "error", err)
		return fmt.Errorf("%w: %w", domain.ErrGateway, err)
	}

	if err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		beneficiaries, err := uow.BeneficiaryRepository()
		if err != nil {
			return err
		}
		return beneficiaries.Delete(ctx, b.ID)
	}); err != nil {
		log.Error("Delete local removal failed", "error", err)
		return err
	}
	log.Info("Delete successful")
	return nil
}
