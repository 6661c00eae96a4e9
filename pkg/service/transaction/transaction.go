// Package transaction exposes the read side of the money-movement ledger.
package transaction

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nokolie/kudiwallet/pkg/domain"
	"github.com/nokolie/kudiwallet/pkg/repository"
)

// Service provides transaction history queries.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a transaction Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// List returns a page of the user's transactions, newest first.
func (s *Service) List(ctx context.Context, userID uuid.UUID, page, limit int) (items []domain.Transaction, total int64, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		items, total, err = transactions.ListByUser(ctx, userID, page, limit)
		return err
	})
	return items, total, err
}

// Get returns one of the user's transactions by id.
func (s *Service) Get(ctx context.Context, userID uuid.UUID, id int64) (t *domain.Transaction, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		t, err = transactions.GetByIDForUser(ctx, id, userID)
		return err
	})
	return t, err
}
