// Package user implements profile management for wallet holders.
package user

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nokolie/kudiwallet/pkg/domain"
	"github.com/nokolie/kudiwallet/pkg/repository"
)

// Service provides user profile operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a user Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// UpdateInput carries the optional profile fields of a partial update.
type UpdateInput struct {
	Email     *string
	FirstName *string
	LastName  *string
	Phone     *string
}

// Get returns the user by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (u *domain.User, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = users.GetByID(ctx, id)
		return err
	})
	return u, err
}

// Update applies the non-nil fields of in to the user's profile. A changed
// email must not collide with another account.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (u *domain.User, err error) {
	log := s.logger.With("context", "Update", "userID", id)
	log.Debug("Update called")

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if in.Email != nil && *in.Email != u.Email {
			other, err := users.GetByEmail(ctx, *in.Email)
			if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
				return err
			}
			if other != nil {
				return domain.ErrEmailTaken
			}
			u.Email = *in.Email
		}
		if in.FirstName != nil {
			u.FirstName = *in.FirstName
		}
		if in.LastName != nil {
			u.LastName = *in.LastName
		}
		if in.Phone != nil {
			u.Phone = *in.Phone
		}
		return users.Update(ctx, u)
	})
	if err != nil {
		log.Error("Update failed", "error", err)
		return nil, err
	}
	log.Info("Update successful")
	return u, nil
}

// Delete removes the user. Beneficiaries cascade at the schema level;
// transactions are historical and retained.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	log := s.logger.With("context", "Delete", "userID", id)
	log.Debug("Delete called")

	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		return users.Delete(ctx, id)
	})
	if err != nil {
		log.Error("Delete failed", "error", err)
		return err
	}
	log.Info("Delete successful")
	return nil
}
