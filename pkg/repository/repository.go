// Package repository defines the persistence contracts the services depend
// on. Implementations live in infra/repository; the UnitOfWork guarantees
// that every multi-write operation (balance mutation plus its transaction
// row) commits or rolls back as one atomic unit.
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/nokolie/kudiwallet/pkg/domain"
)

// UserRepository provides access to user records.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// GetByIDForUpdate acquires a row-level lock on the user for the duration
	// of the enclosing unit of work. Balance mutations must go through it.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	UpdateBalance(ctx context.Context, id uuid.UUID, balance int64) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TransactionRepository provides access to the money-movement ledger.
// Transactions are never deleted.
type TransactionRepository interface {
	Create(ctx context.Context, t *domain.Transaction) error
	// Upsert creates the transaction or, when a row with the same id already
	// exists, updates its mutable fields (gateway-driven status re-application).
	Upsert(ctx context.Context, t *domain.Transaction) error
	UpdateStatus(ctx context.Context, id int64, status domain.TransactionStatus) error
	GetByID(ctx context.Context, id int64) (*domain.Transaction, error)
	// GetByIDForUpdate locks the transaction row so concurrent webhook
	// redeliveries for the same id serialize.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Transaction, error)
	GetByIDForUser(ctx context.Context, id int64, userID uuid.UUID) (*domain.Transaction, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]domain.Transaction, int64, error)
}

// BeneficiaryRepository provides access to saved withdrawal destinations.
type BeneficiaryRepository interface {
	Create(ctx context.Context, b *domain.Beneficiary) error
	GetByIDForUser(ctx context.Context, id int64, userID uuid.UUID) (*domain.Beneficiary, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]domain.Beneficiary, int64, error)
	Delete(ctx context.Context, id int64) error
}

// UnitOfWork provides transaction boundary and repository access in one
// abstraction. Repositories obtained inside Do share the DB transaction, so
// all reads and writes of one settlement happen under a single atomic unit.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error
	UserRepository() (UserRepository, error)
	TransactionRepository() (TransactionRepository, error)
	BeneficiaryRepository() (BeneficiaryRepository, error)
}
