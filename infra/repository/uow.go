package repository

import (
	"context"
	"errors"

	"github.com/nokolie/kudiwallet/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides transaction boundary and repository access in one abstraction.
// Repositories handed out inside Do are bound to the transaction session, so
// every read and write of one operation shares a single atomic unit.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn inside a database transaction, providing a transaction-bound UoW.
// Nested calls reuse the ambient transaction instead of opening a new one.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if u.tx != nil {
		return fn(u)
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

func (u *UoW) session() (*gorm.DB, error) {
	if u.tx == nil {
		return nil, errors.New("repository access outside a unit of work")
	}
	return u.tx, nil
}

// UserRepository returns the user repository bound to the current transaction.
func (u *UoW) UserRepository() (repository.UserRepository, error) {
	tx, err := u.session()
	if err != nil {
		return nil, err
	}
	return NewUserRepository(tx), nil
}

// TransactionRepository returns the transaction repository bound to the
// current transaction.
func (u *UoW) TransactionRepository() (repository.TransactionRepository, error) {
	tx, err := u.session()
	if err != nil {
		return nil, err
	}
	return NewTransactionRepository(tx), nil
}

// BeneficiaryRepository returns the beneficiary repository bound to the
// current transaction.
func (u *UoW) BeneficiaryRepository() (repository.BeneficiaryRepository, error) {
	tx, err := u.session()
	if err != nil {
		return nil, err
	}
	return NewBeneficiaryRepository(tx), nil
}
