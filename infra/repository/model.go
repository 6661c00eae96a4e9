// Package repository implements the persistence contracts on GORM/Postgres.
package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/nokolie/kudiwallet/pkg/domain"
)

// User represents a user record in the database.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Email     string    `gorm:"uniqueIndex;not null;size:255"`
	Password  string    `gorm:"not null"`
	FirstName string    `gorm:"size:255"`
	LastName  string    `gorm:"size:255"`
	Phone     string    `gorm:"size:32"`
	Balance   int64     `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// Transaction represents a money-movement ledger row. The primary key is the
// gateway-assigned transaction id (or a locally generated one for in-app
// transfers), so webhook redeliveries address the same row.
type Transaction struct {
	ID        int64     `gorm:"primary_key;autoIncrement:false"`
	Reference string    `gorm:"uniqueIndex;not null;size:64"`
	Amount    string    `gorm:"not null;size:32"`
	Currency  string    `gorm:"not null;size:8"`
	Status    string    `gorm:"not null;size:16"`
	Narration string    `gorm:"size:255"`
	Type      string    `gorm:"not null;size:32"`
	Recipient string    `gorm:"size:64"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}

// Beneficiary represents a saved withdrawal destination. The primary key is
// the gateway-assigned beneficiary id. Rows are removed with their owner.
type Beneficiary struct {
	ID              int64     `gorm:"primary_key;autoIncrement:false"`
	AccountNumber   string    `gorm:"not null;size:32"`
	BankCode        string    `gorm:"not null;size:16"`
	BankName        string    `gorm:"size:255"`
	BeneficiaryName string    `gorm:"size:255"`
	Currency        string    `gorm:"not null;size:8"`
	UserID          uuid.UUID `gorm:"type:uuid;index;not null"`
	User            *User     `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName specifies the table name for the Beneficiary model.
func (Beneficiary) TableName() string {
	return "beneficiaries"
}

func userToDomain(m *User) *domain.User {
	return &domain.User{
		ID:        m.ID,
		Email:     m.Email,
		Password:  m.Password,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Phone:     m.Phone,
		Balance:   m.Balance,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func userToModel(u *domain.User) *User {
	return &User{
		ID:        u.ID,
		Email:     u.Email,
		Password:  u.Password,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Balance:   u.Balance,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func transactionToDomain(m *Transaction) *domain.Transaction {
	return &domain.Transaction{
		ID:        m.ID,
		Reference: m.Reference,
		Amount:    m.Amount,
		Currency:  m.Currency,
		Status:    domain.TransactionStatus(m.Status),
		Narration: m.Narration,
		Type:      domain.TransactionType(m.Type),
		Recipient: m.Recipient,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func transactionToModel(t *domain.Transaction) *Transaction {
	return &Transaction{
		ID:        t.ID,
		Reference: t.Reference,
		Amount:    t.Amount,
		Currency:  t.Currency,
		Status:    string(t.Status),
		Narration: t.Narration,
		Type:      string(t.Type),
		Recipient: t.Recipient,
		UserID:    t.UserID,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func beneficiaryToDomain(m *Beneficiary) *domain.Beneficiary {
	return &domain.Beneficiary{
		ID:              m.ID,
		AccountNumber:   m.AccountNumber,
		BankCode:        m.BankCode,
		BankName:        m.BankName,
		BeneficiaryName: m.BeneficiaryName,
		Currency:        m.Currency,
		UserID:          m.UserID,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func beneficiaryToModel(b *domain.Beneficiary) *Beneficiary {
	return &Beneficiary{
		ID:              b.ID,
		AccountNumber:   b.AccountNumber,
		BankCode:        b.BankCode,
		BankName:        b.BankName,
		BeneficiaryName: b.BeneficiaryName,
		Currency:        b.Currency,
		UserID:          b.UserID,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
