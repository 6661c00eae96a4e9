// Package domain holds the core entities of the wallet: users, transactions
// and beneficiaries, together with the closed settlement-state set and the
// sentinel errors services map to HTTP responses at the edge.
package domain

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User is a wallet holder. Balance is kept in minor currency units and must
// never change without a Transaction row recording the delta.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser builds a user with a freshly hashed password and zero balance.
func NewUser(email, password, firstName, lastName, phone string) (*User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &User{
		ID:        uuid.New(),
		Email:     email,
		Password:  string(hashed),
		FirstName: firstName,
		LastName:  lastName,
		Phone:     phone,
	}, nil
}

// FullName is the display name sent to the payment gateway.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// CheckPassword compares a plain password against the stored bcrypt hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}
