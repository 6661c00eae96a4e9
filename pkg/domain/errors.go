package domain

import "errors"

var (
	// ErrInsufficientBalance rejects a transfer or withdrawal that exceeds the
	// sender's balance. Handlers disclose the current balance alongside it.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInvalidCredentials covers failed logins and wrong password checks.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken is returned when registration or a profile update collides
	// with an existing account's email.
	ErrEmailTaken = errors.New("email already registered")

	ErrUserNotFound        = errors.New("user not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrBeneficiaryNotFound = errors.New("beneficiary not found")

	// ErrDuplicateReference surfaces a unique-constraint violation on the
	// transaction reference column.
	ErrDuplicateReference = errors.New("duplicate transaction reference")

	// ErrGateway marks a failed outbound call to the payment gateway.
	// Handlers map it to 502 with the upstream detail sanitized.
	ErrGateway = errors.New("payment gateway error")
)

// InsufficientBalanceError carries the caller's current balance so the API
// can disclose it in the rejection body.
type InsufficientBalanceError struct {
	Balance int64
}

func (e *InsufficientBalanceError) Error() string { return ErrInsufficientBalance.Error() }

// Is makes errors.Is(err, ErrInsufficientBalance) match.
func (e *InsufficientBalanceError) Is(target error) bool { return target == ErrInsufficientBalance }
