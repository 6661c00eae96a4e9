package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/nokolie/kudiwallet/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestUserRepositoryCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := userRepository{db: db}

	u, err := domain.NewUser("ada@example.com", "password123", "Ada", "Obi", "08012345678")
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO "users" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.Create(context.Background(), u))

	mock.ExpectExec(`INSERT INTO "users" (.+) VALUES (.+)`).
		WillReturnError(errors.New("create error"))
	assert.Error(t, repo.Create(context.Background(), u))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryGetByEmailNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := userRepository{db: db}

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE email = (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}))

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepositoryGetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := userRepository{db: db}
	id := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "balance"}).
			AddRow(id.String(), "ada@example.com", int64(700)))

	u, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, int64(700), u.Balance)
}

func TestUserRepositoryUpdateBalance(t *testing.T) {
	db, mock := newMockDB(t)
	repo := userRepository{db: db}
	id := uuid.New()

	mock.ExpectExec(`UPDATE "users" SET (.+) WHERE id = (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateBalance(context.Background(), id, 900))

	mock.ExpectExec(`UPDATE "users" SET (.+) WHERE id = (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdateBalance(context.Background(), id, 900), domain.ErrUserNotFound)
}

func TestTransactionRepositoryCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := transactionRepository{db: db}

	trn := &domain.Transaction{
		ID:        77,
		Reference: "CCREF_deadbeef",
		Amount:    "500",
		Currency:  "NGN",
		Status:    domain.StatusPending,
		Type:      domain.TypeCardTransaction,
		UserID:    uuid.New(),
	}

	mock.ExpectExec(`INSERT INTO "transactions" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.Create(context.Background(), trn))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepositoryCreateDuplicateReference(t *testing.T) {
	db, mock := newMockDB(t)
	repo := transactionRepository{db: db}

	trn := &domain.Transaction{
		ID:        77,
		Reference: "CCREF_deadbeef",
		Amount:    "500",
		Currency:  "NGN",
		Status:    domain.StatusPending,
		Type:      domain.TypeCardTransaction,
		UserID:    uuid.New(),
	}

	// With TranslateError enabled the dialect turns a unique violation into
	// gorm.ErrDuplicatedKey, which Create maps to the domain sentinel.
	mock.ExpectExec(`INSERT INTO "transactions" (.+) VALUES (.+)`).
		WillReturnError(gorm.ErrDuplicatedKey)
	assert.ErrorIs(t, repo.Create(context.Background(), trn), domain.ErrDuplicateReference)
}

func TestTransactionRepositoryUpdateStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := transactionRepository{db: db}

	mock.ExpectExec(`UPDATE "transactions" SET (.+) WHERE id = (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateStatus(context.Background(), 77, domain.StatusSuccessful))

	mock.ExpectExec(`UPDATE "transactions" SET (.+) WHERE id = (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t,
		repo.UpdateStatus(context.Background(), 77, domain.StatusSuccessful),
		domain.ErrTransactionNotFound)
}

func TestTransactionRepositoryGetByIDForUpdateLocks(t *testing.T) {
	db, mock := newMockDB(t)
	repo := transactionRepository{db: db}
	userID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "transactions" WHERE id = (.+) FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "reference", "amount", "currency", "status", "type", "user_id"}).
			AddRow(int64(77), "CCREF_deadbeef", "500", "NGN", "pending", "Card Transaction", userID.String()))

	trn, err := repo.GetByIDForUpdate(context.Background(), 77)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, trn.Status)
	assert.Equal(t, userID, trn.UserID)
}

func TestBeneficiaryRepositoryDelete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := beneficiaryRepository{db: db}

	mock.ExpectExec(`DELETE FROM "beneficiaries" WHERE id = (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), 314))

	mock.ExpectExec(`DELETE FROM "beneficiaries" WHERE id = (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), 314), domain.ErrBeneficiaryNotFound)
}

func TestBeneficiaryRepositoryGetByIDForUserScoped(t *testing.T) {
	db, mock := newMockDB(t)
	repo := beneficiaryRepository{db: db}

	mock.ExpectQuery(`SELECT (.+) FROM "beneficiaries" WHERE id = (.+) AND user_id = (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByIDForUser(context.Background(), 314, uuid.New())
	assert.ErrorIs(t, err, domain.ErrBeneficiaryNotFound)
}
