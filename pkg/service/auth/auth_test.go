package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nokolie/kudiwallet/config"
	"github.com/nokolie/kudiwallet/pkg/domain"
	"github.com/nokolie/kudiwallet/pkg/service/auth"
	"github.com/nokolie/kudiwallet/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(uow *testutils.MemoryUoW) *auth.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return auth.New(uow, config.JwtConfig{Secret: "test-secret", Expiry: time.Hour}, logger)
}

func TestRegisterAndLogin(t *testing.T) {
	uow := testutils.NewMemoryUoW()
	svc := newService(uow)

	u, token, err := svc.Register(context.Background(), auth.RegisterInput{
		Email:     "ada@example.com",
		Password:  "correct horse",
		FirstName: "Ada",
		LastName:  "Obi",
		Phone:     "08012345678",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Zero(t, u.Balance)
	assert.NotEqual(t, "correct horse", u.Password, "password must be stored hashed")

	logged, token2, err := svc.Login(context.Background(), "ada@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)
	assert.NotEmpty(t, token2)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	uow := testutils.NewMemoryUoW()
	svc := newService(uow)

	in := auth.RegisterInput{
		Email:     "ada@example.com",
		Password:  "correct horse",
		FirstName: "Ada",
		LastName:  "Obi",
		Phone:     "08012345678",
	}
	_, _, err := svc.Register(context.Background(), in)
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	uow := testutils.NewMemoryUoW()
	svc := newService(uow)

	_, _, err := svc.Register(context.Background(), auth.RegisterInput{
		Email:     "ada@example.com",
		Password:  "correct horse",
		FirstName: "Ada",
		LastName:  "Obi",
		Phone:     "08012345678",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "ada@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newService(testutils.NewMemoryUoW())
	_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestTokenRoundTrip(t *testing.T) {
	uow := testutils.NewMemoryUoW()
	svc := newService(uow)

	u, tokenString, err := svc.Register(context.Background(), auth.RegisterInput{
		Email:     "ada@example.com",
		Password:  "correct horse",
		FirstName: "Ada",
		LastName:  "Obi",
		Phone:     "08012345678",
	})
	require.NoError(t, err)

	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	id, err := svc.CurrentUserID(parsed)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)

	resolved, err := svc.CurrentUser(context.Background(), parsed)
	require.NoError(t, err)
	assert.Equal(t, u.Email, resolved.Email)
}
