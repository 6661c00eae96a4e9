// Package auth implements registration, login and bearer-token issuance.
// Tokens are HS256 JWTs carrying the user id and expire after the configured
// session lifetime (24 hours by default).
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/nokolie/kudiwallet/config"
	"github.com/nokolie/kudiwallet/pkg/domain"
	"github.com/nokolie/kudiwallet/pkg/repository"
)

// Service provides authentication operations backed by the user store.
type Service struct {
	uow    repository.UnitOfWork
	cfg    config.JwtConfig
	logger *slog.Logger
}

// New creates an auth Service.
func New(uow repository.UnitOfWork, cfg config.JwtConfig, logger *slog.Logger) *Service {
	return &Service{uow: uow, cfg: cfg, logger: logger}
}

// RegisterInput carries validated registration data.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// Register creates a user with a zero balance and returns it with a fresh
// token, mirroring login.
func (s *Service) Register(ctx context.Context, in RegisterInput) (u *domain.User, token string, err error) {
	log := s.logger.With("context", "Register", "email", in.Email)
	log.Debug("Register called")

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		existing, err := users.GetByEmail(ctx, in.Email)
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		if existing != nil {
			return domain.ErrEmailTaken
		}
		u, err = domain.NewUser(in.Email, in.Password, in.FirstName, in.LastName, in.Phone)
		if err != nil {
			return err
		}
		return users.Create(ctx, u)
	})
	if err != nil {
		log.Error("Register failed", "error", err)
		return nil, "", err
	}

	token, err = s.GenerateToken(u)
	if err != nil {
		log.Error("Register token issuance failed", "error", err)
		return nil, "", err
	}
	log.Info("Register successful", "userID", u.ID)
	return u, token, nil
}

// Login authenticates by email and password and issues a token.
func (s *Service) Login(ctx context.Context, email, password string) (u *domain.User, token string, err error) {
	log := s.logger.With("context", "Login", "email", email)
	log.Debug("Login called")

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = users.GetByEmail(ctx, email)
		return err
	})
	if err != nil || u == nil {
		log.Error("Login failed", "error", err)
		return nil, "", domain.ErrInvalidCredentials
	}
	if !u.CheckPassword(password) {
		log.Error("Login failed", "error", "password mismatch")
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err = s.GenerateToken(u)
	if err != nil {
		log.Error("Login token issuance failed", "error", err)
		return nil, "", err
	}
	log.Info("Login successful", "userID", u.ID)
	return u, token, nil
}

// GenerateToken signs an HS256 token for the user.
func (s *Service) GenerateToken(u *domain.User) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = u.ID.String()
	claims["email"] = u.Email
	claims["exp"] = time.Now().Add(s.cfg.Expiry).Unix()
	return token.SignedString([]byte(s.cfg.Secret))
}

// CurrentUserID extracts the authenticated user's id from a verified token.
func (s *Service) CurrentUserID(token *jwt.Token) (uuid.UUID, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, fmt.Errorf("unexpected claims type %T", token.Claims)
	}
	raw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, errors.New("token missing user_id claim")
	}
	return uuid.Parse(raw)
}

// CurrentUser resolves the authenticated user record from a verified token.
func (s *Service) CurrentUser(ctx context.Context, token *jwt.Token) (*domain.User, error) {
	id, err := s.CurrentUserID(token)
	if err != nil {
		return nil, err
	}
	var u *domain.User
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = users.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}
