package impl

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"storefront/internal/domain"
	"storefront/internal/dto"
	"storefront/internal/mail"
	"storefront/internal/observability/metrics"
	"storefront/internal/service"
	"storefront/internal/store"
)

type AuthServiceImpl struct {
	Store           dataStore
	Tokens          service.TokenService
	Mailer          mail.Mailer
	ConfirmationTTL time.Duration
	BaseURL         string

	now func() time.Time
}

func NewAuthServiceImpl(st *store.Store, tokens service.TokenService, mailer mail.Mailer, confirmationTTL time.Duration, baseURL string) *AuthServiceImpl {
	return &AuthServiceImpl{
		Store:           gormStoreAdapter{store: st},
		Tokens:          tokens,
		Mailer:          mailer,
		ConfirmationTTL: confirmationTTL,
		BaseURL:         baseURL,
		now:             time.Now,
	}
}

func (a *AuthServiceImpl) Register(ctx context.Context, r dto.RegisterRequest) (*domain.User, error) {
	result := "success"
	defer func() {
		metrics.RegistrationsTotal.WithLabelValues(result).Inc()
	}()

	if r.Username == "" || r.Password == "" || r.Email == "" {
		result = "failure"
		return nil, ErrEmptyCredential
	}
	if !strings.ContainsRune(r.Email, '@') {
		result = "failure"
		return nil, ErrInvalidEmail
	}

	var (
		user *domain.User
		rec  *domain.Confirmation
	)
	err := a.Store.WithTx(ctx, func(tx storeTx) error {
		if _, err := tx.Users().GetByUsername(ctx, r.Username); err == nil {
			return domain.ErrUsernameExists
		} else if !errors.Is(err, store.ErrRecordNotFound) {
			return err
		}
		if _, err := tx.Users().GetByEmail(ctx, r.Email); err == nil {
			return domain.ErrEmailExists
		} else if !errors.Is(err, store.ErrRecordNotFound) {
			return err
		}

		now := a.now().UTC()
		user = &domain.User{
			Username:  r.Username,
			Password:  r.Password,
			Email:     r.Email,
			Activated: false,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Users().Create(ctx, user); err != nil {
			return err
		}

		rec = newConfirmation(user.ID, now, a.ConfirmationTTL)
		return tx.Confirmations().Create(ctx, rec)
	})
	if err != nil {
		result = "failure"
		return nil, err
	}

	// Email delivery sits outside the transaction; on failure the user row is
	// deleted so registration stays all-or-nothing.
	if err := sendConfirmation(ctx, a.Mailer, user, rec, a.BaseURL); err != nil {
		result = "failure"
		if delErr := a.Store.Users().Delete(ctx, user.ID); delErr != nil {
			slog.Error("compensating user delete failed", "user_id", user.ID, "error", delErr)
		}
		return nil, err
	}

	slog.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

func (a *AuthServiceImpl) Login(ctx context.Context, r dto.LoginRequest) (*dto.TokenPairResponse, error) {
	result := "success"
	defer func() {
		metrics.LoginsTotal.WithLabelValues(result).Inc()
	}()

	if r.Username == "" || r.Password == "" {
		result = "failure"
		return nil, ErrEmptyCredential
	}

	user, err := a.Store.Users().GetByUsername(ctx, r.Username)
	if err != nil {
		result = "failure"
		return nil, domain.ErrInvalidCredentials // don't leak whether the user exists
	}
	if subtle.ConstantTimeCompare([]byte(user.Password), []byte(r.Password)) != 1 {
		result = "failure"
		return nil, domain.ErrInvalidCredentials
	}
	if !user.Activated {
		result = "failure"
		return nil, fmt.Errorf("%w: %s", domain.ErrNotConfirmed, user.Username)
	}

	access, err := a.Tokens.IssueAccess(ctx, user.ID, true)
	if err != nil {
		result = "failure"
		return nil, err
	}
	refresh, err := a.Tokens.IssueRefresh(ctx, user.ID)
	if err != nil {
		result = "failure"
		return nil, err
	}

	metrics.TokensIssuedTotal.WithLabelValues("login", "success").Inc()
	slog.Info("user logged in", "user_id", user.ID)
	return &dto.TokenPairResponse{AccessToken: access, RefreshToken: refresh}, nil
}

// Logout blacklists the presented access token's jti. The paired refresh
// token is deliberately left alone.
func (a *AuthServiceImpl) Logout(ctx context.Context, claims *service.Claims) error {
	if err := a.Tokens.Revoke(ctx, claims); err != nil {
		return err
	}
	slog.Info("user logged out", "user_id", claims.UserID, "jti", claims.JTI)
	return nil
}
