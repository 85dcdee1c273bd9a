package impl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"storefront/internal/domain"
	"storefront/internal/mail"
	"storefront/internal/observability/metrics"
	"storefront/internal/store"
)

type ConfirmationServiceImpl struct {
	Store           dataStore
	Mailer          mail.Mailer
	ConfirmationTTL time.Duration
	BaseURL         string

	now func() time.Time
}

func NewConfirmationServiceImpl(st *store.Store, mailer mail.Mailer, confirmationTTL time.Duration, baseURL string) *ConfirmationServiceImpl {
	return &ConfirmationServiceImpl{
		Store:           gormStoreAdapter{store: st},
		Mailer:          mailer,
		ConfirmationTTL: confirmationTTL,
		BaseURL:         baseURL,
		now:             time.Now,
	}
}

func (c *ConfirmationServiceImpl) Confirm(ctx context.Context, confirmationID string) (*domain.User, error) {
	rec, err := c.Store.Confirmations().GetByID(ctx, confirmationID)
	if err != nil {
		return nil, domain.ErrConfirmationNotFound
	}
	if rec.Confirmed {
		return nil, domain.ErrAlreadyConfirmed
	}

	user, err := c.Store.Users().GetByID(ctx, rec.UserID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	now := c.now().UTC()
	if rec.Expired(now) {
		// An expired link is superseded, never confirmed: issue a fresh
		// record and mail it again.
		if err := c.reissue(ctx, user, now); err != nil {
			return nil, err
		}
		return nil, domain.ErrConfirmationExpired
	}

	err = c.Store.WithTx(ctx, func(tx storeTx) error {
		if err := tx.Confirmations().SetConfirmed(ctx, rec.ID); err != nil {
			return err
		}
		return tx.Users().SetActivated(ctx, rec.UserID)
	})
	if err != nil {
		return nil, err
	}

	user.Activated = true
	slog.Info("registration confirmed", "user_id", user.ID, "confirmation_id", rec.ID)
	return user, nil
}

func (c *ConfirmationServiceImpl) Resend(ctx context.Context, userID uint) error {
	user, err := c.Store.Users().GetByID(ctx, userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	now := c.now().UTC()
	latest, err := c.Store.Confirmations().LatestForUser(ctx, userID)
	switch {
	case err == nil:
		if latest.Confirmed {
			return domain.ErrAlreadyConfirmed
		}
		// Kill the outstanding link so only the newest one works.
		if !latest.Expired(now) {
			if err := c.Store.Confirmations().ForceExpire(ctx, latest.ID, now); err != nil {
				return err
			}
		}
	case errors.Is(err, store.ErrRecordNotFound):
		// No outstanding record; just issue one.
	default:
		return err
	}

	return c.reissue(ctx, user, now)
}

func (c *ConfirmationServiceImpl) LatestForUser(ctx context.Context, userID uint) (*domain.Confirmation, error) {
	if _, err := c.Store.Users().GetByID(ctx, userID); err != nil {
		return nil, domain.ErrUserNotFound
	}
	rec, err := c.Store.Confirmations().LatestForUser(ctx, userID)
	if err != nil {
		return nil, domain.ErrConfirmationNotFound
	}
	return rec, nil
}

func (c *ConfirmationServiceImpl) reissue(ctx context.Context, user *domain.User, now time.Time) error {
	rec := newConfirmation(user.ID, now, c.ConfirmationTTL)
	if err := c.Store.Confirmations().Create(ctx, rec); err != nil {
		return err
	}
	return sendConfirmation(ctx, c.Mailer, user, rec, c.BaseURL)
}

func newConfirmation(userID uint, now time.Time, ttl time.Duration) *domain.Confirmation {
	return &domain.Confirmation{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpireAt:  now.Add(ttl),
		Confirmed: false,
		CreatedAt: now,
	}
}

func sendConfirmation(ctx context.Context, mailer mail.Mailer, user *domain.User, rec *domain.Confirmation, baseURL string) error {
	link := fmt.Sprintf("%s/user_confirmation/%s", baseURL, rec.ID)
	if err := mailer.SendConfirmation(ctx, user.Email, user.Username, link); err != nil {
		metrics.ConfirmationEmailsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.ConfirmationEmailsTotal.WithLabelValues("success").Inc()
	return nil
}
