package service

import (
	"context"

	"storefront/internal/domain"
)

type ConfirmationService interface {
	// Confirm activates the user behind a confirmation id. An expired,
	// unconfirmed record is superseded: a replacement record is created and
	// emailed, and ErrConfirmationExpired is returned.
	Confirm(ctx context.Context, confirmationID string) (*domain.User, error)
	// Resend force-expires any outstanding confirmation and emails a new one.
	Resend(ctx context.Context, userID uint) error
	LatestForUser(ctx context.Context, userID uint) (*domain.Confirmation, error)
}
