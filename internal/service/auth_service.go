package service

import (
	"context"

	"storefront/internal/domain"
	"storefront/internal/dto"
)

type AuthService interface {
	// Register creates the user and its first confirmation record, then sends
	// the confirmation email. Either both the user and a deliverable
	// confirmation exist afterwards, or neither does.
	Register(ctx context.Context, r dto.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, r dto.LoginRequest) (*dto.TokenPairResponse, error)
	// Logout revokes the presented access token only; the paired refresh
	// token stays usable until its own expiry.
	Logout(ctx context.Context, claims *Claims) error
}
