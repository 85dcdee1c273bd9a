package service

import (
	"context"
	"time"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims is the verified content of a bearer token.
type Claims struct {
	UserID    uint
	JTI       string
	Fresh     bool
	Type      string
	ExpiresAt time.Time
}

type TokenService interface {
	IssueAccess(ctx context.Context, userID uint, fresh bool) (string, error)
	IssueRefresh(ctx context.Context, userID uint) (string, error)
	// Refresh exchanges a valid refresh token for a new, never-fresh access
	// token. The refresh token itself is not rotated.
	Refresh(ctx context.Context, refreshToken string) (string, error)
	// Verify checks signature, expiry and the revocation registry.
	Verify(ctx context.Context, raw string) (*Claims, error)
	Revoke(ctx context.Context, claims *Claims) error
}
