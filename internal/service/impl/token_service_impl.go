package impl

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"storefront/internal/domain"
	"storefront/internal/observability/metrics"
	"storefront/internal/revocation"
	"storefront/internal/service"
)

type TokenConfig struct {
	Issuer     string
	AccessTTL  time.Duration // minutes scale
	RefreshTTL time.Duration // days scale
	SigningKey []byte        // HS256 secret
}

type tokenClaims struct {
	Fresh     bool   `json:"fresh"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

type TokenServiceImpl struct {
	cfg      TokenConfig
	registry revocation.Registry
	now      func() time.Time
}

func NewTokenServiceHS256(cfg TokenConfig, registry revocation.Registry) *TokenServiceImpl {
	return &TokenServiceImpl{cfg: cfg, registry: registry, now: time.Now}
}

func (t *TokenServiceImpl) IssueAccess(_ context.Context, userID uint, fresh bool) (string, error) {
	return t.sign(userID, service.TokenTypeAccess, fresh, t.cfg.AccessTTL)
}

func (t *TokenServiceImpl) IssueRefresh(_ context.Context, userID uint) (string, error) {
	return t.sign(userID, service.TokenTypeRefresh, false, t.cfg.RefreshTTL)
}

// Refresh validates the refresh token against signature, expiry and the
// revocation registry, then mints a non-fresh access token. No rotation.
func (t *TokenServiceImpl) Refresh(ctx context.Context, refreshToken string) (string, error) {
	result := "success"
	defer func() {
		metrics.TokensIssuedTotal.WithLabelValues("refresh", result).Inc()
	}()

	claims, err := t.parse(refreshToken)
	if err != nil {
		result = "failure"
		return "", err
	}
	if claims.Type != service.TokenTypeRefresh {
		result = "failure"
		return "", fmt.Errorf("%w: not a refresh token", domain.ErrInvalidToken)
	}
	revoked, err := t.registry.IsRevoked(ctx, claims.JTI)
	if err != nil {
		result = "failure"
		return "", err
	}
	if revoked {
		result = "failure"
		return "", domain.ErrTokenRevoked
	}

	access, err := t.sign(claims.UserID, service.TokenTypeAccess, false, t.cfg.AccessTTL)
	if err != nil {
		result = "failure"
		return "", err
	}
	return access, nil
}

func (t *TokenServiceImpl) Verify(ctx context.Context, raw string) (*service.Claims, error) {
	claims, err := t.parse(raw)
	if err != nil {
		return nil, err
	}
	revoked, err := t.registry.IsRevoked(ctx, claims.JTI)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domain.ErrTokenRevoked
	}
	return claims, nil
}

func (t *TokenServiceImpl) Revoke(ctx context.Context, claims *service.Claims) error {
	return t.registry.Revoke(ctx, claims.JTI, claims.ExpiresAt)
}

func (t *TokenServiceImpl) sign(userID uint, typ string, fresh bool, ttl time.Duration) (string, error) {
	now := t.now().UTC()
	claims := tokenClaims{
		Fresh:     fresh,
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.cfg.Issuer,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(), // jti, the revocation key
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.cfg.SigningKey)
}

func (t *TokenServiceImpl) parse(raw string) (*service.Claims, error) {
	claims := &tokenClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return t.now() }),
	)
	_, err := parser.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return t.cfg.SigningKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if claims.Issuer != t.cfg.Issuer {
		return nil, fmt.Errorf("%w: bad issuer", domain.ErrInvalidToken)
	}
	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", domain.ErrInvalidToken)
	}
	return &service.Claims{
		UserID:    uint(userID),
		JTI:       claims.ID,
		Fresh:     claims.Fresh,
		Type:      claims.TokenType,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
