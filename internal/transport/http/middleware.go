package http

import (
	"context"
	"net/http"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/service"
)

type claimsCtxKey struct{}

// requireToken authenticates the request with a bearer access token and puts
// the verified claims on the context. fresh additionally demands a token
// minted directly by password login.
func requireToken(tokens service.TokenService, fresh bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				writeMissingToken(w)
				return
			}
			claims, err := tokens.Verify(r.Context(), raw)
			if err != nil {
				writeTokenError(w, err)
				return
			}
			if claims.Type != service.TokenTypeAccess {
				writeTokenError(w, domain.ErrInvalidToken)
				return
			}
			if fresh && !claims.Fresh {
				writeTokenError(w, domain.ErrTokenNotFresh)
				return
			}
			ctx := context.WithValue(r.Context(), claimsCtxKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func claimsFromContext(ctx context.Context) *service.Claims {
	if c, ok := ctx.Value(claimsCtxKey{}).(*service.Claims); ok {
		return c
	}
	return nil
}
