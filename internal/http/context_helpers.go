package httpx

import (
	"context"

	domainauth "github.com/devxconsultancy/assess-ui-api/internal/domain/auth"
)

// claimsKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type claimsKey struct{}

// SetClaimsInContext returns a child context that carries the given session claims.
func SetClaimsInContext(ctx context.Context, claims domainauth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the session claims from context and a boolean
// indicating presence. Claims are immutable values: handlers read them but
// never modify them; state changes go through a re-mint round trip.
func ClaimsFromContext(ctx context.Context) (domainauth.Claims, bool) {
	if claims, ok := ctx.Value(claimsKey{}).(domainauth.Claims); ok {
		return claims, true
	}
	return domainauth.Claims{}, false
}
