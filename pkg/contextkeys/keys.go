// Package contextkeys provides centralized context key definitions.
//
// All context keys used across the application are defined here to prevent
// typos and make key usage discoverable.
package contextkeys

import (
	"context"

	"github.com/eduaid/auth-service/pkg/auth"
)

// Key is the type for context keys to prevent collisions.
type Key string

const (
	// ClaimsKey contains the auth.Claims of the authenticated request.
	// Set by: middleware.Auth
	// Required by: all protected handlers
	ClaimsKey Key = "auth_claims"

	// TokenKey contains the raw bearer token string of the request.
	// Set by: middleware.Auth
	// Required by: the logout handler (it revokes the presented token)
	TokenKey Key = "auth_token"

	// RequestIDKey contains the request ID string (UUID).
	// Set by: httputil.RequestID middleware
	// Used by: request logging
	RequestIDKey Key = "request_id"
)

// WithClaims attaches verified claims and the raw token to the context.
func WithClaims(ctx context.Context, claims auth.Claims, token string) context.Context {
	ctx = context.WithValue(ctx, ClaimsKey, claims)
	return context.WithValue(ctx, TokenKey, token)
}

// ClaimsFrom extracts the verified claims, if any.
func ClaimsFrom(ctx context.Context) (auth.Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(auth.Claims)
	return claims, ok
}

// TokenFrom extracts the raw bearer token, if any.
func TokenFrom(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenKey).(string)
	return token, ok
}

// RequestIDFrom extracts the request ID, if any.
func RequestIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(RequestIDKey).(string)
	return id, ok
}
