package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultTokenTTL is the validity window of an issued token. Expiry is
// wall-clock absolute, not sliding; there is no refresh mechanism.
const DefaultTokenTTL = time.Hour

// defaultClaimsCacheSize bounds the verified-claims cache. Entries are tiny,
// so this is sized for a busy single instance.
const defaultClaimsCacheSize = 4096

type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and verifies HS256 bearer tokens. The signing secret is
// shared process-wide and supplied by configuration; any node holding it can
// verify a token independently.
//
// Verification results are memoized in a bounded LRU keyed by the exact
// token string. A cached entry is re-checked against the clock on every hit,
// so the cache can never outlive the token it fronts.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	cache  *lru.Cache[string, Claims]
}

// NewTokenIssuer creates an issuer with the given signing secret and token
// lifetime. A non-positive ttl falls back to DefaultTokenTTL.
func NewTokenIssuer(secret []byte, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	cache, _ := lru.New[string, Claims](defaultClaimsCacheSize)
	return &TokenIssuer{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
		cache:  cache,
	}
}

// WithClock overrides the issuer's clock. Tests use this to pin expiry
// boundaries without sleeping.
func (i *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	i.now = now
	return i
}

// TTL returns the configured token lifetime.
func (i *TokenIssuer) TTL() time.Duration {
	return i.ttl
}

// Issue mints a signed token for the given email subject, expiring exactly
// one lifetime from now.
func (i *TokenIssuer) Issue(email string) (string, error) {
	now := i.now().Truncate(time.Second)
	claims := tokenClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify validates the token's signature and expiry and returns its claims.
// Bad signature, malformed input, and expiry all collapse to ErrInvalidToken
// so a caller cannot tell which check failed.
func (i *TokenIssuer) Verify(tokenString string) (Claims, error) {
	if cached, ok := i.cache.Get(tokenString); ok {
		if i.now().Before(cached.ExpiresAt) {
			return cached, nil
		}
		i.cache.Remove(tokenString)
		return Claims{}, ErrInvalidToken
	}

	var parsed tokenClaims
	_, err := jwt.ParseWithClaims(tokenString, &parsed, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(i.now))
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	if parsed.ExpiresAt == nil || parsed.IssuedAt == nil {
		return Claims{}, ErrInvalidToken
	}

	claims := Claims{
		Email:     parsed.Email,
		IssuedAt:  parsed.IssuedAt.Time,
		ExpiresAt: parsed.ExpiresAt.Time,
	}
	if claims.Email == "" {
		claims.Email = parsed.Subject
	}

	i.cache.Add(tokenString, claims)
	return claims, nil
}
