// Package middleware provides the authentication gate every protected
// route passes through.
package middleware

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/eduaid/auth-service/pkg/auth"
	"github.com/eduaid/auth-service/pkg/contextkeys"
	"github.com/eduaid/auth-service/pkg/httputil"
)

// TokenCookie is the cookie the token may be transported in, interchangeable
// with the Authorization header.
const TokenCookie = "token"

// Auth is the single enforcement point for protected routes. It is a
// strictly linear gate: extract token, check revocation, verify signature
// and expiry, attach claims. Any failure is terminal for the request.
//
// Dependencies are injected; the middleware holds no global state.
type Auth struct {
	issuer  *auth.TokenIssuer
	revoker auth.Revoker
	log     *logrus.Logger

	// revocationFailures counts revocation checks that could not be
	// completed. Optional.
	revocationFailures prometheus.Counter

	// tokenVerifications counts verification outcomes by "success" or
	// "failure". Optional.
	tokenVerifications *prometheus.CounterVec
}

// NewAuth creates the authentication middleware.
func NewAuth(issuer *auth.TokenIssuer, revoker auth.Revoker, log *logrus.Logger) *Auth {
	if log == nil {
		log = logrus.New()
	}
	return &Auth{issuer: issuer, revoker: revoker, log: log}
}

// WithRevocationFailureCounter wires a counter incremented whenever the
// revocation store cannot answer.
func (m *Auth) WithRevocationFailureCounter(c prometheus.Counter) *Auth {
	m.revocationFailures = c
	return m
}

// WithVerificationCounter wires a counter labelled by verification outcome.
func (m *Auth) WithVerificationCounter(c *prometheus.CounterVec) *Auth {
	m.tokenVerifications = c
	return m
}

// Handler wraps next with the authentication gate.
func (m *Auth) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := ExtractToken(r)
		if token == "" {
			httputil.WriteUnauthorized(w, "No token found")
			return
		}

		// Revocation is checked before signature verification, matching the
		// order a logout takes effect in. If the store cannot answer, the
		// revocation status is unknown and the request is rejected; an
		// unreachable denylist must never authorize anyone.
		revoked, err := m.revoker.IsRevoked(r.Context(), token)
		if err != nil {
			if m.revocationFailures != nil {
				m.revocationFailures.Inc()
			}
			m.log.WithError(err).Error("revocation check failed; rejecting request")
			httputil.WriteServiceUnavailable(w, "Unable to verify session")
			return
		}
		if revoked {
			clearTokenCookie(w)
			httputil.WriteUnauthorized(w, "Unauthorized User")
			return
		}

		claims, err := m.issuer.Verify(token)
		if err != nil {
			m.countVerification("failure")
			httputil.WriteUnauthorized(w, "Invalid or expired token")
			return
		}
		m.countVerification("success")

		ctx := contextkeys.WithClaims(r.Context(), claims, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Auth) countVerification(outcome string) {
	if m.tokenVerifications != nil {
		m.tokenVerifications.WithLabelValues(outcome).Inc()
	}
}

// ExtractToken reads the bearer token from the token cookie or the
// Authorization header. A missing or malformed header is simply "no token";
// it must never be a parse failure.
func ExtractToken(r *http.Request) string {
	if cookie, err := r.Cookie(TokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return ""
	}
	return parts[1]
}

// clearTokenCookie expires the client's token cookie so a revoked token is
// not re-presented on every request.
func clearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
