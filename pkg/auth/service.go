package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 3

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserStore is the credential store the service depends on. Implementations
// live in pkg/storage.
type UserStore interface {
	// FindByEmail returns ErrUserNotFound on a miss.
	FindByEmail(ctx context.Context, email string) (*User, error)
	// Create returns ErrDuplicateEmail if the email already has an account.
	Create(ctx context.Context, email, passwordHash string) (*User, error)
}

// Revoker is the logout denylist. Implementations live in pkg/revocation.
type Revoker interface {
	// Revoke denylists a token for ttl. Revoking an already-revoked token
	// is a no-op success.
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	// IsRevoked reports whether the token is denylisted. A transport error
	// means the answer is unknown and the caller must reject the request.
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// Service orchestrates registration, login, and logout. All dependencies
// are injected; the service holds no global state and no cross-request
// locks. Uniqueness races on registration are resolved by the credential
// store's unique index.
type Service struct {
	users   UserStore
	revoker Revoker
	issuer  *TokenIssuer
	hasher  *PasswordHasher
	log     *logrus.Logger
	now     func() time.Time
}

// NewService wires a session service from its collaborators.
func NewService(users UserStore, revoker Revoker, issuer *TokenIssuer, hasher *PasswordHasher, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.New()
	}
	return &Service{
		users:   users,
		revoker: revoker,
		issuer:  issuer,
		hasher:  hasher,
		log:     log,
		now:     time.Now,
	}
}

// WithClock overrides the service clock for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// NormalizeEmail lowercases and trims an email address. Identity comparisons
// always run on the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateCredentials checks the shape of a register/login request before
// any store access. It returns a *ValidationError listing every failing
// field.
func ValidateCredentials(email, password string) error {
	var fields []FieldError
	if !emailPattern.MatchString(NormalizeEmail(email)) {
		fields = append(fields, FieldError{Field: "email", Message: "Email must be valid"})
	}
	if len(password) < MinPasswordLength {
		fields = append(fields, FieldError{
			Field:   "password",
			Message: fmt.Sprintf("Password must be at least %d characters long", MinPasswordLength),
		})
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Register creates an account and immediately logs it in: the returned
// token is minted as part of registration. Fails with *ValidationError on
// bad input and ErrDuplicateEmail if the email is taken.
func (s *Service) Register(ctx context.Context, email, password string) (*User, string, error) {
	if err := ValidateCredentials(email, password); err != nil {
		return nil, "", err
	}
	email = NormalizeEmail(email)

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	user, err := s.users.Create(ctx, email, hash)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, "", ErrDuplicateEmail
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.issuer.Issue(user.Email)
	if err != nil {
		return nil, "", err
	}

	s.log.WithField("email", user.Email).Info("user registered")
	return user, token, nil
}

// Login exchanges credentials for a token. An unknown email fails with
// ErrUserNotFound and a wrong password with ErrInvalidCredentials; the HTTP
// layer collapses both into one generic response so callers cannot
// enumerate accounts.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	if err := ValidateCredentials(email, password); err != nil {
		return nil, "", err
	}
	email = NormalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user.Email)
	if err != nil {
		return nil, "", err
	}

	s.log.WithField("email", user.Email).Info("user logged in")
	return user, token, nil
}

// Logout denylists the presented token for exactly its remaining validity
// window, computed from the token's own expiry claim, so the denylist entry
// never outlives the token it blocks. An already-expired or already-revoked
// token is a no-op success.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.issuer.Verify(token)
	if err != nil {
		// Nothing left to revoke: an unverifiable token is rejected by the
		// middleware on every request anyway.
		return nil
	}

	ttl := claims.Remaining(s.now())
	if ttl <= 0 {
		return nil
	}

	if err := s.revoker.Revoke(ctx, token, ttl); err != nil {
		return fmt.Errorf("%w: %v", ErrRevocationUnavailable, err)
	}

	s.log.WithField("email", claims.Email).Info("user logged out")
	return nil
}
