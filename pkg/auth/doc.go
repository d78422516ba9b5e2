// Package auth implements the authentication core: user records, password
// hashing, bearer token issuance/verification, and the session service that
// orchestrates registration, login, and logout.
//
// # Overview
//
// The package is deliberately free of HTTP concerns. Handlers in pkg/api and
// the gate in pkg/middleware call into this package and translate its
// sentinel errors into status codes.
//
// # Key Components
//
// PasswordHasher: bcrypt with a configurable cost factor
//
//	hasher := auth.NewPasswordHasher(auth.DefaultBcryptCost)
//	hash, err := hasher.Hash("secret")
//	ok, err := hasher.Verify("secret", hash) // mismatch is ok=false, not an error
//
// TokenIssuer: HS256 JWTs with an absolute expiry
//
//	issuer := auth.NewTokenIssuer([]byte(secret), time.Hour)
//	token, err := issuer.Issue("alice@example.com")
//	claims, err := issuer.Verify(token) // signature and expiry collapse to ErrInvalidToken
//
// Service: the session controller
//
//	svc := auth.NewService(users, revocations, issuer, hasher, logger)
//	user, token, err := svc.Register(ctx, email, password)
//	user, token, err = svc.Login(ctx, email, password)
//	err = svc.Logout(ctx, token)
//
// # Error Taxonomy
//
// All failures surface as package-level sentinels (ErrDuplicateEmail,
// ErrUserNotFound, ErrInvalidCredentials, ErrInvalidToken,
// ErrRevocationUnavailable) or as a *ValidationError carrying field-level
// detail. Callers match with errors.Is/errors.As.
//
// # Related Packages
//
//   - pkg/storage: credential store implementations
//   - pkg/revocation: the logout denylist
//   - pkg/middleware: the per-request authentication gate
package auth
