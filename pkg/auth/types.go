package auth

import "time"

// User represents a registered account.
//
// The password hash is excluded from JSON so it can never leak through an
// API response; handlers return this struct directly.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Claims is the identity payload embedded in a bearer token.
type Claims struct {
	Email     string    `json:"email"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Remaining reports how much of the token's validity window is left at t.
// It is negative once the token has expired.
func (c Claims) Remaining(t time.Time) time.Duration {
	return c.ExpiresAt.Sub(t)
}
