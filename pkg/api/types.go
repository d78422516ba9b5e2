package api

import "github.com/eduaid/auth-service/pkg/auth"

// credentialsRequest is the body of register and login.
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// sessionResponse is the body of a successful register or login.
type sessionResponse struct {
	User  *auth.User `json:"user"`
	Token string     `json:"token"`
}

// profileResponse is the body of a successful profile lookup. Only the
// claims travel back, not the stored account row.
type profileResponse struct {
	User profileUser `json:"user"`
}

type profileUser struct {
	Email string `json:"email"`
}
