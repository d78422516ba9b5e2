package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/eduaid/auth-service/pkg/auth"
	"github.com/eduaid/auth-service/pkg/contextkeys"
	"github.com/eduaid/auth-service/pkg/httputil"
	"github.com/eduaid/auth-service/pkg/middleware"
	"github.com/eduaid/auth-service/pkg/observability"
)

// SessionHandlers serves the account and session endpoints.
type SessionHandlers struct {
	service *auth.Service
	gate    *middleware.Auth
	log     *logrus.Logger
	metrics *observability.Metrics
	ttl     time.Duration
}

// NewSessionHandlers creates the session handler set. metrics may be nil.
func NewSessionHandlers(service *auth.Service, gate *middleware.Auth, ttl time.Duration, log *logrus.Logger, metrics *observability.Metrics) *SessionHandlers {
	if log == nil {
		log = logrus.New()
	}
	return &SessionHandlers{
		service: service,
		gate:    gate,
		log:     log,
		metrics: metrics,
		ttl:     ttl,
	}
}

// RegisterRoutes registers the session routes on the router. The profile
// and logout routes sit behind the authentication gate.
func (h *SessionHandlers) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/users/register", h.register).Methods("POST")
	router.HandleFunc("/users/login", h.login).Methods("POST")
	router.Handle("/users/profile", h.gate.Handler(http.HandlerFunc(h.profile))).Methods("GET")
	router.Handle("/users/logout", h.gate.Handler(http.HandlerFunc(h.logout))).Methods("GET")
}

// register handles POST /users/register. Registration implies login: the
// response carries a freshly minted token.
func (h *SessionHandlers) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	user, token, err := h.service.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		h.countRegistration("failure")
		var verr *auth.ValidationError
		switch {
		case errors.As(err, &verr):
			httputil.WriteValidationErrors(w, verr.Fields)
		case errors.Is(err, auth.ErrDuplicateEmail):
			httputil.WriteMsg(w, http.StatusConflict, "Email already registered")
		default:
			h.countStorageError("register")
			h.log.WithError(err).Error("registration failed")
			httputil.WriteInternalError(w)
		}
		return
	}

	h.countRegistration("success")
	h.countTokenIssued()
	h.setTokenCookie(w, token)
	httputil.WriteJSON(w, http.StatusCreated, sessionResponse{User: user, Token: token})
}

// login handles POST /users/login.
func (h *SessionHandlers) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	user, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.countLogin("failure")
		var verr *auth.ValidationError
		switch {
		case errors.As(err, &verr):
			httputil.WriteValidationErrors(w, verr.Fields)
		case errors.Is(err, auth.ErrUserNotFound):
			httputil.WriteMsg(w, http.StatusBadRequest, "User Not Found")
		case errors.Is(err, auth.ErrInvalidCredentials):
			httputil.WriteMsg(w, http.StatusBadRequest, "Invalid Credentials")
		default:
			h.countStorageError("login")
			h.log.WithError(err).Error("login failed")
			httputil.WriteInternalError(w)
		}
		return
	}

	h.countLogin("success")
	h.countTokenIssued()
	h.setTokenCookie(w, token)
	httputil.WriteJSON(w, http.StatusOK, sessionResponse{User: user, Token: token})
}

// profile handles GET /users/profile. The gate has already verified the
// token; the claims come from the request context.
func (h *SessionHandlers) profile(w http.ResponseWriter, r *http.Request) {
	claims, ok := contextkeys.ClaimsFrom(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "No token found")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, profileResponse{User: profileUser{Email: claims.Email}})
}

// logout handles GET /users/logout. The presented token goes on the
// denylist for its remaining lifetime and the client cookie is cleared.
func (h *SessionHandlers) logout(w http.ResponseWriter, r *http.Request) {
	token, ok := contextkeys.TokenFrom(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "No token found")
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		if errors.Is(err, auth.ErrRevocationUnavailable) {
			h.log.WithError(err).Error("logout could not reach the revocation store")
			httputil.WriteServiceUnavailable(w, "Unable to complete logout")
			return
		}
		h.log.WithError(err).Error("logout failed")
		httputil.WriteInternalError(w)
		return
	}

	if h.metrics != nil {
		h.metrics.LogoutsTotal.Inc()
		h.metrics.RevokedTokensActiveTotal.Inc()
	}
	h.clearTokenCookie(w)
	httputil.WriteMsg(w, http.StatusOK, "Logout successful")
}

// setTokenCookie mirrors the issued token into the token cookie so browser
// clients authenticate without managing the Authorization header.
func (h *SessionHandlers) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *SessionHandlers) clearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func (h *SessionHandlers) countRegistration(outcome string) {
	if h.metrics != nil {
		h.metrics.RegistrationsTotal.WithLabelValues(outcome).Inc()
	}
}

func (h *SessionHandlers) countLogin(outcome string) {
	if h.metrics != nil {
		h.metrics.LoginsTotal.WithLabelValues(outcome).Inc()
	}
}

func (h *SessionHandlers) countTokenIssued() {
	if h.metrics != nil {
		h.metrics.TokensIssuedTotal.Inc()
	}
}

func (h *SessionHandlers) countStorageError(operation string) {
	if h.metrics != nil {
		h.metrics.StorageErrorsTotal.WithLabelValues(operation).Inc()
	}
}
