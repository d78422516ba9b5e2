package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/eduaid/auth-service/pkg/httputil"
)

// Server is the public HTTP surface of the service.
type Server struct {
	router *mux.Router
	log    *logrus.Logger
}

// ServerOptions configures optional server behavior.
type ServerOptions struct {
	// CORSOrigins, when non-empty, enables CORS for the listed origins.
	CORSOrigins []string
	// MaxBodyBytes caps request bodies. Zero means the default.
	MaxBodyBytes int64
}

const defaultMaxBodyBytes = 1 << 20 // 1 MiB

// NewServer assembles the router with the shared middleware chain and the
// session routes.
func NewServer(sessions *SessionHandlers, log *logrus.Logger, opts ServerOptions) *Server {
	if log == nil {
		log = logrus.New()
	}
	if opts.MaxBodyBytes == 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}

	s := &Server{
		router: mux.NewRouter(),
		log:    log,
	}

	chain := []mux.MiddlewareFunc{
		httputil.Recovery(log),
		httputil.RequestID,
		httputil.Logging(log),
		httputil.MaxBytes(opts.MaxBodyBytes),
	}
	if len(opts.CORSOrigins) > 0 {
		chain = append(chain, httputil.CORS(opts.CORSOrigins))
	}
	s.router.Use(chain...)

	sessions.RegisterRoutes(s.router)

	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteMsg(w, http.StatusNotFound, "Not found")
	})
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteMsg(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return s
}

// Router exposes the underlying router for additional route registration.
func (s *Server) Router() *mux.Router {
	return s.router
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
