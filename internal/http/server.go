// Package http exposes the JSON surface of the application: the session
// gate, the dashboard, movement entry and pending reconciliation. Every
// mutating request triggers one synchronous load-mutate-save cycle.
package http

import (
	"net/http"
	"time"

	"gastos/internal/auth"
	"gastos/internal/log"
	"gastos/internal/services"
)

const sessionCookie = "gastos_session"

type Server struct {
	http.Server

	svc    *services.LedgerService
	gate   *auth.Gate
	logger *log.Logger
	start  time.Time
}

func NewServer(addr string, svc *services.LedgerService, gate *auth.Gate, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	s := &Server{
		svc:    svc,
		gate:   gate,
		logger: logger.WithComponent(log.ComponentHTTP),
		start:  time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/logout", s.requireSession(s.handleLogout))
	mux.HandleFunc("GET /api/overview", s.requireSession(s.handleOverview))
	mux.HandleFunc("POST /api/movements", s.requireSession(s.handleCreateMovement))
	mux.HandleFunc("GET /api/pending", s.requireSession(s.handlePending))
	mux.HandleFunc("POST /api/pending", s.requireSession(s.handleUpdatePending))
	mux.HandleFunc("GET /api/history", s.requireSession(s.handleHistory))

	s.Server = http.Server{
		Addr:    addr,
		Handler: s.logRequests(mux),
	}
	return s
}

// requireSession rejects requests without a live session token. The token
// travels in the session cookie; the request context stays clean because
// handlers get the authorization as an explicit pass/fail, not as ambient
// state.
func (s *Server) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.gate.Authorized(sessionToken(r)) {
			writeError(w, http.StatusUnauthorized, "not authorized")
			return
		}
		next(w, r)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.logger.InfoContext(r.Context(), "Request handled",
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, sw.status,
			log.FieldDuration, time.Since(start).Milliseconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func sessionToken(r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil {
		return c.Value
	}
	return ""
}
