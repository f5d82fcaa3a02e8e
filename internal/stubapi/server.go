// Package stubapi is an in-memory stand-in for the tender platform's REST
// API. It exists for local development and for exercising the client in
// tests; it is not the product backend.
package stubapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// pageSize is the fixed size of one tender listing page.
const pageSize = 10

// Server holds the stub's state and configuration.
type Server struct {
	store  *Store
	secret []byte
	log    *zap.Logger
}

// NewServer constructs a stub Server. The zap logger may be nil.
func NewServer(store *Store, secret []byte, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{store: store, secret: secret, log: log}
}

// NewRouter constructs the HTTP handler serving the platform interface.
// Auth endpoints are public; everything else requires a bearer token.
//
// Routes:
//
//	POST /auth/register            → Register
//	POST /auth/login               → Login
//	GET  /companies/me             → CurrentCompany (404 when none)
//	POST /companies                → CreateCompany
//	PUT  /companies                → UpdateCompany
//	DELETE /companies/{id}         → DeleteCompany
//	GET  /companies/search         → SearchCompanies
//	GET  /tenders                  → ListTenders (?page=, default 1)
//	POST /tenders                  → CreateTender
//	GET/PUT/DELETE /tenders/{id}   → tender detail and owner mutations
//	GET  /applications             → AppliedTenders
//	POST /applications             → SubmitApplication
//	GET  /applications/{id}        → GetApplication
//	POST /applications/{tenderId}  → QuickApply
func (s *Server) NewRouter() http.Handler {
	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(s.withRequestLogging)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.Register)
		r.Post("/login", s.Login)
	})

	// Protected group: requires a valid bearer token
	r.Group(func(r chi.Router) {
		r.Use(Authenticator(s.secret))

		r.Route("/companies", func(r chi.Router) {
			r.Get("/me", s.CurrentCompany)
			r.Get("/search", s.SearchCompanies)
			r.Post("/", s.CreateCompany)
			r.Put("/", s.UpdateCompany)
			r.Delete("/{id}", s.DeleteCompany)
		})

		r.Route("/tenders", func(r chi.Router) {
			r.Get("/", s.ListTenders)
			r.Post("/", s.CreateTender)
			r.Get("/{id}", s.GetTender)
			r.Put("/{id}", s.UpdateTender)
			r.Delete("/{id}", s.DeleteTender)
		})

		r.Route("/applications", func(r chi.Router) {
			r.Get("/", s.ListAppliedTenders)
			r.Post("/", s.SubmitApplication)
			r.Get("/{id}", s.GetApplication)
			// quick-apply: {id} here is the tender id
			r.Post("/{id}", s.QuickApply)
		})
	})

	return r
}

// withRequestLogging logs method, path, request id, and duration.
func (s *Server) withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", r.Header.Get("X-Request-Id")),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError answers with the platform's error shape.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
