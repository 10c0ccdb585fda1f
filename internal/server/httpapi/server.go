// Package httpapi exposes the vault over HTTP: registration, login, the
// authenticated /me endpoint and document listing/upload.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/docvault/docvault/internal/logging"
	"github.com/docvault/docvault/internal/server/documents"
	"github.com/docvault/docvault/internal/server/users"
)

type Server struct {
	address   string
	logger    logging.Logger
	users     *users.Service
	documents *documents.Service
	jwtSecret []byte
}

func NewServer(address string, l logging.Logger, us *users.Service, ds *documents.Service, secretKey string) (*Server, error) {
	return &Server{
		address:   address,
		logger:    l.With("module", "http_server"),
		users:     us,
		documents: ds,
		jwtSecret: []byte(secretKey),
	}, nil
}

// Routes assembles the chi router with the public and bearer-gated endpoints.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/health", s.health)

	r.Post("/api/v1/auth/register", s.register)
	r.Post("/api/v1/auth/login", s.login)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)
		r.Get("/api/v1/auth/me", s.me)
		r.Get("/documents", s.listDocuments)
		r.Post("/documents", s.uploadDocument)
	})

	return r
}

func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
