package server

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/hacktron/hacktron-backend/internal/auth"
	"github.com/hacktron/hacktron-backend/internal/config"
	"github.com/hacktron/hacktron-backend/internal/http/handlers"
	"github.com/hacktron/hacktron-backend/internal/middleware"
	"github.com/hacktron/hacktron-backend/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.UserStore) *Server {
	mux := http.NewServeMux()
	health := handlers.NewHealthHandler(time.Now())
	health.Register(mux)
	tokenManager := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	users := handlers.NewUserHandler(store, tokenManager, &cfg)
	users.Register(mux)

	// Credentialed CORS: the session cookie is SameSite=None, so browsers
	// only send it when the CORS layer allows credentials per origin.
	corsLayer := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
	handler := corsLayer.Handler(middleware.Logging(mux))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
