package api

import (
	"net/http"

	"eway-hosted/internal/logger"
	"eway-hosted/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RouteAppender mounts a group of routes on a router.
type RouteAppender interface {
	AppendRoutes(r chi.Router)
}

type RouterConfig struct {
	JWTSecret []byte
	Limiter   *middleware.RateLimiter
	Public    []RouteAppender
	Admin     []RouteAppender
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	if cfg.Limiter != nil {
		r.Use(cfg.Limiter.Middleware)
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	for _, a := range cfg.Public {
		a.AppendRoutes(r)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		for _, a := range cfg.Admin {
			a.AppendRoutes(r)
		}
	})

	return r
}
