package handlers

import (
	"net/http"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"ott-manager.app/api/internal/catalog"
	"ott-manager.app/api/internal/metrics"
	"ott-manager.app/api/internal/ratelimit"
)

type Options struct {
	CORSAllowedOrigins []string

	// RateLimiter is optional. Nil disables rate limiting.
	RateLimiter ratelimit.Limiter

	// Metrics is optional. Nil disables /metrics and request metrics.
	Metrics *metrics.Collector

	// Sentry enables panic and error reporting. sentry.Init must have
	// been called with a DSN.
	Sentry bool
}

type Server struct {
	Router  chi.Router
	Catalog *catalog.Catalog
	Metrics *metrics.Collector
}

func NewHttpServer(cat *catalog.Catalog, opts Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		Router:  r,
		Catalog: cat,
		Metrics: opts.Metrics,
	}

	r.Use(RequestID)
	r.Use(RequestLogger)
	if opts.Sentry {
		r.Use(sentryhttp.New(sentryhttp.Options{
			Repanic: true,
			Timeout: 2 * time.Second,
		}).Handle)
	}
	r.Use(middleware.Recoverer)

	origins := opts.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader, "Retry-After"},
		MaxAge:         300,
	}))

	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	r.Get("/health", s.Health)

	r.Route("/api/v1", func(r chi.Router) {
		if opts.RateLimiter != nil {
			r.Use(ratelimit.Middleware(opts.RateLimiter))
		}
		r.Get("/subscriptions", s.ListSubscriptions)
		r.Get("/subscriptions/{id}", s.GetSubscription)
		r.Get("/summary", s.Summary)
		r.Get("/filters", s.Filters)
		r.Get("/deployments", s.ListDeployments)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeErrorResponse(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeErrorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
