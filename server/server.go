// Package server exposes the inv calculations as a JSON HTTP API, for a web
// form.
package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/etnz/invest"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// Options configure a Server.
type Options struct {
	Calculator  *invest.Calculator
	CORSOrigins []string
	// CacheTTL is how long a loaded CPI index is reused.
	CacheTTL time.Duration
	// Limiter bounds the request rate. Nil means no limit.
	Limiter *rate.Limiter
}

// Server serves the calculations.
type Server struct {
	calc    invest.Calculator
	indexes *cache.Cache
	limiter *rate.Limiter
	origins []string
}

// cachedIndex is an index loaded for a month range.
type cachedIndex struct {
	index    *invest.Index
	warnings invest.Warnings
}

// New creates a server. Successfully loaded indexes are cached per month
// range for CacheTTL. An index loaded with warnings is not cached, so that a
// failing source is retried on the next request.
func New(o Options) *Server {
	s := &Server{
		limiter: o.Limiter,
		origins: o.CORSOrigins,
		indexes: cache.New(o.CacheTTL, 2*o.CacheTTL),
	}
	if o.Calculator != nil {
		s.calc = *o.Calculator
	}
	if load := s.calc.Load; load != nil {
		s.calc.Load = func(ctx context.Context, r invest.MonthRange) (*invest.Index, invest.Warnings) {
			key := r.String()
			if v, found := s.indexes.Get(key); found {
				c := v.(cachedIndex)
				return c.index, c.warnings
			}
			x, ws := load(ctx, r)
			if len(ws) == 0 {
				s.indexes.Set(key, cachedIndex{index: x}, cache.DefaultExpiration)
			}
			return x, ws
		}
	}
	return s
}

// Router returns the HTTP handler of the API.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	if s.limiter != nil {
		r.Use(s.rateLimit)
	}

	r.Get("/healthz", s.health)
	r.Route("/api", func(r chi.Router) {
		r.Post("/snapshot", s.snapshot)
		r.Post("/compare", s.compare)
		r.Post("/project", s.project)
		r.Get("/cpi", s.cpi)
	})
	return r
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			log.Printf("rate limit exceeded on %s", r.URL.Path)
			writeError(w, http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests), nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
