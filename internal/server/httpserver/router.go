package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophprofile/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RouterDeps are the handlers and collaborators mounted by NewRouter.
type RouterDeps struct {
	GraphQL        http.Handler
	Auth           func(http.Handler) http.Handler
	DB             Pinger
	AllowedOrigins []string
	Logger         logging.Logger
}

// NewRouter builds the HTTP routes:
//
//	GET|POST /graphql  GraphQL endpoint (identity resolved from the Bearer token)
//	GET      /healthz  database liveness
func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(d.Logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", health(d.DB))

	r.Group(func(r chi.Router) {
		if d.Auth != nil {
			r.Use(d.Auth)
		}
		r.Get("/graphql", d.GraphQL.ServeHTTP)
		r.Post("/graphql", d.GraphQL.ServeHTTP)
	})

	return r
}

func health(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		if db != nil {
			if err := db.PingContext(ctx); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"status":"unavailable"}`))
				return
			}
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}

func accessLog(l logging.Logger) func(http.Handler) http.Handler {
	logger := l.With("module", "http")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
