package http

import (
	"net/http"
	"time"

	"github.com/central-square/centralsquare/pkg/usecase"
	"github.com/central-square/centralsquare/pkg/utils/logging"
	"github.com/central-square/centralsquare/pkg/utils/safe"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	router   *chi.Mux
	uc       *usecase.UseCases
	noAuthID string
}

type Options func(*Server)

// WithNoAuth enables the development mode that treats every request as the
// given user when no identity headers are present.
func WithNoAuth(userID string) Options {
	return func(s *Server) {
		s.noAuthID = userID
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/ai-host", func(r chi.Router) {
		r.Use(identityMiddleware(s.noAuthID))

		r.Post("/chat", postChatHandler(uc))
		r.Get("/chat", getChatHandler(uc))
		r.Get("/recommendations", getRecommendationsHandler(uc))
		r.Post("/recommendations", postRecommendationActionHandler(uc))
		r.Get("/recommendations/history", getRecommendationHistoryHandler(uc))
	})

	r.Get("/health", healthHandler)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	safe.Write(r.Context(), w, []byte(`{"status":"ok"}`))
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
