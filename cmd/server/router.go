package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	apimiddleware "github.com/youchat/youchat-api/internal/api/middleware"
	"github.com/youchat/youchat-api/internal/platform/logger"
)

// newRouter builds the HTTP route tree.
func newRouter(app *application) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)
	r.Use(loggerMiddleware(app))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Public routes; chat accepts anonymous and authenticated requests.
	r.With(app.authMiddleware.OptionalAuthenticate).Post("/chat/", app.chatHandler.Chat)
	r.Get("/transcript/", app.transcriptHandler.GetTranscript)
	r.Get("/transcript/{videoID}", app.transcriptHandler.GetTranscript)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", app.authHandler.Register)
			r.Post("/login", app.authHandler.Login)
			r.Post("/refresh", app.authHandler.Refresh)
		})

		// Routes below require authentication.
		r.Group(func(r chi.Router) {
			r.Use(app.authMiddleware.Authenticate)

			r.Route("/sessions", func(r chi.Router) {
				r.Get("/", app.sessionHandler.ListSessions)
				r.Get("/{sessionID}/messages", app.sessionHandler.GetSessionMessages)
				r.Delete("/{sessionID}", app.sessionHandler.DeleteSession)
			})

			r.Route("/videos/{videoID}/summary", func(r chi.Router) {
				r.Post("/", app.summaryHandler.RequestSummary)
				r.Get("/", app.summaryHandler.GetSummary)
			})
		})
	})

	return r
}

// loggerMiddleware attaches the application logger to each request context so
// downstream code can retrieve it with logger.FromContext.
func loggerMiddleware(app *application) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := logger.WithLogger(r.Context(), app.logger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
