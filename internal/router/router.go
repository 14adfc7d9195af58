// Package router wires the HTTP routes and middleware stack.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jmwangi/parishledger/internal/auth"
	"github.com/jmwangi/parishledger/internal/handler"
	"github.com/jmwangi/parishledger/internal/middleware"
)

// New builds the service router.
func New(
	authHandler *handler.AuthHandler,
	memberHandler *handler.MemberHandler,
	paymentHandler *handler.PaymentHandler,
	duesHandler *handler.DuesHandler,
	jwtManager *auth.JWTManager,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(middleware.Logging)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(jwtManager))

			r.Get("/members/me", memberHandler.Me)
			r.Get("/payments/me/dues", duesHandler.MyDues)

			// Staff-only routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireStaff)

				r.Post("/payments", paymentHandler.Create)
				r.Get("/payments/{memberID}/dues", duesHandler.MemberDues)
			})
		})
	})

	return r
}
