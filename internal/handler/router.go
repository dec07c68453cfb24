package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/rahulnair-dev/event-platform/internal/auth"
	"github.com/rahulnair-dev/event-platform/internal/metrics"
)

// Deps bundles everything the router needs.
type Deps struct {
	Auth          *AuthHandler
	Events        *EventHandler
	Registrations *RegistrationHandler
	Users         *UserHandler
	Tokens        *auth.TokenManager
	Log           *zap.Logger
	UploadDir     string
}

// NewRouter builds the full route tree with the global middleware stack.
func NewRouter(d Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(AccessLog(d.Log))
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/health", HealthCheck)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// Uploaded id proofs are served back as static files.
	uploadsFS := http.Dir(d.UploadDir)
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(uploadsFS)))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", d.Auth.Register)
			r.Post("/login", d.Auth.Login)
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", d.Events.List)
			r.Get("/{id}", d.Events.Get)

			r.Group(func(r chi.Router) {
				r.Use(Authenticator(d.Tokens))
				r.Post("/", d.Events.Create)
				r.Put("/{id}", d.Events.Update)
				r.Put("/{id}/deactivate", d.Events.Deactivate)
				r.Delete("/{id}", d.Events.Delete)
			})
		})

		r.Route("/registrations", func(r chi.Router) {
			r.Use(Authenticator(d.Tokens))
			r.Get("/my-registrations", d.Registrations.ListMine)
			r.Get("/events/{eventID}", d.Registrations.ListForEvent)
			r.Post("/{eventID}", d.Registrations.Register)
			r.Put("/{id}/approve", d.Registrations.Approve)
			r.Put("/{id}/confirm", d.Registrations.Approve) // historic alias
			r.Put("/{id}/reject", d.Registrations.Reject)
			r.Put("/{id}/cancel", d.Registrations.Cancel)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(Authenticator(d.Tokens))
			r.Get("/", d.Users.List)
			r.Get("/me", d.Users.Me)
			r.Put("/me", d.Users.UpdateMe)
			r.Post("/request-upgrade", d.Users.RequestUpgrade)
			r.Get("/my-manager-request", d.Users.MyManagerRequest)
			r.Get("/pending-managers", d.Users.PendingManagers)
			r.Post("/upload-id-proof", d.Users.UploadIDProof)
			r.Put("/{id}/approve", d.Users.ApproveManager)
			r.Put("/{id}/reject", d.Users.RejectManager)
			r.Put("/{id}/deactivate", d.Users.Deactivate)
		})
	})

	return r
}
