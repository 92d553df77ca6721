// Package http wires the chi router: public credential endpoints, the
// authenticated API surface and the admin-only subtree.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/go-crm-api/internal/transport/http/handler"
	"github.com/go-crm-api/internal/transport/http/middleware"
)

type RouterDeps struct {
	Sessions  *handler.SessionHandler
	Users     *handler.UserHandler
	Contacts  *handler.ContactHandler
	Alerts    *handler.AlertHandler
	Notes     *handler.NoteHandler
	Quotes    *handler.QuoteHandler
	Diaries   *handler.DiaryHandler
	Medicines *handler.MedicineHandler

	Verifier       middleware.TokenVerifier
	Logger         *slog.Logger
	AllowedOrigins []string
}

func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", handler.Health)

	// Credential endpoints are public but rate limited per client.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(rate.Limit(1), 5))
		r.Post("/auth/login", deps.Sessions.Login)
		r.Post("/auth/refresh", deps.Sessions.Refresh)
		r.Post("/users/register", deps.Users.Register)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(deps.Verifier))

		r.Post("/auth/logout", deps.Sessions.Logout)
		r.Get("/auth/me", deps.Sessions.Current)

		r.Get("/users/{userID}", deps.Users.Get)
		r.Patch("/users/{userID}", deps.Users.UpdateProfile)
		r.Post("/users/{userID}/password", deps.Users.ChangePassword)

		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", deps.Contacts.List)
			r.Post("/", deps.Contacts.Create)
			r.Route("/{contactID}", func(r chi.Router) {
				r.Get("/", deps.Contacts.Get)
				r.Patch("/", deps.Contacts.Update)
				r.Delete("/", deps.Contacts.Delete)
				r.Post("/audio", deps.Contacts.AttachAudio)
			})
		})

		r.Get("/alerts/today", deps.Alerts.Today)
		r.Patch("/alerts/{alertID}", deps.Alerts.Edit)
		r.Post("/alerts/{alertID}/snooze", deps.Alerts.Snooze)

		r.Route("/notes", func(r chi.Router) {
			r.Get("/", deps.Notes.List)
			r.Post("/", deps.Notes.Create)
			r.Get("/{noteID}", deps.Notes.Get)
			r.Patch("/{noteID}", deps.Notes.Update)
			r.Delete("/{noteID}", deps.Notes.Delete)
		})

		r.Get("/quotes", deps.Quotes.List)
		r.Get("/quotes/{quoteID}", deps.Quotes.Get)

		r.Route("/diary", func(r chi.Router) {
			r.Get("/", deps.Diaries.List)
			r.Post("/", deps.Diaries.Create)
			r.Get("/{entryID}", deps.Diaries.Get)
			r.Patch("/{entryID}", deps.Diaries.Update)
			r.Delete("/{entryID}", deps.Diaries.Delete)
		})

		r.Route("/medicines", func(r chi.Router) {
			r.Get("/", deps.Medicines.List)
			r.Post("/", deps.Medicines.Create)
			r.Get("/{medicineID}", deps.Medicines.Get)
			r.Patch("/{medicineID}", deps.Medicines.Update)
			r.Delete("/{medicineID}", deps.Medicines.Delete)
		})

		// Admin-only surface.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Get("/users", deps.Users.List)
			r.Post("/users/{userID}/verify", deps.Users.Verify)
			r.Delete("/users/{userID}", deps.Users.Delete)

			r.Post("/alerts/sweep", deps.Alerts.RunSweep)

			r.Post("/quotes", deps.Quotes.Create)
			r.Patch("/quotes/{quoteID}", deps.Quotes.Update)
			r.Delete("/quotes/{quoteID}", deps.Quotes.Delete)
		})
	})

	return r
}
