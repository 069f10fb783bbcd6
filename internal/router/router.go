package router

import (
	"github.com/go-chi/chi/v5"

	"letterflow/internal/auth"
	"letterflow/internal/handler"
	mw "letterflow/internal/middleware"
)

func New(
	jwtSecret string,
	authH *handler.AuthHandler,
	tplH *handler.TemplateHandler,
	subH *handler.SubmissionHandler,
	dashH *handler.DashboardHandler,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS)

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/auth/login", authH.Login)
		r.Post("/auth/register", authH.Register)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(jwtSecret))

			// Auth
			r.Get("/auth/me", authH.Me)

			// Dashboard
			r.Get("/dashboard", dashH.Dashboard)

			// Templates
			r.Get("/templates", tplH.List)
			r.Get("/templates/{templateId}", tplH.Get)

			// Submissions
			r.Get("/submissions", subH.List)
			r.Post("/submissions", subH.Create)
			r.Get("/submissions/{subId}", subH.Get)
			r.Get("/submissions/{subId}/download", subH.Download)
			r.Post("/submissions/{subId}/review", subH.MarkInReview)
			r.Post("/submissions/{subId}/approve", subH.Approve)
			r.Post("/submissions/{subId}/reject", subH.Reject)
		})
	})

	return r
}
