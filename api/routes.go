package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes mounts the whole API surface. Every mutating route sits behind
// the auth gate; list and search reads are public.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Get("/health", handlers.healthHandler.status())

	r.Route("/api", func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Post("/auth/login", handlers.authHandler.login())

		r.Route("/projects", func(r chi.Router) {
			r.With(authMiddleware.optionalAuthenticate).Get("/", handlers.projectHandler.listProjects())
			r.Get("/search", handlers.projectHandler.searchProjects())

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.authenticate)

				r.Get("/{projectID}", handlers.projectHandler.getProject())
				r.Post("/", handlers.projectHandler.createProject())
				r.Post("/upload-image", handlers.projectHandler.uploadImage())
				r.Put("/{projectID}", handlers.projectHandler.updateProject())
				r.Delete("/{projectID}", handlers.projectHandler.deleteProject())
			})
		})

		r.Route("/certifications", func(r chi.Router) {
			r.Get("/", handlers.certificationHandler.listCertifications())
			r.Get("/issuer/{issuer}", handlers.certificationHandler.byIssuer())

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.authenticate)

				r.Get("/{certificationID}", handlers.certificationHandler.getCertification())
				r.Post("/", handlers.certificationHandler.createCertification())
				r.Put("/{certificationID}", handlers.certificationHandler.updateCertification())
				r.Delete("/{certificationID}", handlers.certificationHandler.deleteCertification())
			})
		})

		r.Route("/journey", func(r chi.Router) {
			r.Get("/", handlers.journeyHandler.listJourneyItems())
			r.Get("/type/{journeyType}", handlers.journeyHandler.byType())
			r.Get("/current", handlers.journeyHandler.current())

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.authenticate)

				r.Get("/{journeyID}", handlers.journeyHandler.getJourneyItem())
				r.Post("/", handlers.journeyHandler.createJourneyItem())
				r.Put("/{journeyID}", handlers.journeyHandler.updateJourneyItem())
				r.Delete("/{journeyID}", handlers.journeyHandler.deleteJourneyItem())
			})
		})
	})
}
