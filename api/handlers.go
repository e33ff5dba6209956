package api

import (
	"time"

	"github.com/amontes/portfolio-backend/config"
	"github.com/amontes/portfolio-backend/database"
	"github.com/amontes/portfolio-backend/services"
	"github.com/amontes/portfolio-backend/storage"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler          authHandler
	healthHandler        healthHandler
	projectHandler       projectHandler
	certificationHandler certificationHandler
	journeyHandler       journeyHandler
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, images storage.ImageStore, c map[string]string, startupTime time.Time) *routeHandlers {
	maxUploadBytes := config.GetInt64(c, "MAX_UPLOAD_BYTES", storage.DefaultMaxUploadBytes)

	return &routeHandlers{
		authHandler:          newAuthHandler(c),
		healthHandler:        newHealthHandler(startupTime),
		projectHandler:       newProjectHandler(services.NewProjectService(db.ProjectRepo(), images), maxUploadBytes),
		certificationHandler: newCertificationHandler(services.NewCertificationService(db.CertificationRepo())),
		journeyHandler:       newJourneyHandler(services.NewJourneyService(db.JourneyRepo())),
	}
}
