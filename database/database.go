package database

import (
	"github.com/amontes/portfolio-backend/models"
	"gorm.io/gorm"
)

type Database struct {
	projectRepo       *ProjectRepo
	certificationRepo *CertificationRepo
	journeyRepo       *JourneyRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		projectRepo:       NewProjectRepo(db),
		certificationRepo: NewCertificationRepo(db),
		journeyRepo:       NewJourneyRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) CertificationRepo() *CertificationRepo {
	return d.certificationRepo
}

func (d Database) JourneyRepo() *JourneyRepo {
	return d.journeyRepo
}

// AutoMigrate creates or updates the schema for every model, including the
// unique indexes that back natural-key conflict detection.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Project{},
		&models.Certification{},
		&models.JourneyItem{},
	)
}
