package database

import (
	"fmt"

	"github.com/amontes/portfolio-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CertificationFilter narrows a certification listing.
type CertificationFilter struct {
	Search string // case-insensitive substring over title OR issuer
	Issuer string // exact issuer match
}

type CertificationRepo struct {
	db *gorm.DB
}

func NewCertificationRepo(db *gorm.DB) *CertificationRepo {
	return &CertificationRepo{db}
}

// List returns one page of certifications plus the exact total matching the
// filter. sortBy and sortOrder are validated against an allow-list upstream.
func (r *CertificationRepo) List(filter CertificationFilter, sortBy, sortOrder string, offset, limit int) ([]models.Certification, int64, error) {
	query := r.db.Model(&models.Certification{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR issuer ILIKE ?", pattern, pattern)
	}
	if filter.Issuer != "" {
		query = query.Where("issuer = ?", filter.Issuer)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var certifications []models.Certification
	err := query.
		Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).
		Offset(offset).
		Limit(limit).
		Find(&certifications).Error
	return certifications, total, err
}

// FindByID returns a certification by its ID
func (r *CertificationRepo) FindByID(id uuid.UUID) (*models.Certification, error) {
	var certification models.Certification
	err := r.db.First(&certification, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &certification, nil
}

// FindByTitleAndIssuer looks a certification up by its natural key, optionally
// excluding one id. Returns (nil, nil) when no match exists.
func (r *CertificationRepo) FindByTitleAndIssuer(title, issuer string, excludeID uuid.UUID) (*models.Certification, error) {
	query := r.db.Where("title = ? AND issuer = ?", title, issuer)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	var certification models.Certification
	err := query.First(&certification).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &certification, nil
}

// Add inserts a new certification into the database
func (r *CertificationRepo) Add(certification *models.Certification) error {
	return r.db.Create(certification).Error
}

// Update applies a partial update. Only the provided columns change.
func (r *CertificationRepo) Update(id uuid.UUID, updates map[string]any) error {
	result := r.db.Model(&models.Certification{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a certification from the database by id
func (r *CertificationRepo) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Certification{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
