package database

import (
	"fmt"

	"github.com/amontes/portfolio-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JourneyFilter narrows a journey listing.
type JourneyFilter struct {
	Search  string // case-insensitive substring over title OR company_name
	Type    string // exact journey_type match
	Current *bool  // true: end_date IS NULL, false: end_date IS NOT NULL
}

type JourneyRepo struct {
	db *gorm.DB
}

func NewJourneyRepo(db *gorm.DB) *JourneyRepo {
	return &JourneyRepo{db}
}

// List returns one page of journey items plus the exact total matching the
// filter. sortBy and sortOrder are validated against an allow-list upstream.
func (r *JourneyRepo) List(filter JourneyFilter, sortBy, sortOrder string, offset, limit int) ([]models.JourneyItem, int64, error) {
	query := r.db.Model(&models.JourneyItem{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR company_name ILIKE ?", pattern, pattern)
	}
	if filter.Type != "" {
		query = query.Where("journey_type = ?", filter.Type)
	}
	if filter.Current != nil {
		if *filter.Current {
			query = query.Where("end_date IS NULL")
		} else {
			query = query.Where("end_date IS NOT NULL")
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.JourneyItem
	err := query.
		Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	return items, total, err
}

// FindByID returns a journey item by its ID
func (r *JourneyRepo) FindByID(id uuid.UUID) (*models.JourneyItem, error) {
	var item models.JourneyItem
	err := r.db.First(&item, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByTitleAndCompany looks a journey item up by its natural key, optionally
// excluding one id. Returns (nil, nil) when no match exists.
func (r *JourneyRepo) FindByTitleAndCompany(title, companyName string, excludeID uuid.UUID) (*models.JourneyItem, error) {
	query := r.db.Where("title = ? AND company_name = ?", title, companyName)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	var item models.JourneyItem
	err := query.First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Add inserts a new journey item into the database
func (r *JourneyRepo) Add(item *models.JourneyItem) error {
	return r.db.Create(item).Error
}

// Update applies a partial update. Only the provided columns change.
func (r *JourneyRepo) Update(id uuid.UUID, updates map[string]any) error {
	result := r.db.Model(&models.JourneyItem{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a journey item from the database by id
func (r *JourneyRepo) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.JourneyItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
