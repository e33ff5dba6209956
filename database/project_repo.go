package database

import (
	"encoding/json"
	"fmt"

	"github.com/amontes/portfolio-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectFilter narrows a project listing. Every supplied filter is applied
// conjunctively.
type ProjectFilter struct {
	Search   string   // case-insensitive substring over name OR details
	Skills   []string // array containment: project must carry every listed skill
	HasImage *bool
}

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// List returns one page of projects plus the exact total matching the filter.
// sortBy and sortOrder are validated against an allow-list upstream.
func (r *ProjectRepo) List(filter ProjectFilter, sortBy, sortOrder string, offset, limit int) ([]models.Project, int64, error) {
	query := r.db.Model(&models.Project{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR details ILIKE ?", pattern, pattern)
	}
	if len(filter.Skills) > 0 {
		contained, err := json.Marshal(filter.Skills)
		if err != nil {
			return nil, 0, err
		}
		query = query.Where("skills @> ?::jsonb", string(contained))
	}
	if filter.HasImage != nil {
		if *filter.HasImage {
			query = query.Where("image_url IS NOT NULL")
		} else {
			query = query.Where("image_url IS NULL")
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []models.Project
	err := query.
		Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).
		Offset(offset).
		Limit(limit).
		Find(&projects).Error
	return projects, total, err
}

// FindByID returns a project by its ID
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByName looks a project up by its natural key, optionally excluding one
// id (the record being updated). Returns (nil, nil) when no match exists.
func (r *ProjectRepo) FindByName(name string, excludeID uuid.UUID) (*models.Project, error) {
	query := r.db.Where("name = ?", name)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	var project models.Project
	err := query.First(&project).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(project *models.Project) error {
	return r.db.Create(project).Error
}

// Update applies a partial update. Only the provided columns change.
func (r *ProjectRepo) Update(id uuid.UUID, updates map[string]any) error {
	result := r.db.Model(&models.Project{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a project from the database by id
func (r *ProjectRepo) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Project{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
