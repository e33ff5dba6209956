package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project represents a portfolio project with an optional stored image
type Project struct {
	ID         uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name       string                      `json:"name" db:"name" gorm:"type:varchar(255);not null;uniqueIndex"`
	Details    string                      `json:"details" db:"details" gorm:"type:text;not null"`
	Skills     datatypes.JSONSlice[string] `json:"skills" db:"skills" gorm:"not null"`
	DemoLink   string                      `json:"demo_link,omitempty" db:"demo_link" gorm:"type:text"`
	GithubLink string                      `json:"github_link,omitempty" db:"github_link" gorm:"type:text"`
	ImageURL   *string                     `json:"image_url" db:"image_url" gorm:"type:text"`
	HasImage   bool                        `json:"has_image" gorm:"-"`
	CreatedAt  time.Time                   `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time                   `json:"updated_at" db:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}

func (p *Project) refreshDerived() {
	p.HasImage = p.ImageURL != nil && *p.ImageURL != ""
	if p.Skills == nil {
		p.Skills = datatypes.JSONSlice[string]{}
	}
}

func (p *Project) AfterFind(tx *gorm.DB) error {
	p.refreshDerived()
	return nil
}

func (p *Project) AfterCreate(tx *gorm.DB) error {
	p.refreshDerived()
	return nil
}

func (p *Project) AfterSave(tx *gorm.DB) error {
	p.refreshDerived()
	return nil
}
