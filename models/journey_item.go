package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	JourneyTypeExperience = "Experience"
	JourneyTypeEducation  = "Education"
	JourneyTypeVolunteer  = "Volunteer"
)

func ValidJourneyType(journeyType string) bool {
	switch journeyType {
	case JourneyTypeExperience, JourneyTypeEducation, JourneyTypeVolunteer:
		return true
	}
	return false
}

// JourneyItem represents one entry of a career timeline. The (title,
// company_name) pair is the natural key. An item without an end date is
// still ongoing.
type JourneyItem struct {
	ID          uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title       string     `json:"title" db:"title" gorm:"type:varchar(255);not null;uniqueIndex:idx_journey_items_title_company"`
	CompanyName string     `json:"company_name" db:"company_name" gorm:"type:varchar(255);not null;uniqueIndex:idx_journey_items_title_company"`
	StartDate   time.Time  `json:"start_date" db:"start_date" gorm:"type:date;not null"`
	EndDate     *time.Time `json:"end_date" db:"end_date" gorm:"type:date"`
	Details     string     `json:"details" db:"details" gorm:"type:text;not null"`
	JourneyType string     `json:"journey_type" db:"journey_type" gorm:"type:varchar(32);not null"`
	IsCurrent   bool       `json:"is_current" gorm:"-"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

func (JourneyItem) TableName() string {
	return "journey_items"
}

func (j *JourneyItem) refreshDerived() {
	j.IsCurrent = j.EndDate == nil
}

func (j *JourneyItem) AfterFind(tx *gorm.DB) error {
	j.refreshDerived()
	return nil
}

func (j *JourneyItem) AfterCreate(tx *gorm.DB) error {
	j.refreshDerived()
	return nil
}

func (j *JourneyItem) AfterSave(tx *gorm.DB) error {
	j.refreshDerived()
	return nil
}
