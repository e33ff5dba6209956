package models

import (
	"time"

	"github.com/google/uuid"
)

// Certification represents a professional certification. The (title, issuer)
// pair is the natural key.
type Certification struct {
	ID              uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title           string    `json:"title" db:"title" gorm:"type:varchar(255);not null;uniqueIndex:idx_certifications_title_issuer"`
	Issuer          string    `json:"issuer" db:"issuer" gorm:"type:varchar(255);not null;uniqueIndex:idx_certifications_title_issuer"`
	IssuedDate      time.Time `json:"issued_date" db:"issued_date" gorm:"type:date;not null"`
	CertificationID string    `json:"certification_id,omitempty" db:"certification_id" gorm:"type:text"`
	Details         string    `json:"details,omitempty" db:"details" gorm:"type:text"`
	LinkURL         string    `json:"link_url,omitempty" db:"link_url" gorm:"type:text"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

func (Certification) TableName() string {
	return "certifications"
}
