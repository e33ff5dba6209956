package services

import (
	"errors"
	"time"

	"github.com/amontes/portfolio-backend/database"
	"github.com/amontes/portfolio-backend/errs"
	"github.com/amontes/portfolio-backend/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CertificationRepository is the slice of the store the certification service needs.
type CertificationRepository interface {
	List(filter database.CertificationFilter, sortBy, sortOrder string, offset, limit int) ([]models.Certification, int64, error)
	FindByID(id uuid.UUID) (*models.Certification, error)
	FindByTitleAndIssuer(title, issuer string, excludeID uuid.UUID) (*models.Certification, error)
	Add(certification *models.Certification) error
	Update(id uuid.UUID, updates map[string]any) error
	Delete(id uuid.UUID) error
}

type CertificationCreateInput struct {
	Title           string
	Issuer          string
	IssuedDate      time.Time
	CertificationID string
	Details         string
	LinkURL         string
}

type CertificationUpdateInput struct {
	Title           *string
	Issuer          *string
	IssuedDate      *time.Time
	CertificationID *string
	Details         *string
	LinkURL         *string
}

type CertificationService struct {
	repo   CertificationRepository
	logger zerolog.Logger
}

func NewCertificationService(repo CertificationRepository) *CertificationService {
	return &CertificationService{
		repo:   repo,
		logger: log.With().Str("serviceName", "certificationService").Logger(),
	}
}

func (s *CertificationService) List(query ListQuery, filter database.CertificationFilter) ([]models.Certification, Pagination, error) {
	certifications, total, err := s.repo.List(filter, query.SortBy, query.SortOrder, query.Offset(), query.Limit)
	if err != nil {
		return nil, Pagination{}, errs.NewDatabaseError("list", "certifications", err)
	}
	return certifications, NewPagination(query.Page, query.Limit, total), nil
}

func (s *CertificationService) ByIssuer(issuer string, page, limit int) ([]models.Certification, Pagination, error) {
	return s.List(
		ListQuery{Page: page, Limit: limit, SortBy: "issued_date", SortOrder: "desc"},
		database.CertificationFilter{Issuer: issuer},
	)
}

func (s *CertificationService) Get(id uuid.UUID) (*models.Certification, error) {
	certification, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFound("certification")
		}
		return nil, errs.NewDatabaseError("find", "certification", err)
	}
	return certification, nil
}

func (s *CertificationService) Create(input CertificationCreateInput) (*models.Certification, error) {
	existing, err := s.repo.FindByTitleAndIssuer(input.Title, input.Issuer, uuid.Nil)
	if err != nil {
		return nil, errs.NewDatabaseError("check for existing", "certification", err)
	}
	if existing != nil {
		return nil, errs.NewDuplicateError("certification", "title and issuer")
	}

	certification := &models.Certification{
		Title:           input.Title,
		Issuer:          input.Issuer,
		IssuedDate:      input.IssuedDate,
		CertificationID: input.CertificationID,
		Details:         input.Details,
		LinkURL:         input.LinkURL,
	}
	if err := s.repo.Add(certification); err != nil {
		return nil, errs.NewDatabaseError("create", "certification", err)
	}

	return s.Get(certification.ID)
}

func (s *CertificationService) Update(id uuid.UUID, input CertificationUpdateInput) (*models.Certification, error) {
	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	// the natural key spans two fields: resolve each side to its updated or
	// existing value before checking for a collision
	title := existing.Title
	if input.Title != nil {
		title = *input.Title
	}
	issuer := existing.Issuer
	if input.Issuer != nil {
		issuer = *input.Issuer
	}
	if title != existing.Title || issuer != existing.Issuer {
		conflict, err := s.repo.FindByTitleAndIssuer(title, issuer, id)
		if err != nil {
			return nil, errs.NewDatabaseError("check for existing", "certification", err)
		}
		if conflict != nil {
			return nil, errs.NewDuplicateError("certification", "title and issuer")
		}
	}

	updates := make(map[string]any)
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Issuer != nil {
		updates["issuer"] = *input.Issuer
	}
	if input.IssuedDate != nil {
		updates["issued_date"] = *input.IssuedDate
	}
	if input.CertificationID != nil {
		updates["certification_id"] = *input.CertificationID
	}
	if input.Details != nil {
		updates["details"] = *input.Details
	}
	if input.LinkURL != nil {
		updates["link_url"] = *input.LinkURL
	}

	if len(updates) > 0 {
		if err := s.repo.Update(id, updates); err != nil {
			return nil, errs.NewDatabaseError("update", "certification", err)
		}
	}

	return s.Get(id)
}

func (s *CertificationService) Delete(id uuid.UUID) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewNotFound("certification")
		}
		return errs.NewDatabaseError("delete", "certification", err)
	}
	return nil
}
