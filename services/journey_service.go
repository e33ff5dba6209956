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

// JourneyRepository is the slice of the store the journey service needs.
type JourneyRepository interface {
	List(filter database.JourneyFilter, sortBy, sortOrder string, offset, limit int) ([]models.JourneyItem, int64, error)
	FindByID(id uuid.UUID) (*models.JourneyItem, error)
	FindByTitleAndCompany(title, companyName string, excludeID uuid.UUID) (*models.JourneyItem, error)
	Add(item *models.JourneyItem) error
	Update(id uuid.UUID, updates map[string]any) error
	Delete(id uuid.UUID) error
}

type JourneyCreateInput struct {
	Title       string
	CompanyName string
	StartDate   time.Time
	EndDate     *time.Time
	Details     string
	JourneyType string
}

type JourneyUpdateInput struct {
	Title       *string
	CompanyName *string
	StartDate   *time.Time
	EndDate     *time.Time
	Details     *string
	JourneyType *string
}

type JourneyService struct {
	repo   JourneyRepository
	logger zerolog.Logger
}

func NewJourneyService(repo JourneyRepository) *JourneyService {
	return &JourneyService{
		repo:   repo,
		logger: log.With().Str("serviceName", "journeyService").Logger(),
	}
}

func (s *JourneyService) List(query ListQuery, filter database.JourneyFilter) ([]models.JourneyItem, Pagination, error) {
	items, total, err := s.repo.List(filter, query.SortBy, query.SortOrder, query.Offset(), query.Limit)
	if err != nil {
		return nil, Pagination{}, errs.NewDatabaseError("list", "journey items", err)
	}
	return items, NewPagination(query.Page, query.Limit, total), nil
}

func (s *JourneyService) ByType(journeyType string, page, limit int) ([]models.JourneyItem, Pagination, error) {
	if !models.ValidJourneyType(journeyType) {
		return nil, Pagination{}, errs.NewValidationErr().
			Add("journey_type", "must be one of Experience, Education, Volunteer")
	}
	return s.List(
		ListQuery{Page: page, Limit: limit, SortBy: "start_date", SortOrder: "desc"},
		database.JourneyFilter{Type: journeyType},
	)
}

// Current returns the ongoing items, newest first.
func (s *JourneyService) Current() ([]models.JourneyItem, error) {
	current := true
	items, _, err := s.repo.List(
		database.JourneyFilter{Current: &current},
		"start_date", "desc", 0, 100,
	)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "journey items", err)
	}
	return items, nil
}

func (s *JourneyService) Get(id uuid.UUID) (*models.JourneyItem, error) {
	item, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFound("journey item")
		}
		return nil, errs.NewDatabaseError("find", "journey item", err)
	}
	return item, nil
}

func (s *JourneyService) Create(input JourneyCreateInput) (*models.JourneyItem, error) {
	if err := checkDateOrder(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByTitleAndCompany(input.Title, input.CompanyName, uuid.Nil)
	if err != nil {
		return nil, errs.NewDatabaseError("check for existing", "journey item", err)
	}
	if existing != nil {
		return nil, errs.NewDuplicateError("journey item", "title and company_name")
	}

	item := &models.JourneyItem{
		Title:       input.Title,
		CompanyName: input.CompanyName,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Details:     input.Details,
		JourneyType: input.JourneyType,
	}
	if err := s.repo.Add(item); err != nil {
		return nil, errs.NewDatabaseError("create", "journey item", err)
	}

	return s.Get(item.ID)
}

func (s *JourneyService) Update(id uuid.UUID, input JourneyUpdateInput) (*models.JourneyItem, error) {
	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	// end_date must stay strictly after the start date it will end up paired
	// with, whether either side is part of this update or not
	startDate := existing.StartDate
	if input.StartDate != nil {
		startDate = *input.StartDate
	}
	endDate := existing.EndDate
	if input.EndDate != nil {
		endDate = input.EndDate
	}
	if err := checkDateOrder(startDate, endDate); err != nil {
		return nil, err
	}

	title := existing.Title
	if input.Title != nil {
		title = *input.Title
	}
	companyName := existing.CompanyName
	if input.CompanyName != nil {
		companyName = *input.CompanyName
	}
	if title != existing.Title || companyName != existing.CompanyName {
		conflict, err := s.repo.FindByTitleAndCompany(title, companyName, id)
		if err != nil {
			return nil, errs.NewDatabaseError("check for existing", "journey item", err)
		}
		if conflict != nil {
			return nil, errs.NewDuplicateError("journey item", "title and company_name")
		}
	}

	updates := make(map[string]any)
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.CompanyName != nil {
		updates["company_name"] = *input.CompanyName
	}
	if input.StartDate != nil {
		updates["start_date"] = *input.StartDate
	}
	if input.EndDate != nil {
		updates["end_date"] = *input.EndDate
	}
	if input.Details != nil {
		updates["details"] = *input.Details
	}
	if input.JourneyType != nil {
		updates["journey_type"] = *input.JourneyType
	}

	if len(updates) > 0 {
		if err := s.repo.Update(id, updates); err != nil {
			return nil, errs.NewDatabaseError("update", "journey item", err)
		}
	}

	return s.Get(id)
}

func (s *JourneyService) Delete(id uuid.UUID) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewNotFound("journey item")
		}
		return errs.NewDatabaseError("delete", "journey item", err)
	}
	return nil
}

func checkDateOrder(startDate time.Time, endDate *time.Time) error {
	if endDate != nil && !endDate.After(startDate) {
		return errs.NewValidationErr().Add("end_date", "must be after start_date")
	}
	return nil
}
