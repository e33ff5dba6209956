package services_test

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/amontes/portfolio-backend/database"
	"github.com/amontes/portfolio-backend/models"
	"github.com/amontes/portfolio-backend/storage"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// fakeProjectRepo is an in-memory stand-in for the store with injectable
// failures.
type fakeProjectRepo struct {
	projects  []*models.Project
	addErr    error
	updateErr error
	deleteErr error
}

func (f *fakeProjectRepo) List(filter database.ProjectFilter, sortBy, sortOrder string, offset, limit int) ([]models.Project, int64, error) {
	var matched []models.Project
	for _, project := range f.projects {
		if filter.Search != "" &&
			!strings.Contains(strings.ToLower(project.Name), strings.ToLower(filter.Search)) &&
			!strings.Contains(strings.ToLower(project.Details), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.HasImage != nil && *filter.HasImage != (project.ImageURL != nil) {
			continue
		}
		copied := *project
		copied.AfterFind(nil)
		matched = append(matched, copied)
	}

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (f *fakeProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	for _, project := range f.projects {
		if project.ID == id {
			copied := *project
			copied.AfterFind(nil)
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProjectRepo) FindByName(name string, excludeID uuid.UUID) (*models.Project, error) {
	for _, project := range f.projects {
		if project.Name == name && project.ID != excludeID {
			copied := *project
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeProjectRepo) Add(project *models.Project) error {
	if f.addErr != nil {
		return f.addErr
	}
	project.ID = uuid.New()
	project.CreatedAt = time.Now()
	project.UpdatedAt = time.Now()
	copied := *project
	f.projects = append(f.projects, &copied)
	return nil
}

func (f *fakeProjectRepo) Update(id uuid.UUID, updates map[string]any) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	for _, project := range f.projects {
		if project.ID != id {
			continue
		}
		if name, ok := updates["name"].(string); ok {
			project.Name = name
		}
		if details, ok := updates["details"].(string); ok {
			project.Details = details
		}
		if skills, ok := updates["skills"].(datatypes.JSONSlice[string]); ok {
			project.Skills = skills
		}
		if demoLink, ok := updates["demo_link"].(string); ok {
			project.DemoLink = demoLink
		}
		if githubLink, ok := updates["github_link"].(string); ok {
			project.GithubLink = githubLink
		}
		if imageURL, ok := updates["image_url"].(string); ok {
			project.ImageURL = &imageURL
		}
		project.UpdatedAt = time.Now()
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeProjectRepo) Delete(id uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, project := range f.projects {
		if project.ID == id {
			f.projects = append(f.projects[:i], f.projects[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// fakeImageStore records uploads and removals without any network.
type fakeImageStore struct {
	storeErr   error
	removeErr  error
	storeCalls int
	stored     []string
	removed    []string
}

func (f *fakeImageStore) Store(ctx context.Context, data []byte, mimeType, originalName string) (*storage.StoredImage, error) {
	if f.storeErr != nil {
		return nil, f.storeErr
	}
	f.storeCalls++
	name := fmt.Sprintf("image-%d.png", f.storeCalls)
	f.stored = append(f.stored, name)
	return &storage.StoredImage{
		Name: name,
		URL:  "https://blob.example.com/project-images/" + name,
		Size: int64(len(data)),
	}, nil
}

func (f *fakeImageStore) Remove(ctx context.Context, name string) error {
	f.removed = append(f.removed, name)
	for i, stored := range f.stored {
		if stored == name {
			f.stored = append(f.stored[:i], f.stored[i+1:]...)
			break
		}
	}
	return f.removeErr
}

// fakeCertificationRepo mirrors fakeProjectRepo for certifications.
type fakeCertificationRepo struct {
	certifications []*models.Certification
	addErr         error
}

func (f *fakeCertificationRepo) List(filter database.CertificationFilter, sortBy, sortOrder string, offset, limit int) ([]models.Certification, int64, error) {
	var matched []models.Certification
	for _, certification := range f.certifications {
		if filter.Issuer != "" && certification.Issuer != filter.Issuer {
			continue
		}
		if filter.Search != "" &&
			!strings.Contains(strings.ToLower(certification.Title), strings.ToLower(filter.Search)) &&
			!strings.Contains(strings.ToLower(certification.Issuer), strings.ToLower(filter.Search)) {
			continue
		}
		matched = append(matched, *certification)
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (f *fakeCertificationRepo) FindByID(id uuid.UUID) (*models.Certification, error) {
	for _, certification := range f.certifications {
		if certification.ID == id {
			copied := *certification
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCertificationRepo) FindByTitleAndIssuer(title, issuer string, excludeID uuid.UUID) (*models.Certification, error) {
	for _, certification := range f.certifications {
		if certification.Title == title && certification.Issuer == issuer && certification.ID != excludeID {
			copied := *certification
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeCertificationRepo) Add(certification *models.Certification) error {
	if f.addErr != nil {
		return f.addErr
	}
	certification.ID = uuid.New()
	certification.CreatedAt = time.Now()
	certification.UpdatedAt = time.Now()
	copied := *certification
	f.certifications = append(f.certifications, &copied)
	return nil
}

func (f *fakeCertificationRepo) Update(id uuid.UUID, updates map[string]any) error {
	for _, certification := range f.certifications {
		if certification.ID != id {
			continue
		}
		if title, ok := updates["title"].(string); ok {
			certification.Title = title
		}
		if issuer, ok := updates["issuer"].(string); ok {
			certification.Issuer = issuer
		}
		if issuedDate, ok := updates["issued_date"].(time.Time); ok {
			certification.IssuedDate = issuedDate
		}
		if details, ok := updates["details"].(string); ok {
			certification.Details = details
		}
		certification.UpdatedAt = time.Now()
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeCertificationRepo) Delete(id uuid.UUID) error {
	for i, certification := range f.certifications {
		if certification.ID == id {
			f.certifications = append(f.certifications[:i], f.certifications[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// fakeJourneyRepo mirrors fakeProjectRepo for journey items.
type fakeJourneyRepo struct {
	items  []*models.JourneyItem
	addErr error
}

func (f *fakeJourneyRepo) List(filter database.JourneyFilter, sortBy, sortOrder string, offset, limit int) ([]models.JourneyItem, int64, error) {
	var matched []models.JourneyItem
	for _, item := range f.items {
		if filter.Type != "" && item.JourneyType != filter.Type {
			continue
		}
		if filter.Current != nil && *filter.Current != (item.EndDate == nil) {
			continue
		}
		copied := *item
		copied.AfterFind(nil)
		matched = append(matched, copied)
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (f *fakeJourneyRepo) FindByID(id uuid.UUID) (*models.JourneyItem, error) {
	for _, item := range f.items {
		if item.ID == id {
			copied := *item
			copied.AfterFind(nil)
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeJourneyRepo) FindByTitleAndCompany(title, companyName string, excludeID uuid.UUID) (*models.JourneyItem, error) {
	for _, item := range f.items {
		if item.Title == title && item.CompanyName == companyName && item.ID != excludeID {
			copied := *item
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeJourneyRepo) Add(item *models.JourneyItem) error {
	if f.addErr != nil {
		return f.addErr
	}
	item.ID = uuid.New()
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()
	copied := *item
	f.items = append(f.items, &copied)
	return nil
}

func (f *fakeJourneyRepo) Update(id uuid.UUID, updates map[string]any) error {
	for _, item := range f.items {
		if item.ID != id {
			continue
		}
		if title, ok := updates["title"].(string); ok {
			item.Title = title
		}
		if companyName, ok := updates["company_name"].(string); ok {
			item.CompanyName = companyName
		}
		if startDate, ok := updates["start_date"].(time.Time); ok {
			item.StartDate = startDate
		}
		if endDate, ok := updates["end_date"].(time.Time); ok {
			item.EndDate = &endDate
		}
		if details, ok := updates["details"].(string); ok {
			item.Details = details
		}
		if journeyType, ok := updates["journey_type"].(string); ok {
			item.JourneyType = journeyType
		}
		item.UpdatedAt = time.Now()
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeJourneyRepo) Delete(id uuid.UUID) error {
	for i, item := range f.items {
		if item.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}
