package services

import (
	"context"
	"errors"

	"github.com/amontes/portfolio-backend/database"
	"github.com/amontes/portfolio-backend/errs"
	"github.com/amontes/portfolio-backend/models"
	"github.com/amontes/portfolio-backend/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProjectRepository is the slice of the store the project service needs.
type ProjectRepository interface {
	List(filter database.ProjectFilter, sortBy, sortOrder string, offset, limit int) ([]models.Project, int64, error)
	FindByID(id uuid.UUID) (*models.Project, error)
	FindByName(name string, excludeID uuid.UUID) (*models.Project, error)
	Add(project *models.Project) error
	Update(id uuid.UUID, updates map[string]any) error
	Delete(id uuid.UUID) error
}

type ProjectCreateInput struct {
	Name       string
	Details    string
	Skills     []string
	DemoLink   string
	GithubLink string
	Image      *ImageUpload
}

type ProjectUpdateInput struct {
	Name       *string
	Details    *string
	Skills     *[]string
	DemoLink   *string
	GithubLink *string
	Image      *ImageUpload
}

type ProjectService struct {
	repo   ProjectRepository
	images storage.ImageStore
	logger zerolog.Logger
}

func NewProjectService(repo ProjectRepository, images storage.ImageStore) *ProjectService {
	return &ProjectService{
		repo:   repo,
		images: images,
		logger: log.With().Str("serviceName", "projectService").Logger(),
	}
}

func (s *ProjectService) List(query ListQuery, filter database.ProjectFilter) ([]models.Project, Pagination, error) {
	projects, total, err := s.repo.List(filter, query.SortBy, query.SortOrder, query.Offset(), query.Limit)
	if err != nil {
		return nil, Pagination{}, errs.NewDatabaseError("list", "projects", err)
	}
	return projects, NewPagination(query.Page, query.Limit, total), nil
}

func (s *ProjectService) Search(searchQuery string, page, limit int) ([]models.Project, Pagination, error) {
	return s.List(
		ListQuery{Page: page, Limit: limit, SortBy: "created_at", SortOrder: "desc"},
		database.ProjectFilter{Search: searchQuery},
	)
}

func (s *ProjectService) Get(id uuid.UUID) (*models.Project, error) {
	project, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFound("project")
		}
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	return project, nil
}

// Create runs the write workflow: conflict check, optional image upload,
// insert, compensating image delete when the insert fails.
func (s *ProjectService) Create(ctx context.Context, input ProjectCreateInput) (*models.Project, error) {
	existing, err := s.repo.FindByName(input.Name, uuid.Nil)
	if err != nil {
		return nil, errs.NewDatabaseError("check for existing", "project", err)
	}
	if existing != nil {
		return nil, errs.NewDuplicateError("project", "name")
	}

	var stored *storage.StoredImage
	if input.Image != nil {
		stored, err = s.images.Store(ctx, input.Image.Data, input.Image.MimeType, input.Image.FileName)
		if err != nil {
			return nil, err
		}
	}

	skills := input.Skills
	if skills == nil {
		skills = []string{}
	}
	project := &models.Project{
		Name:       input.Name,
		Details:    input.Details,
		Skills:     datatypes.JSONSlice[string](skills),
		DemoLink:   input.DemoLink,
		GithubLink: input.GithubLink,
	}
	if stored != nil {
		project.ImageURL = &stored.URL
	}

	if err := s.repo.Add(project); err != nil {
		if stored != nil {
			s.removeImage(ctx, stored.Name)
		}
		return nil, errs.NewDatabaseError("create", "project", err)
	}

	return s.Get(project.ID)
}

// Update applies a partial update. A fresh image replaces the stored one; the
// old blob is deleted only after the record update succeeded. Without a file
// the existing image_url is preserved.
func (s *ProjectService) Update(ctx context.Context, id uuid.UUID, input ProjectUpdateInput) (*models.Project, error) {
	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != existing.Name {
		conflict, err := s.repo.FindByName(*input.Name, id)
		if err != nil {
			return nil, errs.NewDatabaseError("check for existing", "project", err)
		}
		if conflict != nil {
			return nil, errs.NewDuplicateError("project", "name")
		}
	}

	var stored *storage.StoredImage
	if input.Image != nil {
		stored, err = s.images.Store(ctx, input.Image.Data, input.Image.MimeType, input.Image.FileName)
		if err != nil {
			return nil, err
		}
	}

	updates := make(map[string]any)
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Details != nil {
		updates["details"] = *input.Details
	}
	if input.Skills != nil {
		updates["skills"] = datatypes.JSONSlice[string](*input.Skills)
	}
	if input.DemoLink != nil {
		updates["demo_link"] = *input.DemoLink
	}
	if input.GithubLink != nil {
		updates["github_link"] = *input.GithubLink
	}
	if stored != nil {
		updates["image_url"] = stored.URL
	}

	if len(updates) > 0 {
		if err := s.repo.Update(id, updates); err != nil {
			if stored != nil {
				s.removeImage(ctx, stored.Name)
			}
			return nil, errs.NewDatabaseError("update", "project", err)
		}
	}

	// the record now points at the new blob, the old one is orphaned
	if stored != nil && existing.ImageURL != nil && *existing.ImageURL != "" {
		s.removeImage(ctx, storage.FileNameFromURL(*existing.ImageURL))
	}

	return s.Get(id)
}

// Delete removes the record and best-effort deletes its stored image.
func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.Get(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewNotFound("project")
		}
		return errs.NewDatabaseError("delete", "project", err)
	}

	if existing.ImageURL != nil && *existing.ImageURL != "" {
		s.removeImage(ctx, storage.FileNameFromURL(*existing.ImageURL))
	}
	return nil
}

// StoreImage uploads a standalone image without touching any record.
func (s *ProjectService) StoreImage(ctx context.Context, upload ImageUpload) (*storage.StoredImage, error) {
	return s.images.Store(ctx, upload.Data, upload.MimeType, upload.FileName)
}

// removeImage is a compensating action: its failure is logged and swallowed
// so the caller's outcome is decided by the original operation alone.
func (s *ProjectService) removeImage(ctx context.Context, name string) {
	if name == "" {
		return
	}
	if err := s.images.Remove(ctx, name); err != nil {
		s.logger.Error().Err(err).Str("image", name).Msg("best-effort image cleanup failed")
	}
}
