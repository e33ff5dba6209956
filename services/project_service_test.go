package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/amontes/portfolio-backend/database"
	"github.com/amontes/portfolio-backend/errs"
	"github.com/amontes/portfolio-backend/models"
	"github.com/amontes/portfolio-backend/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringPtr(s string) *string { return &s }

func seedProject(repo *fakeProjectRepo, name string, imageURL *string) *models.Project {
	project := &models.Project{
		ID:       uuid.New(),
		Name:     name,
		Details:  "details long enough for the schema",
		ImageURL: imageURL,
	}
	repo.projects = append(repo.projects, project)
	return project
}

func TestProjectCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the record and defaults skills to an empty slice", func(t *testing.T) {
		repo := &fakeProjectRepo{}
		images := &fakeImageStore{}
		service := services.NewProjectService(repo, images)

		project, err := service.Create(ctx, services.ProjectCreateInput{
			Name:    "Telemetry Dashboard",
			Details: "A dashboard for fleet telemetry",
		})
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, project.ID)
		assert.Equal(t, "Telemetry Dashboard", project.Name)
		assert.NotNil(t, project.Skills)
		assert.Len(t, project.Skills, 0)
		assert.False(t, project.HasImage)
		assert.NotZero(t, project.CreatedAt)
	})

	t.Run("rejects a duplicate name without touching the image store", func(t *testing.T) {
		repo := &fakeProjectRepo{}
		images := &fakeImageStore{}
		seedProject(repo, "Telemetry Dashboard", nil)
		service := services.NewProjectService(repo, images)

		_, err := service.Create(ctx, services.ProjectCreateInput{
			Name:    "Telemetry Dashboard",
			Details: "a second take on the same idea",
			Image:   &services.ImageUpload{Data: []byte("fake"), MimeType: "image/png", FileName: "a.png"},
		})
		require.Error(t, err)

		assert.True(t, errors.Is(err, errs.ErrAlreadyExists))
		var apiErr *errs.ApiErr
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 400, apiErr.StatusCode)
		assert.Zero(t, images.storeCalls)
		assert.Len(t, repo.projects, 1)
	})

	t.Run("different names never conflict", func(t *testing.T) {
		repo := &fakeProjectRepo{}
		service := services.NewProjectService(repo, &fakeImageStore{})
		seedProject(repo, "Telemetry Dashboard", nil)

		_, err := service.Create(ctx, services.ProjectCreateInput{
			Name:    "Telemetry Dashboard v2",
			Details: "a second take on the same idea",
		})
		assert.NoError(t, err)
	})

	t.Run("attaches the uploaded image URL", func(t *testing.T) {
		repo := &fakeProjectRepo{}
		images := &fakeImageStore{}
		service := services.NewProjectService(repo, images)

		project, err := service.Create(ctx, services.ProjectCreateInput{
			Name:    "Gallery",
			Details: "a photo gallery experiment",
			Image:   &services.ImageUpload{Data: []byte("fake-bytes"), MimeType: "image/png", FileName: "cover.png"},
		})
		require.NoError(t, err)

		require.NotNil(t, project.ImageURL)
		assert.Equal(t, "https://blob.example.com/project-images/image-1.png", *project.ImageURL)
		assert.True(t, project.HasImage)
	})

	t.Run("upload failure aborts before persistence", func(t *testing.T) {
		repo := &fakeProjectRepo{}
		images := &fakeImageStore{storeErr: errs.NewUploadFailedError(errors.New("bucket gone"))}
		service := services.NewProjectService(repo, images)

		_, err := service.Create(ctx, services.ProjectCreateInput{
			Name:    "Gallery",
			Details: "a photo gallery experiment",
			Image:   &services.ImageUpload{Data: []byte("fake"), MimeType: "image/png", FileName: "cover.png"},
		})
		require.Error(t, err)

		assert.True(t, errs.IsUploadFailed(err))
		assert.Empty(t, repo.projects)
	})

	t.Run("persistence failure compensates by deleting the fresh image", func(t *testing.T) {
		repo := &fakeProjectRepo{addErr: errors.New("connection reset")}
		images := &fakeImageStore{}
		service := services.NewProjectService(repo, images)

		_, err := service.Create(ctx, services.ProjectCreateInput{
			Name:    "Gallery",
			Details: "a photo gallery experiment",
			Image:   &services.ImageUpload{Data: []byte("fake"), MimeType: "image/png", FileName: "cover.png"},
		})
		require.Error(t, err)

		// the caller sees the persistence failure, not an upload error
		assert.False(t, errs.IsUploadFailed(err))
		assert.True(t, errors.Is(err, errs.ErrDatabaseQuery))
		// the orphaned blob is gone
		assert.Equal(t, []string{"image-1.png"}, images.removed)
		assert.Empty(t, images.stored)
	})

	t.Run("compensation failure is swallowed", func(t *testing.T) {
		repo := &fakeProjectRepo{addErr: errors.New("connection reset")}
		images := &fakeImageStore{removeErr: errors.New("delete refused")}
		service := services.NewProjectService(repo, images)

		_, err := service.Create(ctx, services.ProjectCreateInput{
			Name:    "Gallery",
			Details: "a photo gallery experiment",
			Image:   &services.ImageUpload{Data: []byte("fake"), MimeType: "image/png", FileName: "cover.png"},
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrDatabaseQuery))
	})
}

func TestProjectUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("without a file the existing image is preserved", func(t *testing.T) {
		repo := &fakeProjectRepo{}
		images := &fakeImageStore{}
		existingURL := "https://blob.example.com/project-images/old.png"
		existing := seedProject(repo, "Gallery", &existingURL)
		service := services.NewProjectService(repo, images)

		updated, err := service.Update(ctx, existing.ID, services.ProjectUpdateInput{
			Details: stringPtr("a fresh description, still long"),
		})
		require.NoError(t, err)

		require.NotNil(t, updated.ImageURL)
		assert.Equal(t, existingURL, *updated.ImageURL)
		assert.Empty(t, images.removed)
	})

	t.Run("a fresh file replaces the image and deletes the old blob", func(t *testing.T) {
		repo := &fakeProjectRepo{}
		images := &fakeImageStore{}
		existingURL := "https://blob.example.com/project-images/old.png"
		existing := seedProject(repo, "Gallery", &existingURL)
		service := services.NewProjectService(repo, images)

		updated, err := service.Update(ctx, existing.ID, services.ProjectUpdateInput{
			Image: &services.ImageUpload{Data: []byte("fresh"), MimeType: "image/png", FileName: "new.png"},
		})
		require.NoError(t, err)

		require.NotNil(t, updated.ImageURL)
		assert.Equal(t, "https://blob.example.com/project-images/image-1.png", *updated.ImageURL)
		// old blob removed only after the record update succeeded
		assert.Equal(t, []string{"old.png"}, images.removed)
	})

	t.Run("persistence failure removes the fresh blob, never the old one", func(t *testing.T) {
		repo := &fakeProjectRepo{updateErr: errors.New("connection reset")}
		images := &fakeImageStore{}
		existingURL := "https://blob.example.com/project-images/old.png"
		existing := seedProject(repo, "Gallery", &existingURL)
		service := services.NewProjectService(repo, images)

		_, err := service.Update(ctx, existing.ID, services.ProjectUpdateInput{
			Image: &services.ImageUpload{Data: []byte("fresh"), MimeType: "image/png", FileName: "new.png"},
		})
		require.Error(t, err)

		assert.Equal(t, []string{"image-1.png"}, images.removed)
	})

	t.Run("renaming onto another project's name conflicts", func(t *testing.T) {
		repo := &fakeProjectRepo{}
		service := services.NewProjectService(repo, &fakeImageStore{})
		seedProject(repo, "Gallery", nil)
		other := seedProject(repo, "Dashboard", nil)

		_, err := service.Update(ctx, other.ID, services.ProjectUpdateInput{
			Name: stringPtr("Gallery"),
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrAlreadyExists))
	})

	t.Run("keeping the same name does not conflict with itself", func(t *testing.T) {
		repo := &fakeProjectRepo{}
		service := services.NewProjectService(repo, &fakeImageStore{})
		existing := seedProject(repo, "Gallery", nil)

		_, err := service.Update(ctx, existing.ID, services.ProjectUpdateInput{
			Name:    stringPtr("Gallery"),
			Details: stringPtr("describing the gallery again"),
		})
		assert.NoError(t, err)
	})

	t.Run("unknown id yields not found", func(t *testing.T) {
		service := services.NewProjectService(&fakeProjectRepo{}, &fakeImageStore{})

		_, err := service.Update(ctx, uuid.New(), services.ProjectUpdateInput{
			Details: stringPtr("describing nothing at all"),
		})
		require.Error(t, err)
		assert.True(t, errs.IsNotFound(err))
	})
}

func TestProjectDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the stored image alongside the record", func(t *testing.T) {
		repo := &fakeProjectRepo{}
		images := &fakeImageStore{}
		existingURL := "https://blob.example.com/project-images/cover.png"
		existing := seedProject(repo, "Gallery", &existingURL)
		service := services.NewProjectService(repo, images)

		require.NoError(t, service.Delete(ctx, existing.ID))

		assert.Empty(t, repo.projects)
		assert.Equal(t, []string{"cover.png"}, images.removed)
	})

	t.Run("unknown id yields not found", func(t *testing.T) {
		service := services.NewProjectService(&fakeProjectRepo{}, &fakeImageStore{})
		err := service.Delete(ctx, uuid.New())
		require.Error(t, err)
		assert.True(t, errs.IsNotFound(err))
	})
}

func TestProjectList(t *testing.T) {
	repo := &fakeProjectRepo{}
	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		seedProject(repo, name, nil)
	}
	service := services.NewProjectService(repo, &fakeImageStore{})

	projects, pagination, err := service.List(
		services.ListQuery{Page: 1, Limit: 2, SortBy: "created_at", SortOrder: "desc"},
		database.ProjectFilter{},
	)
	require.NoError(t, err)

	assert.Len(t, projects, 2)
	assert.Equal(t, int64(3), pagination.Total)
	assert.Equal(t, 2, pagination.Pages)
	assert.True(t, pagination.HasNext)
	assert.False(t, pagination.HasPrev)
}
