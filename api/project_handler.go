package api

import (
	"net/http"
	"strings"

	"github.com/amontes/portfolio-backend/database"
	"github.com/amontes/portfolio-backend/errs"
	"github.com/amontes/portfolio-backend/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder      Responder
	logger         zerolog.Logger
	service        *services.ProjectService
	maxUploadBytes int64
}

func newProjectHandler(service *services.ProjectService, maxUploadBytes int64) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		service:        service,
		maxUploadBytes: maxUploadBytes,
	}
}

// listProjects returns one page of projects, optionally filtered by search
// text, skills and image presence.
func (h projectHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, err := parseListQuery(r, projectSortColumns, "created_at")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		hasImage, err := parseBoolParam(r, "hasImage")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		filter := database.ProjectFilter{
			Search:   r.URL.Query().Get("search"),
			Skills:   parseSkillsParam(r),
			HasImage: hasImage,
		}

		projects, pagination, err := h.service.List(query, filter)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WritePage(w, "projects retrieved successfully", projects, pagination)
	}
}

// searchProjects is the dedicated text search endpoint.
func (h projectHandler) searchProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		searchQuery := strings.TrimSpace(r.URL.Query().Get("q"))
		if searchQuery == "" {
			h.responder.WriteError(w, errs.NewValidationErr().Add("q", "is required"))
			return
		}

		query, err := parseListQuery(r, projectSortColumns, "created_at")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projects, pagination, err := h.service.Search(searchQuery, query.Page, query.Limit)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSearch(w, "search completed successfully", projects, pagination, SearchMeta{
			Query:        searchQuery,
			Filters:      map[string]string{},
			TotalResults: pagination.Total,
		})
	}
}

func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseIDParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.service.Get(projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "project retrieved successfully", project)
	}
}

// createProject accepts JSON or multipart; a multipart request may carry a
// single image file.
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		upload, err := fileFromRequest(r, h.maxUploadBytes)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req projectCreateRequest
		if r.MultipartForm != nil {
			req = projectCreateFromForm(r)
			if err := checkStruct(&req); err != nil {
				h.responder.WriteError(w, err)
				return
			}
		} else if err := decodeAndValidate(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		input := req.toInput()
		input.Image = upload

		project, err := h.service.Create(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().
			Str("name", project.Name).
			Str("user", ctxUserID(r.Context())).
			Msg("project created")
		h.responder.WriteSuccess(w, http.StatusCreated, "project created successfully", project)
	}
}

// updateProject applies a partial update; a fresh file replaces the stored
// image, no file leaves it untouched.
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseIDParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		upload, err := fileFromRequest(r, h.maxUploadBytes)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req projectUpdateRequest
		if r.MultipartForm != nil {
			req = projectUpdateFromForm(r)
			if err := checkStruct(&req); err != nil {
				h.responder.WriteError(w, err)
				return
			}
		} else if err := decodeAndValidate(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		input := req.toInput()
		input.Image = upload

		project, err := h.service.Update(r.Context(), projectID, input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "project updated successfully", project)
	}
}

func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseIDParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.service.Delete(r.Context(), projectID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "project deleted successfully", nil)
	}
}

// uploadImage stores a standalone image and returns its name and public URL.
func (h projectHandler) uploadImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		upload, err := fileFromRequest(r, h.maxUploadBytes)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if upload == nil {
			h.responder.WriteError(w, errs.NewValidationErr().
				Add("image", "a file is required under the image or uploadedFile field"))
			return
		}

		stored, err := h.service.StoreImage(r.Context(), *upload)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusCreated, "image uploaded successfully", stored)
	}
}

// parseIDParam reads a UUID path parameter.
func parseIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return uuid.Nil, errs.NewBadRequestError("missing " + name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid " + name)
	}
	return id, nil
}
