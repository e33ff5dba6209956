package api

import (
	"net/http"
	"net/url"

	"github.com/amontes/portfolio-backend/database"
	"github.com/amontes/portfolio-backend/errs"
	"github.com/amontes/portfolio-backend/services"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type certificationHandler struct {
	responder Responder
	logger    zerolog.Logger
	service   *services.CertificationService
}

func newCertificationHandler(service *services.CertificationService) certificationHandler {
	logger := log.With().Str("handlerName", "certificationHandler").Logger()

	return certificationHandler{
		responder: NewResponder(logger),
		logger:    logger,
		service:   service,
	}
}

func (h certificationHandler) listCertifications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, err := parseListQuery(r, certificationSortColumns, "issued_date")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		filter := database.CertificationFilter{
			Search: r.URL.Query().Get("search"),
		}

		certifications, pagination, err := h.service.List(query, filter)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WritePage(w, "certifications retrieved successfully", certifications, pagination)
	}
}

func (h certificationHandler) getCertification() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		certificationID, err := parseIDParam(r, "certificationID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		certification, err := h.service.Get(certificationID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "certification retrieved successfully", certification)
	}
}

// byIssuer lists every certification from one issuer, newest first.
func (h certificationHandler) byIssuer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		issuer := chi.URLParam(r, "issuer")
		if decoded, err := url.PathUnescape(issuer); err == nil {
			issuer = decoded
		}
		if issuer == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing issuer"))
			return
		}

		query, err := parseListQuery(r, certificationSortColumns, "issued_date")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		certifications, pagination, err := h.service.ByIssuer(issuer, query.Page, query.Limit)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WritePage(w, "certifications retrieved successfully", certifications, pagination)
	}
}

func (h certificationHandler) createCertification() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req certificationCreateRequest
		if err := decodeAndValidate(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		certification, err := h.service.Create(req.toInput())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusCreated, "certification created successfully", certification)
	}
}

func (h certificationHandler) updateCertification() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		certificationID, err := parseIDParam(r, "certificationID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req certificationUpdateRequest
		if err := decodeAndValidate(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		certification, err := h.service.Update(certificationID, req.toInput())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "certification updated successfully", certification)
	}
}

func (h certificationHandler) deleteCertification() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		certificationID, err := parseIDParam(r, "certificationID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.service.Delete(certificationID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "certification deleted successfully", nil)
	}
}
