package api

import (
	"net/http"

	"github.com/amontes/portfolio-backend/database"
	"github.com/amontes/portfolio-backend/services"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type journeyHandler struct {
	responder Responder
	logger    zerolog.Logger
	service   *services.JourneyService
}

func newJourneyHandler(service *services.JourneyService) journeyHandler {
	logger := log.With().Str("handlerName", "journeyHandler").Logger()

	return journeyHandler{
		responder: NewResponder(logger),
		logger:    logger,
		service:   service,
	}
}

func (h journeyHandler) listJourneyItems() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, err := parseListQuery(r, journeySortColumns, "start_date")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		filter := database.JourneyFilter{
			Search: r.URL.Query().Get("search"),
		}

		items, pagination, err := h.service.List(query, filter)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WritePage(w, "journey items retrieved successfully", items, pagination)
	}
}

func (h journeyHandler) getJourneyItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		journeyID, err := parseIDParam(r, "journeyID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		item, err := h.service.Get(journeyID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "journey item retrieved successfully", item)
	}
}

// byType lists items of one journey type; the type is validated against the
// enum before any query runs.
func (h journeyHandler) byType() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		journeyType := chi.URLParam(r, "journeyType")

		query, err := parseListQuery(r, journeySortColumns, "start_date")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		items, pagination, err := h.service.ByType(journeyType, query.Page, query.Limit)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WritePage(w, "journey items retrieved successfully", items, pagination)
	}
}

// current lists the ongoing items, i.e. those without an end date.
func (h journeyHandler) current() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.service.Current()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "current journey items retrieved successfully", items)
	}
}

func (h journeyHandler) createJourneyItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req journeyCreateRequest
		if err := decodeAndValidate(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		item, err := h.service.Create(req.toInput())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusCreated, "journey item created successfully", item)
	}
}

func (h journeyHandler) updateJourneyItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		journeyID, err := parseIDParam(r, "journeyID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req journeyUpdateRequest
		if err := decodeAndValidate(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		item, err := h.service.Update(journeyID, req.toInput())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "journey item updated successfully", item)
	}
}

func (h journeyHandler) deleteJourneyItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		journeyID, err := parseIDParam(r, "journeyID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.service.Delete(journeyID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "journey item deleted successfully", nil)
	}
}
