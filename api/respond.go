package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/amontes/portfolio-backend/errs"
	"github.com/amontes/portfolio-backend/services"
	"github.com/rs/zerolog"
)

// Envelope is the uniform shape of every response, success or failure.
type Envelope struct {
	Success    bool                 `json:"success"`
	Message    string               `json:"message"`
	Timestamp  time.Time            `json:"timestamp"`
	Data       any                  `json:"data,omitempty"`
	Pagination *services.Pagination `json:"pagination,omitempty"`
	Errors     map[string]string    `json:"errors,omitempty"`
	Search     *SearchMeta          `json:"search,omitempty"`
}

// SearchMeta describes what a search response was computed from.
type SearchMeta struct {
	Query        string            `json:"query"`
	Filters      map[string]string `json:"filters"`
	TotalResults int64             `json:"totalResults"`
}

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) WriteSuccess(w http.ResponseWriter, statusCode int, message string, data any) {
	r.write(w, statusCode, Envelope{
		Success:   true,
		Message:   message,
		Timestamp: time.Now().UTC(),
		Data:      data,
	})
}

func (r Responder) WritePage(w http.ResponseWriter, message string, data any, pagination services.Pagination) {
	r.write(w, http.StatusOK, Envelope{
		Success:    true,
		Message:    message,
		Timestamp:  time.Now().UTC(),
		Data:       data,
		Pagination: &pagination,
	})
}

func (r Responder) WriteSearch(w http.ResponseWriter, message string, data any, pagination services.Pagination, search SearchMeta) {
	r.write(w, http.StatusOK, Envelope{
		Success:    true,
		Message:    message,
		Timestamp:  time.Now().UTC(),
		Data:       data,
		Pagination: &pagination,
		Search:     &search,
	})
}

func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var validationErr *errs.ValidationErr
	if errors.As(err, &validationErr) {
		r.write(w, http.StatusBadRequest, Envelope{
			Success:   false,
			Message:   "validation failed",
			Timestamp: time.Now().UTC(),
			Errors:    validationErr.Fields,
		})
		return
	}

	var apiErr *errs.ApiErr
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode >= http.StatusInternalServerError {
			r.logger.Error().Msg(apiErr.GetFullError())
		}
		envelope := Envelope{
			Success:   false,
			Message:   apiErr.Error(),
			Timestamp: time.Now().UTC(),
		}
		if apiErr.Field != "" {
			envelope.Errors = map[string]string{apiErr.Field: apiErr.Error()}
		}
		r.write(w, apiErr.StatusCode, envelope)
		return
	}

	// unexpected error: full detail server-side, generic message plus the raw
	// text to the caller
	r.logger.Error().Msg(err.Error())
	r.write(w, http.StatusInternalServerError, Envelope{
		Success:   false,
		Message:   "an unexpected error occurred",
		Timestamp: time.Now().UTC(),
		Errors:    map[string]string{"detail": err.Error()},
	})
}

func (r Responder) write(w http.ResponseWriter, statusCode int, envelope Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	jsonData, err := json.Marshal(envelope)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(statusCode)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}
