package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/ramalsaham/dashboard/internal/domain"
)

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, log zerolog.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// WriteError maps a pipeline failure onto a distinct status and message.
// Every sentinel in the taxonomy gets its own response so the UI can
// render targeted guidance instead of a generic failure.
func WriteError(w http.ResponseWriter, log zerolog.Logger, err error) {
	status, message := StatusForError(err)

	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Msg("Request failed")
	} else {
		log.Debug().Err(err).Msg("Request rejected")
	}

	WriteJSON(w, log, status, map[string]string{
		"error": message,
	})
}

// StatusForError resolves an error to its HTTP status and user-visible
// message.
func StatusForError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidRange):
		return http.StatusBadRequest, "start date must not be after end date"
	case errors.Is(err, domain.ErrTickerNotFound):
		return http.StatusNotFound, "ticker not found"
	case errors.Is(err, domain.ErrInsufficientData):
		return http.StatusUnprocessableEntity, "not enough data points in the selected range"
	case errors.Is(err, domain.ErrStatementUnavailable):
		return http.StatusBadGateway, "fundamental statement unavailable for this ticker"
	case errors.Is(err, domain.ErrNoNewsAvailable):
		return http.StatusOK, "no news available"
	case errors.Is(err, domain.ErrDataSourceUnavailable):
		return http.StatusBadGateway, "data source temporarily unavailable"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
