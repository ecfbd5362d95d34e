package history

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ramalsaham/dashboard/internal/httpapi"
)

// Handlers contains HTTP handlers for the price history API
type Handlers struct {
	service *Service
	log     zerolog.Logger
}

// NewHandlers creates new history handlers
func NewHandlers(service *Service, log zerolog.Logger) *Handlers {
	return &Handlers{
		service: service,
		log:     log.With().Str("handler", "history").Logger(),
	}
}

// Routes returns the history route tree
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{ticker}", h.HandleGetSeries)
	r.Get("/{ticker}/profile", h.HandleGetProfile)
	return r
}

// HandleGetSeries returns the price series for a ticker and date range
func (h *Handlers) HandleGetSeries(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	start, end, err := httpapi.DateRange(r)
	if err != nil {
		httpapi.BadRequest(w, err.Error())
		return
	}

	series, err := h.service.Fetch(r.Context(), ticker, start, end)
	if err != nil {
		httpapi.WriteError(w, h.log, err)
		return
	}

	httpapi.WriteJSON(w, h.log, http.StatusOK, series)
}

// HandleGetProfile returns display fields for a ticker
func (h *Handlers) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	profile, err := h.service.Profile(r.Context(), ticker)
	if err != nil {
		httpapi.WriteError(w, h.log, err)
		return
	}

	httpapi.WriteJSON(w, h.log, http.StatusOK, profile)
}
