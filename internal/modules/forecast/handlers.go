package forecast

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ramalsaham/dashboard/internal/httpapi"
	"github.com/ramalsaham/dashboard/internal/modules/history"
)

// DefaultHorizonDays matches the dashboard's default forecast slider
const DefaultHorizonDays = 30

// Handlers contains HTTP handlers for the forecast API
type Handlers struct {
	ingestor *history.Service
	service  *Service
	log      zerolog.Logger
}

// NewHandlers creates new forecast handlers
func NewHandlers(ingestor *history.Service, service *Service, log zerolog.Logger) *Handlers {
	return &Handlers{
		ingestor: ingestor,
		service:  service,
		log:      log.With().Str("handler", "forecast").Logger(),
	}
}

// Routes returns the forecast route tree
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{ticker}", h.HandleGetForecast)
	return r
}

// HandleGetForecast fits a trend model over the requested range and
// returns fitted plus future predictions. The horizon is validated
// before the series fetch so an out-of-range value costs no network
// call.
func (h *Handlers) HandleGetForecast(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	start, end, err := httpapi.DateRange(r)
	if err != nil {
		httpapi.BadRequest(w, err.Error())
		return
	}

	horizon, err := httpapi.IntParam(r, "horizon", DefaultHorizonDays)
	if err != nil {
		httpapi.BadRequest(w, err.Error())
		return
	}
	if err := ValidateHorizon(horizon); err != nil {
		httpapi.BadRequest(w, err.Error())
		return
	}

	series, err := h.ingestor.Fetch(r.Context(), ticker, start, end)
	if err != nil {
		httpapi.WriteError(w, h.log, err)
		return
	}

	model, err := h.service.Fit(series)
	if err != nil {
		httpapi.WriteError(w, h.log, err)
		return
	}

	result, err := h.service.Predict(model, horizon)
	if err != nil {
		httpapi.WriteError(w, h.log, err)
		return
	}

	httpapi.WriteJSON(w, h.log, http.StatusOK, result)
}
