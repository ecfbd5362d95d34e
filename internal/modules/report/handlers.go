package report

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ramalsaham/dashboard/internal/httpapi"
	"github.com/ramalsaham/dashboard/internal/modules/forecast"
	"github.com/ramalsaham/dashboard/internal/modules/news"
)

// Handlers contains HTTP handlers for the composite report API
type Handlers struct {
	service *Service
	log     zerolog.Logger
}

// NewHandlers creates new report handlers
func NewHandlers(service *Service, log zerolog.Logger) *Handlers {
	return &Handlers{
		service: service,
		log:     log.With().Str("handler", "report").Logger(),
	}
}

// Routes returns the report route tree
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{ticker}", h.HandleGetReport)
	return r
}

// HandleGetReport builds the full dashboard report for a ticker
func (h *Handlers) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	start, end, err := httpapi.DateRange(r)
	if err != nil {
		httpapi.BadRequest(w, err.Error())
		return
	}

	horizon, err := httpapi.IntParam(r, "horizon", forecast.DefaultHorizonDays)
	if err != nil {
		httpapi.BadRequest(w, err.Error())
		return
	}
	if err := forecast.ValidateHorizon(horizon); err != nil {
		httpapi.BadRequest(w, err.Error())
		return
	}

	newsLimit, err := httpapi.IntParam(r, "news_limit", news.DefaultLimit)
	if err != nil {
		httpapi.BadRequest(w, err.Error())
		return
	}

	result, err := h.service.Build(r.Context(), Request{
		Ticker:      ticker,
		Start:       start,
		End:         end,
		HorizonDays: horizon,
		NewsLimit:   newsLimit,
	})
	if err != nil {
		httpapi.WriteError(w, h.log, err)
		return
	}

	httpapi.WriteJSON(w, h.log, http.StatusOK, result)
}
