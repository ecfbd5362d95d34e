package metrics

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ramalsaham/dashboard/internal/domain"
	"github.com/ramalsaham/dashboard/internal/httpapi"
	"github.com/ramalsaham/dashboard/internal/modules/history"
)

// Handlers contains HTTP handlers for the metrics API
type Handlers struct {
	ingestor *history.Service
	service  *Service
	log      zerolog.Logger
}

// NewHandlers creates new metrics handlers
func NewHandlers(ingestor *history.Service, service *Service, log zerolog.Logger) *Handlers {
	return &Handlers{
		ingestor: ingestor,
		service:  service,
		log:      log.With().Str("handler", "metrics").Logger(),
	}
}

// Routes returns the metrics route tree
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{ticker}", h.HandleGetMetrics)
	return r
}

// metricsResponse pairs the return metrics with the display indicators
type metricsResponse struct {
	Ticker     string               `json:"ticker"`
	Metrics    domain.ReturnMetrics `json:"metrics"`
	Indicators Indicators           `json:"indicators"`
}

// HandleGetMetrics fetches the series for a ticker and computes
// return/risk metrics over it
func (h *Handlers) HandleGetMetrics(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	start, end, err := httpapi.DateRange(r)
	if err != nil {
		httpapi.BadRequest(w, err.Error())
		return
	}

	series, err := h.ingestor.Fetch(r.Context(), ticker, start, end)
	if err != nil {
		httpapi.WriteError(w, h.log, err)
		return
	}

	result, err := h.service.Compute(series)
	if err != nil {
		httpapi.WriteError(w, h.log, err)
		return
	}

	httpapi.WriteJSON(w, h.log, http.StatusOK, metricsResponse{
		Ticker:     ticker,
		Metrics:    result,
		Indicators: h.service.ComputeIndicators(series),
	})
}
