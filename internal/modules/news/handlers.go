package news

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ramalsaham/dashboard/internal/domain"
	"github.com/ramalsaham/dashboard/internal/httpapi"
)

// Handlers contains HTTP handlers for the news API
type Handlers struct {
	service *Service
	log     zerolog.Logger
}

// NewHandlers creates new news handlers
func NewHandlers(service *Service, log zerolog.Logger) *Handlers {
	return &Handlers{
		service: service,
		log:     log.With().Str("handler", "news").Logger(),
	}
}

// Routes returns the news route tree
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{ticker}", h.HandleGetNews)
	return r
}

// HandleGetNews returns the news digest for a ticker. A partial digest
// is still a 200: the caller renders whatever exists.
func (h *Handlers) HandleGetNews(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	limit, err := httpapi.IntParam(r, "limit", DefaultLimit)
	if err != nil {
		httpapi.BadRequest(w, err.Error())
		return
	}

	digest, err := h.service.Fetch(r.Context(), ticker, limit)
	if err != nil && !errors.Is(err, domain.ErrNoNewsAvailable) {
		httpapi.WriteError(w, h.log, err)
		return
	}

	httpapi.WriteJSON(w, h.log, http.StatusOK, digest)
}
