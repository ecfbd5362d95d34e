package fundamentals

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ramalsaham/dashboard/internal/domain"
	"github.com/ramalsaham/dashboard/internal/httpapi"
)

// Handlers contains HTTP handlers for the fundamentals API
type Handlers struct {
	service *Service
	log     zerolog.Logger
}

// NewHandlers creates new fundamentals handlers
func NewHandlers(service *Service, log zerolog.Logger) *Handlers {
	return &Handlers{
		service: service,
		log:     log.With().Str("handler", "fundamentals").Logger(),
	}
}

// Routes returns the fundamentals route tree
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{ticker}/{kind}", h.HandleGetStatement)
	return r
}

// HandleGetStatement returns one normalized statement for a ticker
func (h *Handlers) HandleGetStatement(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	kind, err := parseKind(chi.URLParam(r, "kind"))
	if err != nil {
		httpapi.BadRequest(w, err.Error())
		return
	}

	statement, err := h.service.Fetch(r.Context(), ticker, kind)
	if err != nil {
		httpapi.WriteError(w, h.log, err)
		return
	}

	httpapi.WriteJSON(w, h.log, http.StatusOK, statement)
}

// parseKind resolves the URL segment to a statement kind
func parseKind(raw string) (domain.StatementKind, error) {
	kind := domain.StatementKind(raw)
	for _, known := range domain.StatementKinds {
		if kind == known {
			return kind, nil
		}
	}
	return "", fmt.Errorf("unknown statement kind %q, want one of balance-sheet, income-statement, cash-flow", raw)
}
