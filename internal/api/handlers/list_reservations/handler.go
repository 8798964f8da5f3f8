package list_reservations

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ResourceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ResourceBooking/internal/service/reservations"
)

const (
	msgInvalidQuery   = "некорректные параметры запроса"
	msgInvalidPeriod  = "дата окончания периода раньше даты начала"
	msgDomainNotFound = "домен бронирования не найден"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/domains/{domain}/reservations
// Query params: from, to (YYYY-MM-DD), resourceId, includeCancelled
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	domainName := mux.Vars(r)["domain"]

	req, err := ParseQuery(domainName, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /domains/{domain}/reservations - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	list, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrDomainNotFound):
			h.logger.Warn("GET /domains/{domain}/reservations - Domain not found: domain=%s", domainName)
			handlers.RespondNotFound(w, msgDomainNotFound)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /domains/{domain}/reservations - Invalid period: domain=%s", domainName)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /domains/{domain}/reservations - Failed to list reservations: domain=%s, error=%v",
				domainName, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /domains/{domain}/reservations - Found %d reservations: domain=%s",
		len(list.Reservations), domainName)
	handlers.RespondJSON(w, http.StatusOK, list)
}
