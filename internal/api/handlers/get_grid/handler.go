package get_grid

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ResourceBooking/internal/api/handlers"
	getGrid "github.com/m04kA/SMC-ResourceBooking/internal/usecase/get_grid"
)

const (
	msgInvalidWeekStart = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDomainNotFound   = "домен бронирования не найден"
	msgResourceNotFound = "ресурс не найден"
)

type Handler struct {
	useCase GetGridUseCase
	logger  Logger
	now     func() time.Time
}

func NewHandler(useCase GetGridUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
		now:     time.Now,
	}
}

// Handle GET /api/v1/domains/{domain}/grid
// Query params: weekStart (YYYY-MM-DD, опционально), resourceId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	domainName := mux.Vars(r)["domain"]

	useCaseReq, err := ToUseCaseRequest(
		domainName,
		r.URL.Query().Get("weekStart"),
		r.URL.Query().Get("resourceId"),
		h.now(),
	)
	if err != nil {
		h.logger.Warn("GET /domains/{domain}/grid - Invalid week start: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWeekStart)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getGrid.ErrDomainNotFound):
			h.logger.Warn("GET /domains/{domain}/grid - Domain not found: domain=%s", domainName)
			handlers.RespondNotFound(w, msgDomainNotFound)

		case errors.Is(err, getGrid.ErrResourceNotFound):
			h.logger.Warn("GET /domains/{domain}/grid - Resource not found: domain=%s", domainName)
			handlers.RespondNotFound(w, msgResourceNotFound)

		default:
			h.logger.Error("GET /domains/{domain}/grid - Failed to build grid: domain=%s, error=%v", domainName, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /domains/{domain}/grid - Grid built: domain=%s, days=%d", domainName, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
