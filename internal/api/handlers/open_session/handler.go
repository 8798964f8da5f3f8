package open_session

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ResourceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ResourceBooking/internal/api/handlers/sessionview"
)

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/domains/{domain}/sessions
// Создает экземпляр сетки на текущей неделе
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	domainName := mux.Vars(r)["domain"]

	snapshot, err := h.service.Open(r.Context(), domainName)
	if err != nil {
		if sessionview.RespondError(w, err) {
			h.logger.Warn("POST /domains/{domain}/sessions - Rejected: domain=%s, error=%v", domainName, err)
			return
		}
		h.logger.Error("POST /domains/{domain}/sessions - Failed to open session: domain=%s, error=%v", domainName, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /domains/{domain}/sessions - Session opened: domain=%s, session=%s",
		domainName, snapshot.SessionID)
	handlers.RespondJSON(w, http.StatusCreated, sessionview.FromSnapshot(snapshot))
}
