package get_selection

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

// Handle GET /api/v1/sessions/{sessionId}/selection
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	snapshot, err := h.service.Selection(sessionID)
	if err != nil {
		if sessionview.RespondError(w, err) {
			h.logger.Warn("GET /sessions/{id}/selection - Rejected: session=%s, error=%v", sessionID, err)
			return
		}
		h.logger.Error("GET /sessions/{id}/selection - Failed to get selection: session=%s, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, sessionview.FromSnapshot(snapshot))
}
