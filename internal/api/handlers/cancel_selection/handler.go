package cancel_selection

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

// Handle DELETE /api/v1/sessions/{sessionId}/selection
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	snapshot, err := h.service.Cancel(sessionID)
	if err != nil {
		if sessionview.RespondError(w, err) {
			h.logger.Warn("DELETE /sessions/{id}/selection - Rejected: session=%s, error=%v", sessionID, err)
			return
		}
		h.logger.Error("DELETE /sessions/{id}/selection - Failed to cancel: session=%s, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /sessions/{id}/selection - Selection cancelled: session=%s", sessionID)
	handlers.RespondJSON(w, http.StatusOK, sessionview.FromSnapshot(snapshot))
}
