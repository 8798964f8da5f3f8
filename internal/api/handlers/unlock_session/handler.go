package unlock_session

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ResourceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ResourceBooking/internal/api/handlers/sessionview"
)

const msgInvalidRequestBody = "некорректное тело запроса"

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

// Handle POST /api/v1/sessions/{sessionId}/unlock
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req UnlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{id}/unlock - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	snapshot, err := h.service.Unlock(sessionID, req.Passcode)
	if err != nil {
		// Код не логируется
		if sessionview.RespondError(w, err) {
			h.logger.Warn("POST /sessions/{id}/unlock - Rejected: session=%s, error=%v", sessionID, err)
			return
		}
		h.logger.Error("POST /sessions/{id}/unlock - Failed to unlock: session=%s, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /sessions/{id}/unlock - Admin resources unlocked: session=%s", sessionID)
	handlers.RespondJSON(w, http.StatusOK, sessionview.FromSnapshot(snapshot))
}
