package pointer_event

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ResourceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ResourceBooking/internal/api/handlers/sessionview"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidCell        = "некорректная ячейка"
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

// Handle POST /api/v1/sessions/{sessionId}/pointer
// Нарушение политики при отпускании возвращается как 422/403, выделение при этом не меняется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req PointerRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{id}/pointer - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	event, err := req.ToServiceEvent()
	if err != nil {
		h.logger.Warn("POST /sessions/{id}/pointer - Invalid cell: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCell)
		return
	}

	result, err := h.service.Pointer(sessionID, event)
	if err != nil {
		if sessionview.RespondError(w, err) {
			h.logger.Warn("POST /sessions/{id}/pointer - Rejected: session=%s, kind=%s, error=%v",
				sessionID, req.Kind, err)
			return
		}
		h.logger.Error("POST /sessions/{id}/pointer - Failed to handle event: session=%s, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromServiceResult(result))
}
