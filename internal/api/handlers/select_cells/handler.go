package select_cells

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ResourceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ResourceBooking/internal/api/handlers/sessionview"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidCells       = "некорректные ячейки"
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

// Handle POST /api/v1/sessions/{sessionId}/selection
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req SelectRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{id}/selection - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	cells, err := sessionview.ToDomainCells(req.Cells)
	if err != nil || len(cells) == 0 {
		h.logger.Warn("POST /sessions/{id}/selection - Invalid cells: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCells)
		return
	}

	snapshot, err := h.service.Select(sessionID, cells)
	if err != nil {
		if sessionview.RespondError(w, err) {
			h.logger.Warn("POST /sessions/{id}/selection - Rejected: session=%s, error=%v", sessionID, err)
			return
		}
		h.logger.Error("POST /sessions/{id}/selection - Failed to select: session=%s, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /sessions/{id}/selection - Cells selected: session=%s, total=%d",
		sessionID, len(snapshot.Cells))
	handlers.RespondJSON(w, http.StatusOK, sessionview.FromSnapshot(snapshot))
}
