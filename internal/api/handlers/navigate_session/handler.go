package navigate_session

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ResourceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ResourceBooking/internal/api/handlers/sessionview"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidWeekStart   = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle PUT /api/v1/sessions/{sessionId}/view
// Смена недели или ресурса сбрасывает текущее выделение
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req NavigateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /sessions/{id}/view - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	view, err := req.ToServiceView()
	if err != nil {
		h.logger.Warn("PUT /sessions/{id}/view - Invalid week start: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWeekStart)
		return
	}

	snapshot, err := h.service.Navigate(r.Context(), sessionID, view)
	if err != nil {
		if sessionview.RespondError(w, err) {
			h.logger.Warn("PUT /sessions/{id}/view - Rejected: session=%s, error=%v", sessionID, err)
			return
		}
		h.logger.Error("PUT /sessions/{id}/view - Failed to navigate: session=%s, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /sessions/{id}/view - View changed: session=%s, week=%s",
		sessionID, snapshot.View.WeekStart.Format(time.DateOnly))
	handlers.RespondJSON(w, http.StatusOK, sessionview.FromSnapshot(snapshot))
}
