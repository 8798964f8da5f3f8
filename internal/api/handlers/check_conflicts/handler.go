package check_conflicts

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ResourceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ResourceBooking/internal/api/handlers/sessionview"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRecurrence  = "некорректная дата окончания повторения, ожидается YYYY-MM-DD"
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

// Handle POST /api/v1/sessions/{sessionId}/check
// Конфликты не являются ошибкой: отчёт всегда возвращается с 200
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req CheckRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{id}/check - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	form, err := req.ToDomainForm()
	if err != nil {
		h.logger.Warn("POST /sessions/{id}/check - Invalid recurrence end: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRecurrence)
		return
	}

	report, err := h.service.Check(r.Context(), sessionID, form)
	if err != nil {
		if sessionview.RespondError(w, err) {
			h.logger.Warn("POST /sessions/{id}/check - Rejected: session=%s, error=%v", sessionID, err)
			return
		}
		h.logger.Error("POST /sessions/{id}/check - Failed to check conflicts: session=%s, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /sessions/{id}/check - Checked: session=%s, valid=%d, conflicting=%d",
		sessionID, len(report.Valid), len(report.Conflicting))
	handlers.RespondJSON(w, http.StatusOK, FromDomainReport(report))
}
