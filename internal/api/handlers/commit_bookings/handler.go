package commit_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ResourceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ResourceBooking/internal/api/handlers/sessionview"
	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/internal/service/sessions"
	commitBookings "github.com/m04kA/SMC-ResourceBooking/internal/usecase/commit_bookings"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgPersistenceFailed  = "сохранение прервано, часть бронирований уже создана"
	msgNewConflicts       = "после проверки появились новые конфликты, требуется подтверждение"
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

// Handle POST /api/v1/sessions/{sessionId}/commit
// Пустое тело равносильно acceptPartial=false
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req CommitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("POST /sessions/{id}/commit - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	onProgress := func(p commitBookings.Progress) {
		h.logger.Info("POST /sessions/{id}/commit - Progress: session=%s, %d/%d", sessionID, p.Current, p.Total)
	}

	result, err := h.service.Commit(r.Context(), sessionID, req.AcceptPartial, onProgress)
	if err != nil {
		var persistErr *domain.PersistenceError
		if errors.As(err, &persistErr) {
			h.logger.Error("POST /sessions/{id}/commit - Persistence failed: session=%s, created=%v, error=%v",
				sessionID, persistErr.CreatedIDs, persistErr.Err)
			handlers.RespondErrorWithDetails(w, http.StatusInternalServerError, msgPersistenceFailed,
				FromPersistenceError(persistErr))
			return
		}
		var staleErr *sessions.StaleReportError
		if errors.As(err, &staleErr) {
			h.logger.Warn("POST /sessions/{id}/commit - New conflicts: session=%s, conflicting=%d",
				sessionID, len(staleErr.Report.Conflicting))
			handlers.RespondErrorWithDetails(w, http.StatusConflict, msgNewConflicts, FromStaleReport(staleErr))
			return
		}
		if sessionview.RespondError(w, err) {
			h.logger.Warn("POST /sessions/{id}/commit - Rejected: session=%s, error=%v", sessionID, err)
			return
		}
		h.logger.Error("POST /sessions/{id}/commit - Failed to commit: session=%s, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /sessions/{id}/commit - Committed: session=%s, created=%d",
		sessionID, len(result.Created))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
