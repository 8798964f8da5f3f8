package commit_bookings

import (
	"github.com/m04kA/SMC-ResourceBooking/internal/api/handlers/sessionview"
	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/internal/service/reservations/models"
	"github.com/m04kA/SMC-ResourceBooking/internal/service/sessions"
	commitBookings "github.com/m04kA/SMC-ResourceBooking/internal/usecase/commit_bookings"
)

// CommitRequest HTTP request model
type CommitRequest struct {
	AcceptPartial bool `json:"acceptPartial"` // Сохранить valid-часть, несмотря на конфликты
}

// CommitResponse HTTP response model
type CommitResponse struct {
	Created []models.ReservationResponse `json:"created"`
	Total   int                          `json:"total"`
}

// FromUseCaseResponse конвертирует результат сохранения
func FromUseCaseResponse(resp *commitBookings.Response) *CommitResponse {
	return &CommitResponse{
		Created: models.FromDomainReservations(resp.Created).Reservations,
		Total:   resp.Total,
	}
}

// PersistenceDetails подробности прерванного цикла сохранения
type PersistenceDetails struct {
	CreatedIDs []int64                 `json:"createdIds"`
	Failed     sessionview.Candidate   `json:"failed"`
	Abandoned  []sessionview.Candidate `json:"abandoned"`
}

// FromPersistenceError конвертирует ошибку записи в детали ответа
func FromPersistenceError(err *domain.PersistenceError) *PersistenceDetails {
	ids := err.CreatedIDs
	if ids == nil {
		ids = []int64{}
	}
	return &PersistenceDetails{
		CreatedIDs: ids,
		Failed:     sessionview.FromCandidate(err.Failed),
		Abandoned:  sessionview.FromCandidates(err.Abandoned),
	}
}

// StaleReportDetails отчёт повторной проверки перед записью
type StaleReportDetails struct {
	Valid       []sessionview.Candidate `json:"valid"`
	Conflicting []sessionview.Candidate `json:"conflicting"`
}

// FromStaleReport конвертирует новый отчёт о конфликтах в детали ответа
func FromStaleReport(err *sessions.StaleReportError) *StaleReportDetails {
	return &StaleReportDetails{
		Valid:       sessionview.FromCandidates(err.Report.Valid),
		Conflicting: sessionview.FromCandidates(err.Report.Conflicting),
	}
}
