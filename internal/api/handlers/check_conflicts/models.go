package check_conflicts

import (
	"time"

	"github.com/m04kA/SMC-ResourceBooking/internal/api/handlers/sessionview"
	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/internal/service/reservations/models"
)

// CheckRequest поля формы бронирования, общие для всех выделенных интервалов
type CheckRequest struct {
	RequesterName    string  `json:"requesterName"`
	RequesterContact string  `json:"requesterContact"`
	RequesterService string  `json:"requesterService,omitempty"`
	Purpose          string  `json:"purpose"`
	Note             *string `json:"note,omitempty"`
	Layout           *string `json:"layout,omitempty"`
	Attendees        *int    `json:"attendees,omitempty"`
	RecurrenceRule   string  `json:"recurrenceRule,omitempty"` // weekly | biweekly | monthly
	RecurrenceEnd    *string `json:"recurrenceEnd,omitempty"`  // YYYY-MM-DD
}

// ToDomainForm конвертирует запрос в доменную форму
// Содержательная проверка полей выполняется use case подготовки
func (r *CheckRequest) ToDomainForm() (domain.BookingForm, error) {
	form := domain.BookingForm{
		Requester: domain.Requester{
			Name:    r.RequesterName,
			Contact: r.RequesterContact,
			Service: r.RequesterService,
		},
		Purpose:        r.Purpose,
		Note:           r.Note,
		Layout:         r.Layout,
		Attendees:      r.Attendees,
		RecurrenceRule: domain.RecurrenceRule(r.RecurrenceRule),
	}

	if r.RecurrenceEnd != nil && *r.RecurrenceEnd != "" {
		end, err := domain.ParseDate(*r.RecurrenceEnd)
		if err != nil {
			return domain.BookingForm{}, err
		}
		form.RecurrenceEnd = &end
	}

	return form, nil
}

// Conflict конфликтующий кандидат с причиной
type Conflict struct {
	sessionview.Candidate
	Reason      string                      `json:"reason"` // existing | duplicate | blocked
	Existing    *models.ReservationResponse `json:"existing,omitempty"`
	DuplicateOf *sessionview.Candidate      `json:"duplicateOf,omitempty"`
}

// CheckResponse отчёт о конфликтах
type CheckResponse struct {
	Valid        []sessionview.Candidate `json:"valid"`
	Conflicting  []Conflict              `json:"conflicting"`
	HasConflicts bool                    `json:"hasConflicts"`
	CheckedAt    time.Time               `json:"checkedAt"`
}

// FromDomainReport конвертирует отчёт в HTTP response
func FromDomainReport(report *domain.ConflictReport) *CheckResponse {
	resp := &CheckResponse{
		Valid:        sessionview.FromCandidates(report.Valid),
		Conflicting:  make([]Conflict, 0, len(report.Details)),
		HasConflicts: report.HasConflicts(),
		CheckedAt:    report.CheckedAt,
	}

	for _, d := range report.Details {
		conflict := Conflict{
			Candidate: sessionview.FromCandidate(d.Candidate),
			Reason:    string(d.Reason),
			Existing:  models.FromDomainReservation(d.Existing),
		}
		if d.DuplicateOf != nil {
			dup := sessionview.FromCandidate(*d.DuplicateOf)
			conflict.DuplicateOf = &dup
		}
		resp.Conflicting = append(resp.Conflicting, conflict)
	}

	return resp
}
