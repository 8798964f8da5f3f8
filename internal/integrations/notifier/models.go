package notifier

import (
	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

// Confirmation модель подтверждения для сервиса уведомлений
type Confirmation struct {
	ReservationID  int64   `json:"reservation_id"`
	Domain         string  `json:"domain"`
	ResourceID     string  `json:"resource_id"`
	Date           string  `json:"date"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	RequesterName  string  `json:"requester_name"`
	Contact        string  `json:"contact"`
	Purpose        string  `json:"purpose"`
	Recurring      bool    `json:"recurring"`
	RecurrenceRule string  `json:"recurrence_rule,omitempty"`
	SeriesID       *string `json:"series_id,omitempty"`
}

// NewConfirmation собирает подтверждение из созданного бронирования
func NewConfirmation(r *domain.Reservation) Confirmation {
	return Confirmation{
		ReservationID:  r.ID,
		Domain:         r.Domain,
		ResourceID:     r.ResourceID,
		Date:           r.StartDate.Format(domain.DateFormat),
		StartTime:      r.StartTime.String(),
		EndTime:        r.EndTime.String(),
		RequesterName:  r.Requester.Name,
		Contact:        r.Requester.Contact,
		Purpose:        r.Purpose,
		Recurring:      r.Recurring,
		RecurrenceRule: string(r.RecurrenceRule),
		SeriesID:       r.SeriesID,
	}
}

// ErrorResponse модель ошибки от сервиса уведомлений
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
