package domain

import (
	"time"

	"github.com/m04kA/SMC-ResourceBooking/pkg/types"
)

// ReservationStatus статус бронирования во внешнем хранилище
type ReservationStatus string

const (
	StatusActive    ReservationStatus = "active"
	StatusCancelled ReservationStatus = "cancelled"
)

// RecurrenceRule правило повторения
type RecurrenceRule string

const (
	RecurrenceNone     RecurrenceRule = ""
	RecurrenceWeekly   RecurrenceRule = "weekly"
	RecurrenceBiweekly RecurrenceRule = "biweekly"
	RecurrenceMonthly  RecurrenceRule = "monthly"
)

// IsValid проверяет, что правило известно (пустое правило = без повторения)
func (r RecurrenceRule) IsValid() bool {
	switch r {
	case RecurrenceNone, RecurrenceWeekly, RecurrenceBiweekly, RecurrenceMonthly:
		return true
	}
	return false
}

// Requester данные заявителя
type Requester struct {
	Name    string
	Contact string
	Service string
}

// Reservation бронирование из внешнего хранилища
// Движок никогда не изменяет его локально, проверки конфликтов всегда перечитывают список
type Reservation struct {
	ID         int64
	Domain     string
	ResourceID string
	StartDate  time.Time
	StartTime  types.TimeString
	EndDate    time.Time
	EndTime    types.TimeString
	Requester  Requester
	Purpose    string
	Note       *string

	Recurring      bool
	RecurrenceRule RecurrenceRule
	RecurrenceEnd  *time.Time
	SeriesID       *string

	// Только для ресурсов с расстановкой
	Layout    *string
	Attendees *int

	Status    ReservationStatus
	CreatedAt time.Time
}

// IsActive бронирование учитывается при проверке конфликтов
func (r *Reservation) IsActive() bool {
	return r.Status == StatusActive
}

// Interval интервал бронирования
func (r *Reservation) Interval() Interval {
	return Interval{
		ResourceID: r.ResourceID,
		Date:       r.StartDate,
		Start:      r.StartTime,
		End:        r.EndTime,
	}
}

// ReservationFilter фильтр для чтения бронирований домена
type ReservationFilter struct {
	Domain           string     // Обязательный параметр
	ResourceID       *string    // Опционально
	From             *time.Time // Начало периода включительно (опционально)
	To               *time.Time // Конец периода включительно (опционально)
	IncludeCancelled bool
}
