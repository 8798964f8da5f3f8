package domain

import "time"

// BookingForm поля формы бронирования, общие для всех выделений одной отправки
type BookingForm struct {
	Requester      Requester
	Purpose        string
	Note           *string
	Layout         *string
	Attendees      *int
	RecurrenceRule RecurrenceRule
	RecurrenceEnd  *time.Time
}

// IsRecurring форма запрашивает повторение
func (f BookingForm) IsRecurring() bool {
	return f.RecurrenceRule != RecurrenceNone
}

// BookingCandidate кандидат на бронирование
// Создаётся в момент отправки формы и никогда не сохраняется напрямую
type BookingCandidate struct {
	Selection  MergedSelection
	Form       BookingForm
	SeriesID   string // Общий для всех повторов одного выделения; пусто без повторения
	Occurrence int    // 0 = исходное выделение, 1..N = повторы
}

// Interval интервал кандидата
func (c BookingCandidate) Interval() Interval {
	return c.Selection.Interval()
}

// ToReservation формирует запись для внешнего хранилища
func (c BookingCandidate) ToReservation(domainName string, createdAt time.Time) *Reservation {
	r := &Reservation{
		Domain:     domainName,
		ResourceID: c.Selection.ResourceID,
		StartDate:  c.Selection.Date,
		StartTime:  c.Selection.Start,
		EndDate:    c.Selection.Date,
		EndTime:    c.Selection.End,
		Requester:  c.Form.Requester,
		Purpose:    c.Form.Purpose,
		Note:       c.Form.Note,
		Layout:     c.Form.Layout,
		Attendees:  c.Form.Attendees,
		Status:     StatusActive,
		CreatedAt:  createdAt,
	}

	if c.Form.IsRecurring() {
		r.Recurring = true
		r.RecurrenceRule = c.Form.RecurrenceRule
		r.RecurrenceEnd = c.Form.RecurrenceEnd
		if c.SeriesID != "" {
			seriesID := c.SeriesID
			r.SeriesID = &seriesID
		}
	}

	return r
}

// ConflictReason причина конфликта
type ConflictReason string

const (
	// ConflictExisting пересечение с активным бронированием хранилища
	ConflictExisting ConflictReason = "existing"
	// ConflictDuplicate пересечение с более ранним кандидатом той же отправки
	ConflictDuplicate ConflictReason = "duplicate"
	// ConflictBlocked повтор попал на закрытый день или в прошлое
	ConflictBlocked ConflictReason = "blocked"
)

// ConflictDetail причина, по которой кандидат признан конфликтующим
// Existing заполнено для ConflictExisting, DuplicateOf для ConflictDuplicate
type ConflictDetail struct {
	Candidate   BookingCandidate
	Reason      ConflictReason
	Existing    *Reservation
	DuplicateOf *BookingCandidate
}

// ConflictReport разбиение кандидатов одной отправки
type ConflictReport struct {
	Valid       []BookingCandidate
	Conflicting []BookingCandidate
	Details     []ConflictDetail
	CheckedAt   time.Time
}

// HasConflicts есть ли конфликтующие кандидаты
func (r *ConflictReport) HasConflicts() bool {
	return len(r.Conflicting) > 0
}
