package models

import (
	"time"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

// Request модели

// ListRequest запрос на получение бронирований домена
type ListRequest struct {
	Domain           string     `json:"domain"`
	ResourceID       *string    `json:"resourceId,omitempty"`       // Фильтр по ресурсу (опционально)
	From             *time.Time `json:"from,omitempty"`             // Начало периода (опционально)
	To               *time.Time `json:"to,omitempty"`               // Конец периода (опционально)
	IncludeCancelled bool       `json:"includeCancelled,omitempty"` // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListRequest) ToDomainFilter() domain.ReservationFilter {
	return domain.ReservationFilter{
		Domain:           r.Domain,
		ResourceID:       r.ResourceID,
		From:             r.From,
		To:               r.To,
		IncludeCancelled: r.IncludeCancelled,
	}
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID         int64  `json:"id"`
	Domain     string `json:"domain"`
	ResourceID string `json:"resourceId"`
	Date       string `json:"date"`      // "2025-10-15"
	StartTime  string `json:"startTime"` // "10:00"
	EndTime    string `json:"endTime"`   // "11:30"
	Status     string `json:"status"`

	RequesterName    string  `json:"requesterName"`
	RequesterContact string  `json:"requesterContact"`
	RequesterService string  `json:"requesterService,omitempty"`
	Purpose          string  `json:"purpose"`
	Note             *string `json:"note,omitempty"`

	Recurring      bool    `json:"recurring"`
	RecurrenceRule string  `json:"recurrenceRule,omitempty"`
	RecurrenceEnd  *string `json:"recurrenceEnd,omitempty"`
	SeriesID       *string `json:"seriesId,omitempty"`

	Layout    *string `json:"layout,omitempty"`
	Attendees *int    `json:"attendees,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:               r.ID,
		Domain:           r.Domain,
		ResourceID:       r.ResourceID,
		Date:             r.StartDate.Format(domain.DateFormat),
		StartTime:        r.StartTime.String(),
		EndTime:          r.EndTime.String(),
		Status:           string(r.Status),
		RequesterName:    r.Requester.Name,
		RequesterContact: r.Requester.Contact,
		RequesterService: r.Requester.Service,
		Purpose:          r.Purpose,
		Note:             r.Note,
		Recurring:        r.Recurring,
		RecurrenceRule:   string(r.RecurrenceRule),
		SeriesID:         r.SeriesID,
		Layout:           r.Layout,
		Attendees:        r.Attendees,
		CreatedAt:        r.CreatedAt,
	}

	if r.RecurrenceEnd != nil {
		end := r.RecurrenceEnd.Format(domain.DateFormat)
		resp.RecurrenceEnd = &end
	}

	return resp
}

// FromDomainReservations конвертирует список domain моделей в DTO
func FromDomainReservations(list []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(list)),
	}
	for _, r := range list {
		resp.Reservations = append(resp.Reservations, *FromDomainReservation(r))
	}
	return resp
}
