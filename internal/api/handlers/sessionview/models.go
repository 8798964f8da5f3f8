// Package sessionview общие HTTP модели экземпляра сетки
package sessionview

import (
	"fmt"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/internal/selection"
	"github.com/m04kA/SMC-ResourceBooking/internal/service/reservations/models"
	"github.com/m04kA/SMC-ResourceBooking/internal/service/sessions"
	"github.com/m04kA/SMC-ResourceBooking/pkg/types"
)

// Cell ячейка сетки в запросах и ответах
type Cell struct {
	ResourceID string `json:"resourceId"`
	Date       string `json:"date"`      // "2025-10-15"
	SlotStart  string `json:"slotStart"` // "10:00"
}

// ToDomain конвертирует ячейку в доменную модель
func (c Cell) ToDomain() (domain.SelectionCell, error) {
	if c.ResourceID == "" {
		return domain.SelectionCell{}, fmt.Errorf("resourceId is required")
	}
	date, err := domain.ParseDate(c.Date)
	if err != nil {
		return domain.SelectionCell{}, err
	}
	start := types.TimeString(c.SlotStart)
	if err := start.Validate(); err != nil {
		return domain.SelectionCell{}, err
	}
	return domain.NewSelectionCell(c.ResourceID, date, start), nil
}

// ToDomainCells конвертирует список ячеек
func ToDomainCells(cells []Cell) ([]domain.SelectionCell, error) {
	out := make([]domain.SelectionCell, 0, len(cells))
	for _, c := range cells {
		cell, err := c.ToDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, cell)
	}
	return out, nil
}

// FromDomainCells конвертирует ячейки в DTO
func FromDomainCells(cells []domain.SelectionCell) []Cell {
	out := make([]Cell, 0, len(cells))
	for _, c := range cells {
		out = append(out, Cell{
			ResourceID: c.ResourceID,
			Date:       c.Date.Format(domain.DateFormat),
			SlotStart:  c.SlotStart.String(),
		})
	}
	return out
}

// Interval слитый интервал выделения
type Interval struct {
	ResourceID string `json:"resourceId"`
	Date       string `json:"date"`
	Start      string `json:"start"`
	End        string `json:"end"`
}

func fromMerged(m domain.MergedSelection) Interval {
	return Interval{
		ResourceID: m.ResourceID,
		Date:       m.Date.Format(domain.DateFormat),
		Start:      m.Start.String(),
		End:        m.End.String(),
	}
}

// Snapshot состояние экземпляра сетки
type Snapshot struct {
	SessionID     string     `json:"sessionId"`
	Domain        string     `json:"domain"`
	AdminUnlocked bool       `json:"adminUnlocked"`
	WeekStart     string     `json:"weekStart"`
	ResourceID    *string    `json:"resourceId,omitempty"`
	State         string     `json:"state"`
	Cells         []Cell     `json:"cells"`
	Merged        []Interval `json:"merged"`
}

// FromSnapshot конвертирует снимок сервиса в DTO
func FromSnapshot(s *sessions.Snapshot) *Snapshot {
	out := &Snapshot{
		SessionID:     s.SessionID,
		Domain:        s.Domain,
		AdminUnlocked: s.AdminUnlocked,
		WeekStart:     s.View.WeekStart.Format(domain.DateFormat),
		ResourceID:    s.View.ResourceID,
		State:         s.State.String(),
		Cells:         FromDomainCells(s.Cells),
		Merged:        make([]Interval, 0, len(s.Merged)),
	}
	for _, m := range s.Merged {
		out.Merged = append(out.Merged, fromMerged(m))
	}
	return out
}

// Outcome результат события указателя
type Outcome struct {
	Kind        string                      `json:"kind"`
	Cells       []Cell                      `json:"cells"`
	Reservation *models.ReservationResponse `json:"reservation,omitempty"`
}

// FromOutcome конвертирует результат автомата в DTO
func FromOutcome(o selection.Outcome) Outcome {
	return Outcome{
		Kind:        string(o.Kind),
		Cells:       FromDomainCells(o.Cells),
		Reservation: models.FromDomainReservation(o.Reservation),
	}
}

// Candidate кандидат на бронирование
type Candidate struct {
	Interval
	SeriesID   string `json:"seriesId,omitempty"`
	Occurrence int    `json:"occurrence"`
}

// FromCandidate конвертирует кандидата в DTO
func FromCandidate(c domain.BookingCandidate) Candidate {
	return Candidate{
		Interval:   fromMerged(c.Selection),
		SeriesID:   c.SeriesID,
		Occurrence: c.Occurrence,
	}
}

// FromCandidates конвертирует список кандидатов
func FromCandidates(list []domain.BookingCandidate) []Candidate {
	out := make([]Candidate, 0, len(list))
	for _, c := range list {
		out = append(out, FromCandidate(c))
	}
	return out
}
