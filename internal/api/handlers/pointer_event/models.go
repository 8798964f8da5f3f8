package pointer_event

import (
	"github.com/m04kA/SMC-ResourceBooking/internal/api/handlers/sessionview"
	"github.com/m04kA/SMC-ResourceBooking/internal/service/sessions"
)

// PointerRequest HTTP request model
// Для up и leave ячейка не нужна
type PointerRequest struct {
	Kind string            `json:"kind"` // down | enter | up | leave
	Cell *sessionview.Cell `json:"cell,omitempty"`
}

// ToServiceEvent конвертирует запрос в событие сервиса
func (r *PointerRequest) ToServiceEvent() (sessions.PointerEvent, error) {
	event := sessions.PointerEvent{Kind: sessions.PointerKind(r.Kind)}
	if r.Cell == nil {
		return event, nil
	}
	cell, err := r.Cell.ToDomain()
	if err != nil {
		return sessions.PointerEvent{}, err
	}
	event.Cell = cell
	return event, nil
}

// PointerResponse HTTP response model
type PointerResponse struct {
	Outcome  sessionview.Outcome   `json:"outcome"`
	Snapshot *sessionview.Snapshot `json:"snapshot"`
}

// FromServiceResult конвертирует результат сервиса
func FromServiceResult(res *sessions.PointerResult) *PointerResponse {
	return &PointerResponse{
		Outcome:  sessionview.FromOutcome(res.Outcome),
		Snapshot: sessionview.FromSnapshot(&res.Snapshot),
	}
}
