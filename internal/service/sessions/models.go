package sessions

import (
	"time"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/internal/selection"
)

// PointerKind тип события указателя
type PointerKind string

const (
	PointerDown  PointerKind = "down"
	PointerEnter PointerKind = "enter"
	PointerUp    PointerKind = "up"
	PointerLeave PointerKind = "leave"
)

// IsValid проверяет, что тип события известен
func (k PointerKind) IsValid() bool {
	switch k {
	case PointerDown, PointerEnter, PointerUp, PointerLeave:
		return true
	}
	return false
}

// PointerEvent событие указателя над ячейкой
// Для leave и up ячейка не используется
type PointerEvent struct {
	Kind PointerKind
	Cell domain.SelectionCell
}

// View что показывает экземпляр сетки
type View struct {
	WeekStart  time.Time
	ResourceID *string // Зафиксированный ресурс (опционально)
}

// Snapshot состояние экземпляра сетки после операции
type Snapshot struct {
	SessionID     string
	Domain        string
	AdminUnlocked bool
	View          View
	State         selection.State
	Cells         []domain.SelectionCell
	Merged        []domain.MergedSelection
}

// PointerResult результат события указателя
type PointerResult struct {
	Outcome  selection.Outcome
	Snapshot Snapshot
}
