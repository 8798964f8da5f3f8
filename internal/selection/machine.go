package selection

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/internal/grid"
)

var (
	// ErrUnknownCell возвращается, когда ячейка не принадлежит сетке
	ErrUnknownCell = errors.New("selection: cell is not part of the grid")
)

// State состояние автомата выделения
type State int

const (
	StateIdle State = iota
	StatePressing
	StateDragging
	StateReleased
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePressing:
		return "pressing"
	case StateDragging:
		return "dragging"
	case StateReleased:
		return "released"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// OutcomeKind результат обработки события указателя
type OutcomeKind string

const (
	OutcomeNone        OutcomeKind = "none"
	OutcomeIgnored     OutcomeKind = "ignored"     // Нажатие на закрытую или прошедшую ячейку
	OutcomeReservation OutcomeKind = "reservation" // Нажатие на занятую ячейку: показываем бронирование
	OutcomePressed     OutcomeKind = "pressed"
	OutcomeDragging    OutcomeKind = "dragging"
	OutcomeSelected    OutcomeKind = "selected"
	OutcomeDeselected  OutcomeKind = "deselected" // Одиночный клик по выбранной ячейке
	OutcomeErased      OutcomeKind = "erased"
	OutcomeAbandoned   OutcomeKind = "abandoned" // Указатель покинул сетку во время перетаскивания
)

// Outcome результат события
// Cells: для dragging — предпросмотр области, для selected/erased — изменённые ячейки
type Outcome struct {
	Kind        OutcomeKind
	Cells       []domain.SelectionCell
	Reservation *domain.Reservation
}

// Validator проверка политики выделения
type Validator interface {
	CheckAccess(session domain.Session, resourceIDs ...string) error
	Validate(session domain.Session, current, added []domain.SelectionCell) error
}

// Machine автомат Idle → Pressing → Dragging → Released поверх сетки и хранилища
// События обрабатываются синхронно; автомат принадлежит одному экземпляру сетки
type Machine struct {
	grid      *grid.Grid
	store     *Store
	validator Validator
	occupancy *Occupancy

	state          State
	anchorSelected bool // Нажатие пришлось на уже выбранную ячейку
	anchor         domain.SelectionCell
	cursor         domain.SelectionCell
}

// NewMachine создает автомат
func NewMachine(g *grid.Grid, store *Store, validator Validator) *Machine {
	return &Machine{
		grid:      g,
		store:     store,
		validator: validator,
		state:     StateIdle,
	}
}

// SetOccupancy обновляет снимок занятости
func (m *Machine) SetOccupancy(o *Occupancy) {
	m.occupancy = o
}

// State текущее состояние
func (m *Machine) State() State {
	return m.state
}

// Store хранилище выделения
func (m *Machine) Store() *Store {
	return m.store
}

// PointerDown нажатие над ячейкой
// Переход в Pressing только для открытой, свободной и доступной ячейки
func (m *Machine) PointerDown(session domain.Session, cell domain.SelectionCell) (Outcome, error) {
	cell = domain.NewSelectionCell(cell.ResourceID, cell.Date, cell.SlotStart)
	m.state = StateIdle

	slot, ok := m.grid.Slot(cell.SlotStart)
	if !ok || !m.grid.Contains(cell) {
		return Outcome{Kind: OutcomeNone}, ErrUnknownCell
	}

	if reservation, occupied := m.occupancy.At(cell, slot); occupied {
		return Outcome{Kind: OutcomeReservation, Reservation: reservation}, nil
	}

	if m.grid.IsBlockedDay(cell.Date) || m.grid.IsPast(cell.Date, slot) {
		return Outcome{Kind: OutcomeIgnored}, nil
	}

	if err := m.validator.CheckAccess(session, cell.ResourceID); err != nil {
		return Outcome{Kind: OutcomeNone}, err
	}

	m.anchor = cell
	m.cursor = cell
	m.anchorSelected = m.store.Contains(cell)
	m.state = StatePressing

	return Outcome{Kind: OutcomePressed, Cells: []domain.SelectionCell{cell}}, nil
}

// PointerEnter указатель вошёл в ячейку
func (m *Machine) PointerEnter(cell domain.SelectionCell) Outcome {
	if m.state != StatePressing && m.state != StateDragging {
		return Outcome{Kind: OutcomeNone}
	}
	cell = domain.NewSelectionCell(cell.ResourceID, cell.Date, cell.SlotStart)
	if !m.grid.Contains(cell) {
		return Outcome{Kind: OutcomeNone}
	}

	if m.state == StatePressing && cell.Key() == m.anchor.Key() {
		return Outcome{Kind: OutcomeNone}
	}

	m.state = StateDragging
	m.cursor = cell
	return Outcome{Kind: OutcomeDragging, Cells: m.Preview()}
}

// Preview область, которая будет применена при отпускании
func (m *Machine) Preview() []domain.SelectionCell {
	if m.state != StatePressing && m.state != StateDragging {
		return nil
	}
	raw := Region(m.grid, m.anchor, m.cursor)
	if m.erasing(raw) {
		return raw
	}
	return m.selectable(raw)
}

// erasing стирание только если нажатие было на выбранной ячейке и вся область уже выбрана
// Область, задевающая свободные ячейки, сливается в выделение
func (m *Machine) erasing(raw []domain.SelectionCell) bool {
	if !m.anchorSelected || len(raw) == 0 {
		return false
	}
	for _, c := range raw {
		if !m.store.Contains(c) {
			return false
		}
	}
	return true
}

// selectable отбрасывает занятые, закрытые и прошедшие ячейки
func (m *Machine) selectable(raw []domain.SelectionCell) []domain.SelectionCell {
	cells := make([]domain.SelectionCell, 0, len(raw))
	for _, c := range raw {
		slot, ok := m.grid.Slot(c.SlotStart)
		if !ok || m.grid.IsBlockedDay(c.Date) || m.grid.IsPast(c.Date, slot) {
			continue
		}
		if _, occupied := m.occupancy.At(c, slot); occupied {
			continue
		}
		cells = append(cells, c)
	}
	return cells
}

// PointerUp отпускание указателя
// Область из одной выбранной ячейки-якоря снимается; иначе область применяется целиком или не применяется вовсе
func (m *Machine) PointerUp(session domain.Session) (Outcome, error) {
	if m.state != StatePressing && m.state != StateDragging {
		return Outcome{Kind: OutcomeNone}, nil
	}

	raw := Region(m.grid, m.anchor, m.cursor)
	m.state = StateReleased

	if m.erasing(raw) {
		removed := m.store.Remove(raw...)
		if len(raw) == 1 {
			return Outcome{Kind: OutcomeDeselected, Cells: removed}, nil
		}
		return Outcome{Kind: OutcomeErased, Cells: removed}, nil
	}

	region := m.selectable(raw)
	if len(region) == 0 {
		return Outcome{Kind: OutcomeNone}, nil
	}

	if err := m.validator.Validate(session, m.store.Cells(), region); err != nil {
		return Outcome{Kind: OutcomeNone}, err
	}

	added := m.store.Add(region...)
	return Outcome{Kind: OutcomeSelected, Cells: added}, nil
}

// PointerLeave указатель покинул сетку: перетаскивание отменяется без изменений
func (m *Machine) PointerLeave() Outcome {
	if m.state != StatePressing && m.state != StateDragging {
		return Outcome{Kind: OutcomeNone}
	}
	m.state = StateReleased
	return Outcome{Kind: OutcomeAbandoned}
}

// Select программное выделение (например, предзаполнение из запроса на изменение)
// Проходит ту же проверку политики, включая временной фильтр
func (m *Machine) Select(session domain.Session, cells []domain.SelectionCell) ([]domain.SelectionCell, error) {
	normalized := make([]domain.SelectionCell, 0, len(cells))
	for _, c := range cells {
		c = domain.NewSelectionCell(c.ResourceID, c.Date, c.SlotStart)
		if !m.grid.Contains(c) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCell, c.Key())
		}
		normalized = append(normalized, c)
	}

	if err := m.validator.Validate(session, m.store.Cells(), normalized); err != nil {
		return nil, err
	}
	return m.store.Add(normalized...), nil
}

// Reset отмена выделения: хранилище очищается, автомат возвращается в Idle
func (m *Machine) Reset() {
	m.store.Clear()
	m.state = StateIdle
}
