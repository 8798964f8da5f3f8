package grid

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/pkg/types"
)

var (
	// ErrInvalidConfig возвращается при некорректной конфигурации сетки
	ErrInvalidConfig = errors.New("grid: invalid configuration")
)

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Grid модель бронируемого пространства одного домена
// Чистые функции над конфигурацией и текущим временем, без побочных эффектов
type Grid struct {
	cfg           domain.GridConfig
	slots         []domain.TimeSlot
	slotIndex     map[types.TimeString]int
	resourceIndex map[string]int
	holidays      map[string]struct{}
	closed        map[time.Weekday]struct{}
	clock         TimeProvider
}

// New строит сетку по конфигурации домена
func New(cfg domain.GridConfig, clock TimeProvider) (*Grid, error) {
	if clock == nil {
		clock = &RealTimeProvider{}
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if !cfg.Shape.IsValid() {
		return nil, fmt.Errorf("%w: unknown shape rule %q", ErrInvalidConfig, cfg.Shape)
	}
	if len(cfg.Resources) == 0 {
		return nil, fmt.Errorf("%w: domain %q has no resources", ErrInvalidConfig, cfg.Domain)
	}

	slots, err := buildSlots(cfg)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, fmt.Errorf("%w: domain %q has no slots", ErrInvalidConfig, cfg.Domain)
	}

	g := &Grid{
		cfg:           cfg,
		slots:         slots,
		slotIndex:     make(map[types.TimeString]int, len(slots)),
		resourceIndex: make(map[string]int, len(cfg.Resources)),
		holidays:      make(map[string]struct{}, len(cfg.Holidays)),
		closed:        make(map[time.Weekday]struct{}, len(cfg.ClosedWeekdays)),
		clock:         clock,
	}

	for i, s := range slots {
		g.slotIndex[s.Start] = i
	}
	for i, r := range cfg.Resources {
		if _, dup := g.resourceIndex[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate resource id %q", ErrInvalidConfig, r.ID)
		}
		g.resourceIndex[r.ID] = i
	}
	for _, h := range cfg.Holidays {
		g.holidays[domain.DateOnly(h).Format(domain.DateFormat)] = struct{}{}
	}
	for _, wd := range cfg.ClosedWeekdays {
		g.closed[wd] = struct{}{}
	}

	return g, nil
}

// buildSlots генерирует упорядоченный список слотов дня
// Явные периоды имеют приоритет над шагом slotMinutes
func buildSlots(cfg domain.GridConfig) ([]domain.TimeSlot, error) {
	if len(cfg.Periods) > 0 {
		slots := make([]domain.TimeSlot, 0, len(cfg.Periods))
		for i, p := range cfg.Periods {
			if err := p.Start.Validate(); err != nil {
				return nil, fmt.Errorf("%w: period %q start: %v", ErrInvalidConfig, p.Label, err)
			}
			if err := p.End.Validate(); err != nil {
				return nil, fmt.Errorf("%w: period %q end: %v", ErrInvalidConfig, p.Label, err)
			}
			if !p.Start.IsBefore(p.End) {
				return nil, fmt.Errorf("%w: period %q is empty", ErrInvalidConfig, p.Label)
			}
			if i > 0 && p.Start.IsBefore(cfg.Periods[i-1].End) {
				return nil, fmt.Errorf("%w: period %q overlaps previous", ErrInvalidConfig, p.Label)
			}
			slots = append(slots, domain.TimeSlot{Start: p.Start, End: p.End, Label: p.Label})
		}
		return slots, nil
	}

	if cfg.SlotMinutes < domain.MinSlotMinutes || cfg.SlotMinutes > domain.MaxSlotMinutes {
		return nil, fmt.Errorf("%w: slot minutes %d out of range", ErrInvalidConfig, cfg.SlotMinutes)
	}
	if err := cfg.OpenTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: open time: %v", ErrInvalidConfig, err)
	}
	if err := cfg.CloseTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: close time: %v", ErrInvalidConfig, err)
	}

	slots := make([]domain.TimeSlot, 0)
	current := cfg.OpenTime
	for current.IsBefore(cfg.CloseTime) {
		end, err := current.AddMinutes(cfg.SlotMinutes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		// Слот не должен выходить за время закрытия
		if end.IsAfter(cfg.CloseTime) {
			break
		}
		slots = append(slots, domain.TimeSlot{Start: current, End: end})
		current = end
	}

	return slots, nil
}

// Domain имя домена
func (g *Grid) Domain() string {
	return g.cfg.Domain
}

// Shape правило формы выделения
func (g *Grid) Shape() domain.ShapeRule {
	return g.cfg.Shape
}

// CollapseResourceAxis ресурс и слот схлопываются в одну ось (resourceIndex*len(slots)+slotIndex)
func (g *Grid) CollapseResourceAxis() bool {
	return g.cfg.CollapseResourceAxis
}

// Location часовой пояс домена
func (g *Grid) Location() *time.Location {
	return g.cfg.Location
}

// Now текущее время в часовом поясе домена
func (g *Grid) Now() time.Time {
	return g.clock.Now().In(g.cfg.Location)
}

// Slots все слоты дня без учёта закрытых дней
func (g *Grid) Slots() []domain.TimeSlot {
	out := make([]domain.TimeSlot, len(g.slots))
	copy(out, g.slots)
	return out
}

// SlotsForDay упорядоченный список слотов на дату; для закрытого дня пусто
func (g *Grid) SlotsForDay(date time.Time) []domain.TimeSlot {
	if g.IsBlockedDay(date) {
		return []domain.TimeSlot{}
	}
	return g.Slots()
}

// IsBlockedDay закрытый день недели или праздник
func (g *Grid) IsBlockedDay(date time.Time) bool {
	if _, ok := g.closed[date.Weekday()]; ok {
		return true
	}
	_, ok := g.holidays[domain.DateOnly(date).Format(domain.DateFormat)]
	return ok
}

// IsPast слот уже начался относительно текущего времени
func (g *Grid) IsPast(date time.Time, slot domain.TimeSlot) bool {
	y, m, d := date.Date()
	local := time.Date(y, m, d, 0, 0, 0, 0, g.cfg.Location)
	return slot.Start.On(local).Before(g.Now())
}

// Slot находит слот по времени начала
func (g *Grid) Slot(start types.TimeString) (domain.TimeSlot, bool) {
	i, ok := g.slotIndex[start]
	if !ok {
		return domain.TimeSlot{}, false
	}
	return g.slots[i], true
}

// SlotIndex индекс слота по времени начала
func (g *Grid) SlotIndex(start types.TimeString) (int, bool) {
	i, ok := g.slotIndex[start]
	return i, ok
}

// SlotAt слот по индексу
func (g *Grid) SlotAt(i int) domain.TimeSlot {
	return g.slots[i]
}

// SlotCount количество слотов в дне
func (g *Grid) SlotCount() int {
	return len(g.slots)
}

// Resources ресурсы домена в порядке отображения
func (g *Grid) Resources() []domain.Resource {
	out := make([]domain.Resource, len(g.cfg.Resources))
	copy(out, g.cfg.Resources)
	return out
}

// Resource ресурс по идентификатору
func (g *Grid) Resource(id string) (domain.Resource, bool) {
	i, ok := g.resourceIndex[id]
	if !ok {
		return domain.Resource{}, false
	}
	return g.cfg.Resources[i], true
}

// ResourceIndex позиция ресурса в сетке
func (g *Grid) ResourceIndex(id string) (int, bool) {
	i, ok := g.resourceIndex[id]
	return i, ok
}

// ResourceAt ресурс по индексу
func (g *Grid) ResourceAt(i int) domain.Resource {
	return g.cfg.Resources[i]
}

// Week семь дат, начиная с weekStart
func (g *Grid) Week(weekStart time.Time) []time.Time {
	start := domain.DateOnly(weekStart)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// Contains проверяет, что ячейка адресует существующие ресурс и слот
func (g *Grid) Contains(cell domain.SelectionCell) bool {
	if _, ok := g.resourceIndex[cell.ResourceID]; !ok {
		return false
	}
	_, ok := g.slotIndex[cell.SlotStart]
	return ok
}
