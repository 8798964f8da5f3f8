package selection

import (
	"sort"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/pkg/types"
)

// SlotResolver находит слот сетки по времени начала
type SlotResolver interface {
	Slot(start types.TimeString) (domain.TimeSlot, bool)
}

// ChangeKind тип изменения хранилища
type ChangeKind string

const (
	ChangeAdded   ChangeKind = "added"
	ChangeRemoved ChangeKind = "removed"
	ChangeCleared ChangeKind = "cleared"
)

// Change событие изменения, которое получают подписчики (слой отображения)
type Change struct {
	Kind  ChangeKind
	Cells []domain.SelectionCell
}

// Listener подписчик на изменения
type Listener func(Change)

// Store множество выбранных ячеек
// Принадлежит одному экземпляру сетки, не потокобезопасен
type Store struct {
	slots     SlotResolver
	cells     map[string]domain.SelectionCell
	order     []string
	listeners []Listener
}

// NewStore создает пустое хранилище
func NewStore(slots SlotResolver) *Store {
	return &Store{
		slots: slots,
		cells: make(map[string]domain.SelectionCell),
	}
}

// Subscribe регистрирует подписчика
func (s *Store) Subscribe(l Listener) {
	s.listeners = append(s.listeners, l)
}

func (s *Store) notify(kind ChangeKind, cells []domain.SelectionCell) {
	if len(cells) == 0 && kind != ChangeCleared {
		return
	}
	for _, l := range s.listeners {
		l(Change{Kind: kind, Cells: cells})
	}
}

// Add добавляет ячейки, возвращает реально добавленные (новые)
func (s *Store) Add(cells ...domain.SelectionCell) []domain.SelectionCell {
	added := make([]domain.SelectionCell, 0, len(cells))
	for _, c := range cells {
		c = domain.NewSelectionCell(c.ResourceID, c.Date, c.SlotStart)
		key := c.Key()
		if _, ok := s.cells[key]; ok {
			continue
		}
		s.cells[key] = c
		s.order = append(s.order, key)
		added = append(added, c)
	}
	s.notify(ChangeAdded, added)
	return added
}

// Remove удаляет ячейки, возвращает реально удалённые
// Удаление части цепочки автоматически делит её в MergedView на левый и правый остаток
func (s *Store) Remove(cells ...domain.SelectionCell) []domain.SelectionCell {
	removed := make([]domain.SelectionCell, 0, len(cells))
	for _, c := range cells {
		key := domain.NewSelectionCell(c.ResourceID, c.Date, c.SlotStart).Key()
		existing, ok := s.cells[key]
		if !ok {
			continue
		}
		delete(s.cells, key)
		removed = append(removed, existing)
	}

	if len(removed) > 0 {
		order := s.order[:0]
		for _, key := range s.order {
			if _, ok := s.cells[key]; ok {
				order = append(order, key)
			}
		}
		s.order = order
	}

	s.notify(ChangeRemoved, removed)
	return removed
}

// Toggle переключает ячейку; возвращает true, если после вызова ячейка выбрана
func (s *Store) Toggle(cell domain.SelectionCell) bool {
	if s.Contains(cell) {
		s.Remove(cell)
		return false
	}
	s.Add(cell)
	return true
}

// Clear очищает хранилище
func (s *Store) Clear() {
	s.cells = make(map[string]domain.SelectionCell)
	s.order = nil
	s.notify(ChangeCleared, nil)
}

// Contains выбрана ли ячейка
func (s *Store) Contains(cell domain.SelectionCell) bool {
	_, ok := s.cells[domain.NewSelectionCell(cell.ResourceID, cell.Date, cell.SlotStart).Key()]
	return ok
}

// Len количество выбранных ячеек
func (s *Store) Len() int {
	return len(s.cells)
}

// Cells ячейки в порядке добавления
func (s *Store) Cells() []domain.SelectionCell {
	out := make([]domain.SelectionCell, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.cells[key])
	}
	return out
}

// MergedView выбранные ячейки, слитые в непрерывные интервалы
func (s *Store) MergedView() []domain.MergedSelection {
	return Merge(s.Cells(), s.slots)
}

// Merge группирует ячейки по (ресурс, дата), сортирует по началу слота
// и склеивает цепочки, где next.start == current.end
// Результат упорядочен по дате, ресурсу и времени начала
func Merge(cells []domain.SelectionCell, slots SlotResolver) []domain.MergedSelection {
	type groupKey struct {
		resourceID string
		date       string
	}

	groups := make(map[groupKey][]domain.TimeSlot)
	dates := make(map[groupKey]domain.SelectionCell)
	for _, c := range cells {
		slot, ok := slots.Slot(c.SlotStart)
		if !ok {
			continue
		}
		key := groupKey{resourceID: c.ResourceID, date: c.Date.Format(domain.DateFormat)}
		groups[key] = append(groups[key], slot)
		dates[key] = c
	}

	merged := make([]domain.MergedSelection, 0, len(groups))
	for key, groupSlots := range groups {
		sort.Slice(groupSlots, func(i, j int) bool {
			return groupSlots[i].Start.IsBefore(groupSlots[j].Start)
		})

		date := domain.DateOnly(dates[key].Date)
		current := domain.MergedSelection{
			ResourceID: key.resourceID,
			Date:       date,
			Start:      groupSlots[0].Start,
			End:        groupSlots[0].End,
		}
		for _, slot := range groupSlots[1:] {
			if slot.Start == current.End {
				current.End = slot.End
				continue
			}
			// Дубликаты одного слота поглощаются текущей цепочкой
			if !slot.Start.IsAfter(current.End) && !slot.End.IsAfter(current.End) {
				continue
			}
			merged = append(merged, current)
			current = domain.MergedSelection{
				ResourceID: key.resourceID,
				Date:       date,
				Start:      slot.Start,
				End:        slot.End,
			}
		}
		merged = append(merged, current)
	}

	sort.Slice(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.ResourceID != b.ResourceID {
			return a.ResourceID < b.ResourceID
		}
		return a.Start.IsBefore(b.Start)
	})

	return merged
}
