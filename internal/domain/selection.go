package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ResourceBooking/pkg/types"
)

// TimeSlot полуоткрытый интервал [Start, End) на шкале одного дня
type TimeSlot struct {
	Start types.TimeString
	End   types.TimeString
	Label string // Для доменов с периодами ("Morning"); для остальных пусто
}

// SelectionCell атомарная ячейка выделения
type SelectionCell struct {
	ResourceID string
	Date       time.Time
	SlotStart  types.TimeString
}

// NewSelectionCell нормализует дату ячейки
func NewSelectionCell(resourceID string, date time.Time, slotStart types.TimeString) SelectionCell {
	return SelectionCell{ResourceID: resourceID, Date: DateOnly(date), SlotStart: slotStart}
}

// Key уникальный ключ ячейки
func (c SelectionCell) Key() string {
	return fmt.Sprintf("%s|%s|%s", c.ResourceID, c.Date.Format(DateFormat), c.SlotStart)
}

// Interval непрерывный отрезок времени на ресурсе в конкретный день
type Interval struct {
	ResourceID string
	Date       time.Time
	Start      types.TimeString
	End        types.TimeString
}

// Overlaps проверяет пересечение интервалов
// Строгие неравенства: соприкасающиеся интервалы (10:00-11:00 и 11:00-12:00) не пересекаются
func (i Interval) Overlaps(other Interval) bool {
	if i.ResourceID != other.ResourceID || !SameDay(i.Date, other.Date) {
		return false
	}
	return i.Start.IsBefore(other.End) && i.End.IsAfter(other.Start)
}

func (i Interval) String() string {
	return fmt.Sprintf("%s %s %s-%s", i.ResourceID, i.Date.Format(DateFormat), i.Start, i.End)
}

// MergedSelection максимальная цепочка смежных ячеек одного ресурса в один день
type MergedSelection struct {
	ResourceID string
	Date       time.Time
	Start      types.TimeString
	End        types.TimeString
}

// Interval возвращает интервал выделения
func (m MergedSelection) Interval() Interval {
	return Interval{ResourceID: m.ResourceID, Date: m.Date, Start: m.Start, End: m.End}
}
