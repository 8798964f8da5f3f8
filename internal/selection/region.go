package selection

import (
	"time"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/internal/grid"
)

// Region строит область выделения между anchor и cursor по правилу формы сетки
// Закрытые дни пропускаются; фильтрация занятых и прошедших ячеек выполняется отдельно
// Порядок результата: дата, ресурс, слот
func Region(g *grid.Grid, anchor, cursor domain.SelectionCell) []domain.SelectionCell {
	anchorSlot, ok := g.SlotIndex(anchor.SlotStart)
	if !ok {
		return nil
	}
	cursorSlot, ok := g.SlotIndex(cursor.SlotStart)
	if !ok {
		cursorSlot = anchorSlot
	}
	anchorRes, ok := g.ResourceIndex(anchor.ResourceID)
	if !ok {
		return nil
	}
	cursorRes, ok := g.ResourceIndex(cursor.ResourceID)
	if !ok {
		cursorRes = anchorRes
	}

	switch g.Shape() {
	case domain.ShapeVertical:
		return slotRange(g, anchor.ResourceID, domain.DateOnly(anchor.Date), anchorSlot, cursorSlot)

	case domain.ShapeHorizontal:
		cells := make([]domain.SelectionCell, 0)
		for _, date := range openDates(g, anchor.Date, cursor.Date) {
			cells = append(cells, domain.NewSelectionCell(anchor.ResourceID, date, anchor.SlotStart))
		}
		return cells

	case domain.ShapeRectangular:
		if g.CollapseResourceAxis() {
			return collapsedRange(g, anchorRes, anchorSlot, cursorRes, cursorSlot, anchor.Date, cursor.Date)
		}
		cells := make([]domain.SelectionCell, 0)
		loRes, hiRes := ordered(anchorRes, cursorRes)
		for _, date := range openDates(g, anchor.Date, cursor.Date) {
			for r := loRes; r <= hiRes; r++ {
				cells = append(cells, slotRange(g, g.ResourceAt(r).ID, date, anchorSlot, cursorSlot)...)
			}
		}
		return cells
	}

	return nil
}

// collapsedRange интерполяция по линейной оси resourceIndex*len(slots)+slotIndex
// Одна интерполяция покрывает и ресурс, и период (домен ИИ-инструментов)
func collapsedRange(
	g *grid.Grid,
	anchorRes, anchorSlot, cursorRes, cursorSlot int,
	anchorDate, cursorDate time.Time,
) []domain.SelectionCell {
	n := g.SlotCount()
	lo, hi := ordered(anchorRes*n+anchorSlot, cursorRes*n+cursorSlot)

	cells := make([]domain.SelectionCell, 0)
	for _, date := range openDates(g, anchorDate, cursorDate) {
		for linear := lo; linear <= hi; linear++ {
			resource := g.ResourceAt(linear / n)
			slot := g.SlotAt(linear % n)
			cells = append(cells, domain.NewSelectionCell(resource.ID, date, slot.Start))
		}
	}
	return cells
}

func slotRange(g *grid.Grid, resourceID string, date time.Time, from, to int) []domain.SelectionCell {
	lo, hi := ordered(from, to)
	cells := make([]domain.SelectionCell, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		cells = append(cells, domain.NewSelectionCell(resourceID, date, g.SlotAt(i).Start))
	}
	return cells
}

// openDates даты между a и b включительно, без закрытых дней
func openDates(g *grid.Grid, a, b time.Time) []time.Time {
	from, to := domain.DateOnly(a), domain.DateOnly(b)
	if to.Before(from) {
		from, to = to, from
	}
	dates := make([]time.Time, 0)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if g.IsBlockedDay(d) {
			continue
		}
		dates = append(dates, d)
	}
	return dates
}

func ordered(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}
