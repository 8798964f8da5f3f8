package get_grid

import (
	"time"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/internal/grid"
	"github.com/m04kA/SMC-ResourceBooking/internal/selection"
)

// buildDay вычисляет состояние каждой ячейки дня
// Приоритет: закрытый день, занятость, прошедший слот
func buildDay(g *grid.Grid, occupancy *selection.Occupancy, resources []domain.Resource, date time.Time) Day {
	day := Day{
		Date:    date,
		Blocked: g.IsBlockedDay(date),
		Slots:   make([]Slot, 0, g.SlotCount()),
	}

	for _, slot := range g.Slots() {
		row := Slot{
			Start: slot.Start,
			End:   slot.End,
			Label: slot.Label,
			Cells: make([]Cell, 0, len(resources)),
		}

		for _, resource := range resources {
			cell := Cell{ResourceID: resource.ID, Status: CellFree}
			switch {
			case day.Blocked:
				cell.Status = CellBlocked
			default:
				if r, ok := occupancy.At(domain.NewSelectionCell(resource.ID, date, slot.Start), slot); ok {
					id := r.ID
					cell.Status = CellOccupied
					cell.ReservationID = &id
				} else if g.IsPast(date, slot) {
					cell.Status = CellPast
				}
			}
			row.Cells = append(row.Cells, cell)
		}

		day.Slots = append(day.Slots, row)
	}

	return day
}
