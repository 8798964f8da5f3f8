package selection

import (
	"time"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

// Occupancy индекс активных бронирований по (ресурс, дата)
// Снимок строится из последнего прочитанного списка и используется только для подсказок на сетке;
// авторитетная проверка выполняется при отправке формы
type Occupancy struct {
	byDay map[string][]*domain.Reservation
}

// NewOccupancy строит индекс, отбрасывая неактивные бронирования
func NewOccupancy(reservations []*domain.Reservation) *Occupancy {
	o := &Occupancy{byDay: make(map[string][]*domain.Reservation)}
	for _, r := range reservations {
		if r == nil || !r.IsActive() {
			continue
		}
		key := occupancyKey(r.ResourceID, r.StartDate)
		o.byDay[key] = append(o.byDay[key], r)
	}
	return o
}

func occupancyKey(resourceID string, date time.Time) string {
	return resourceID + "|" + date.Format(domain.DateFormat)
}

// At возвращает бронирование, пересекающееся со слотом ячейки
func (o *Occupancy) At(cell domain.SelectionCell, slot domain.TimeSlot) (*domain.Reservation, bool) {
	if o == nil {
		return nil, false
	}
	interval := domain.Interval{
		ResourceID: cell.ResourceID,
		Date:       cell.Date,
		Start:      slot.Start,
		End:        slot.End,
	}
	for _, r := range o.byDay[occupancyKey(cell.ResourceID, cell.Date)] {
		if r.Interval().Overlaps(interval) {
			return r, true
		}
	}
	return nil, false
}
