package sessions

import (
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/internal/grid"
	"github.com/m04kA/SMC-ResourceBooking/internal/selection"
)

// instance один экземпляр сетки: своё хранилище, свой автомат, свой контекст сессии
// События одного экземпляра обрабатываются последовательно под mu
type instance struct {
	mu sync.Mutex

	session  domain.Session
	policy   domain.Policy
	grid     *grid.Grid
	store    *selection.Store
	machine  *selection.Machine
	view     View
	report   *domain.ConflictReport
	lastSeen time.Time

	// Кандидаты последней проверки, перепроверяются перед записью
	candidates []domain.BookingCandidate
}

func (i *instance) resetReport() {
	i.report = nil
	i.candidates = nil
}

func (i *instance) snapshot() Snapshot {
	return Snapshot{
		SessionID:     i.session.ID,
		Domain:        i.session.Domain,
		AdminUnlocked: i.session.AdminUnlocked,
		View:          i.view,
		State:         i.machine.State(),
		Cells:         i.store.Cells(),
		Merged:        i.store.MergedView(),
	}
}

// occupancyMarginDays запас вокруг недели, когда разброс дат домена не ограничен
const occupancyMarginDays = 7

// occupancyFilter фильтр чтения занятости: неделя вида плюс допустимый разброс дат в обе стороны
// Выборка не сужается до зафиксированного ресурса
func (i *instance) occupancyFilter() domain.ReservationFilter {
	margin := occupancyMarginDays
	if i.policy.HasSpanCap() {
		margin = i.policy.MaxSpanDays
	}
	from := i.view.WeekStart.AddDate(0, 0, -margin)
	to := i.view.WeekStart.AddDate(0, 0, 6+margin)
	return domain.ReservationFilter{
		Domain: i.session.Domain,
		From:   &from,
		To:     &to,
	}
}

// checkResource при зафиксированном ресурсе ячейки других ресурсов недоступны
func (i *instance) checkResource(cells ...domain.SelectionCell) error {
	if i.view.ResourceID == nil {
		return nil
	}
	for _, c := range cells {
		if c.ResourceID != *i.view.ResourceID {
			return fmt.Errorf("%w: view is fixed to resource %s, got %s", ErrInvalidInput, *i.view.ResourceID, c.ResourceID)
		}
	}
	return nil
}
