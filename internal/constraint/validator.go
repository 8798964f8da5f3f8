package constraint

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/internal/grid"
)

// Validator проверяет политику домена перед тем, как выделение попадёт в хранилище
// Набор правил задаётся конфигурацией домена, а не кодом
type Validator struct {
	grid   *grid.Grid
	policy domain.Policy
}

// NewValidator создает валидатор
func NewValidator(g *grid.Grid, policy domain.Policy) *Validator {
	return &Validator{grid: g, policy: policy}
}

// Policy действующая политика
func (v *Validator) Policy() domain.Policy {
	return v.policy
}

// CheckAccess правило доступа: admin-only ресурс требует разблокированной сессии
func (v *Validator) CheckAccess(session domain.Session, resourceIDs ...string) error {
	if session.AdminUnlocked {
		return nil
	}
	for _, id := range resourceIDs {
		resource, ok := v.grid.Resource(id)
		if !ok {
			continue
		}
		if resource.AdminOnly {
			return &domain.ConstraintViolation{
				Rule:       domain.RuleAccess,
				ResourceID: id,
				Message:    fmt.Sprintf("resource %q requires admin unlock", resource.Name),
			}
		}
	}
	return nil
}

// Validate проверяет добавление added к текущему выделению current
// Порядок: доступ, временной фильтр, лимит ресурсов, лимит разброса дат
// Ошибка означает, что хранилище изменять нельзя
func (v *Validator) Validate(session domain.Session, current, added []domain.SelectionCell) error {
	if len(added) == 0 {
		return nil
	}

	if err := v.CheckAccess(session, distinctResources(added)...); err != nil {
		return err
	}

	if err := v.checkTemporal(added); err != nil {
		return err
	}

	combined := make([]domain.SelectionCell, 0, len(current)+len(added))
	combined = append(combined, current...)
	combined = append(combined, added...)

	if err := v.checkResourceCap(combined); err != nil {
		return err
	}

	return v.checkDateSpan(combined)
}

// checkTemporal закрытые дни и прошедшие слоты недоступны
func (v *Validator) checkTemporal(cells []domain.SelectionCell) error {
	for _, c := range cells {
		if v.grid.IsBlockedDay(c.Date) {
			return &domain.ConstraintViolation{
				Rule:       domain.RuleTemporal,
				ResourceID: c.ResourceID,
				Message:    fmt.Sprintf("%s is a closed day", c.Date.Format(domain.DateFormat)),
			}
		}
		slot, ok := v.grid.Slot(c.SlotStart)
		if !ok {
			return &domain.ConstraintViolation{
				Rule:       domain.RuleTemporal,
				ResourceID: c.ResourceID,
				Message:    fmt.Sprintf("%s is not a slot boundary", c.SlotStart),
			}
		}
		if v.grid.IsPast(c.Date, slot) {
			return &domain.ConstraintViolation{
				Rule:       domain.RuleTemporal,
				ResourceID: c.ResourceID,
				Message:    fmt.Sprintf("%s %s is in the past", c.Date.Format(domain.DateFormat), c.SlotStart),
			}
		}
	}
	return nil
}

func (v *Validator) checkResourceCap(cells []domain.SelectionCell) error {
	if !v.policy.HasResourceCap() {
		return nil
	}
	count := len(distinctResources(cells))
	if count > v.policy.MaxResources {
		return &domain.ConstraintViolation{
			Rule:    domain.RuleResourceCap,
			Limit:   v.policy.MaxResources,
			Actual:  count,
			Message: fmt.Sprintf("at most %d resources can be booked at once", v.policy.MaxResources),
		}
	}
	return nil
}

// checkDateSpan max(date) - min(date) в календарных днях не больше MaxSpanDays
func (v *Validator) checkDateSpan(cells []domain.SelectionCell) error {
	if !v.policy.HasSpanCap() {
		return nil
	}

	var minDate, maxDate time.Time
	for i, c := range cells {
		if i == 0 || c.Date.Before(minDate) {
			minDate = c.Date
		}
		if i == 0 || c.Date.After(maxDate) {
			maxDate = c.Date
		}
	}

	span := domain.DaysBetween(minDate, maxDate)
	if span > v.policy.MaxSpanDays {
		return &domain.ConstraintViolation{
			Rule:    domain.RuleDateSpan,
			Limit:   v.policy.MaxSpanDays,
			Actual:  span,
			Message: fmt.Sprintf("selection must fit into %d consecutive days", v.policy.MaxSpanDays+1),
		}
	}
	return nil
}

func distinctResources(cells []domain.SelectionCell) []string {
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, c := range cells {
		if _, ok := seen[c.ResourceID]; ok {
			continue
		}
		seen[c.ResourceID] = struct{}{}
		ids = append(ids, c.ResourceID)
	}
	return ids
}
