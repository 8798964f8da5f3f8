package recurrence

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

var (
	ErrUnknownRule     = errors.New("recurrence: unknown rule")
	ErrEndBeforeAnchor = errors.New("recurrence: end date is before anchor date")
	ErrTooManyOccurs   = errors.New("recurrence: too many occurrences")
)

// Expand возвращает даты повторов после anchor до until включительно
// Сама дата anchor в результат не входит; пустое правило даёт пустой список
// Monthly считается от якоря (anchor + n месяцев) с прижатием к последнему дню месяца,
// поэтому 31 января даёт 28 февраля, 31 марта, 30 апреля
func Expand(anchor time.Time, rule domain.RecurrenceRule, until time.Time) ([]time.Time, error) {
	if rule == domain.RecurrenceNone {
		return []time.Time{}, nil
	}
	if !rule.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, rule)
	}

	anchor = domain.DateOnly(anchor)
	until = domain.DateOnly(until)
	if until.Before(anchor) {
		return nil, ErrEndBeforeAnchor
	}

	dates := make([]time.Time, 0)
	for n := 1; ; n++ {
		next := step(anchor, rule, n)
		if next.After(until) {
			break
		}
		if len(dates) == domain.MaxRecurrenceOccurs {
			return nil, fmt.Errorf("%w: limit is %d", ErrTooManyOccurs, domain.MaxRecurrenceOccurs)
		}
		dates = append(dates, next)
	}

	return dates, nil
}

func step(anchor time.Time, rule domain.RecurrenceRule, n int) time.Time {
	switch rule {
	case domain.RecurrenceWeekly:
		return anchor.AddDate(0, 0, 7*n)
	case domain.RecurrenceBiweekly:
		return anchor.AddDate(0, 0, 14*n)
	default:
		return addMonthsClamped(anchor, n)
	}
}

// addMonthsClamped в отличие от time.AddDate не переносит 31-е число в следующий месяц
func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	firstOfTarget := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d, 0, 0, 0, 0, time.UTC)
}
