package check_conflicts

import (
	"time"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/internal/grid"
)

// partition делит кандидатов на valid и conflicting в порядке отправки
// Кандидат конфликтует, если:
//   - попал на закрытый день или в прошлое (повторы строятся без учёта календаря домена)
//   - пересекается с активным бронированием того же ресурса в тот же день
//   - пересекается с более ранним валидным кандидатом этой же отправки
func partition(
	g *grid.Grid,
	candidates []domain.BookingCandidate,
	existing []*domain.Reservation,
	checkedAt time.Time,
) *domain.ConflictReport {
	report := &domain.ConflictReport{
		Valid:       make([]domain.BookingCandidate, 0, len(candidates)),
		Conflicting: make([]domain.BookingCandidate, 0),
		Details:     make([]domain.ConflictDetail, 0),
		CheckedAt:   checkedAt,
	}

	index := indexReservations(existing)
	accepted := make(map[string][]int)

	for _, candidate := range candidates {
		interval := candidate.Interval()
		key := dayKey(interval.ResourceID, interval.Date)

		if isBlocked(g, candidate) {
			report.Conflicting = append(report.Conflicting, candidate)
			report.Details = append(report.Details, domain.ConflictDetail{
				Candidate: candidate,
				Reason:    domain.ConflictBlocked,
			})
			continue
		}

		if reservation := findOverlap(index[key], interval); reservation != nil {
			report.Conflicting = append(report.Conflicting, candidate)
			report.Details = append(report.Details, domain.ConflictDetail{
				Candidate: candidate,
				Reason:    domain.ConflictExisting,
				Existing:  reservation,
			})
			continue
		}

		if earlier, ok := findDuplicate(report.Valid, accepted[key], interval); ok {
			duplicateOf := earlier
			report.Conflicting = append(report.Conflicting, candidate)
			report.Details = append(report.Details, domain.ConflictDetail{
				Candidate:   candidate,
				Reason:      domain.ConflictDuplicate,
				DuplicateOf: &duplicateOf,
			})
			continue
		}

		accepted[key] = append(accepted[key], len(report.Valid))
		report.Valid = append(report.Valid, candidate)
	}

	return report
}

// indexReservations только активные бронирования участвуют в проверке
func indexReservations(reservations []*domain.Reservation) map[string][]*domain.Reservation {
	index := make(map[string][]*domain.Reservation)
	for _, r := range reservations {
		if r == nil || !r.IsActive() {
			continue
		}
		key := dayKey(r.ResourceID, r.StartDate)
		index[key] = append(index[key], r)
	}
	return index
}

func findOverlap(reservations []*domain.Reservation, interval domain.Interval) *domain.Reservation {
	for _, r := range reservations {
		if r.Interval().Overlaps(interval) {
			return r
		}
	}
	return nil
}

func findDuplicate(valid []domain.BookingCandidate, positions []int, interval domain.Interval) (domain.BookingCandidate, bool) {
	for _, pos := range positions {
		if valid[pos].Interval().Overlaps(interval) {
			return valid[pos], true
		}
	}
	return domain.BookingCandidate{}, false
}

func isBlocked(g *grid.Grid, candidate domain.BookingCandidate) bool {
	if g.IsBlockedDay(candidate.Selection.Date) {
		return true
	}
	slot := domain.TimeSlot{Start: candidate.Selection.Start, End: candidate.Selection.End}
	return g.IsPast(candidate.Selection.Date, slot)
}

func dayKey(resourceID string, date time.Time) string {
	return resourceID + "|" + date.Format(domain.DateFormat)
}
