package check_conflicts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/internal/grid"
	"github.com/m04kA/SMC-ResourceBooking/pkg/logger"
	"github.com/m04kA/SMC-ResourceBooking/pkg/types"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeLister struct {
	reservations []*domain.Reservation
	err          error

	calls     int
	lastFresh bool
	filter    domain.ReservationFilter
}

func (f *fakeLister) List(_ context.Context, filter domain.ReservationFilter, fresh bool) ([]*domain.Reservation, error) {
	f.calls++
	f.lastFresh = fresh
	f.filter = filter
	return f.reservations, f.err
}

type fakeMetrics struct{ conflicts int }

func (m *fakeMetrics) ConflictsDetected(_ string, count int) { m.conflicts += count }

var (
	monday = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	now    = time.Date(2025, 1, 6, 7, 0, 0, 0, time.UTC)
)

func newUseCase(t *testing.T, lister *fakeLister) (*UseCase, *fakeMetrics) {
	t.Helper()
	clock := fixedClock{now: now}
	registry, err := grid.NewRegistry([]domain.DomainConfig{{
		Grid: domain.GridConfig{
			Domain:         "rooms",
			Shape:          domain.ShapeVertical,
			OpenTime:       "08:00",
			CloseTime:      "20:00",
			SlotMinutes:    30,
			ClosedWeekdays: []time.Weekday{time.Sunday},
			Resources:      []domain.Resource{{ID: "room-x"}, {ID: "room-y"}},
		},
	}}, clock)
	require.NoError(t, err)

	m := &fakeMetrics{}
	uc := NewUseCase(lister, registry, m, logger.NewNop())
	uc.timeProvider = clock
	return uc, m
}

func candidate(resourceID string, date time.Time, start, end string) domain.BookingCandidate {
	return domain.BookingCandidate{Selection: domain.MergedSelection{
		ResourceID: resourceID,
		Date:       date,
		Start:      types.TimeString(start),
		End:        types.TimeString(end),
	}}
}

func reservation(id int64, resourceID string, date time.Time, start, end string, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:         id,
		ResourceID: resourceID,
		StartDate:  date,
		StartTime:  types.TimeString(start),
		EndDate:    date,
		EndTime:    types.TimeString(end),
		Status:     status,
	}
}

// Scenario D, проверочная часть
func TestExecute_PartitionsAgainstExisting(t *testing.T) {
	existing := reservation(7, "room-x", monday, "10:00", "11:00", domain.StatusActive)
	lister := &fakeLister{reservations: []*domain.Reservation{existing}}
	uc, m := newUseCase(t, lister)

	candidates := []domain.BookingCandidate{
		candidate("room-x", monday, "09:00", "10:00"),
		candidate("room-x", monday, "10:30", "11:30"),
		candidate("room-y", monday, "10:00", "11:00"),
	}

	resp, err := uc.Execute(context.Background(), &Request{Domain: "rooms", Candidates: candidates})
	require.NoError(t, err)

	report := resp.Report
	assert.Equal(t, []domain.BookingCandidate{candidates[0], candidates[2]}, report.Valid)
	assert.Equal(t, []domain.BookingCandidate{candidates[1]}, report.Conflicting)
	require.Len(t, report.Details, 1)
	assert.Equal(t, domain.ConflictExisting, report.Details[0].Reason)
	assert.Equal(t, existing, report.Details[0].Existing)
	assert.Equal(t, now, report.CheckedAt)
	assert.Equal(t, 1, m.conflicts)

	assert.True(t, lister.lastFresh, "conflict check must bypass the cache")
	assert.Equal(t, "rooms", lister.filter.Domain)
	assert.Equal(t, monday, *lister.filter.From)
	assert.Equal(t, monday, *lister.filter.To)
}

func TestExecute_IdenticalAndCancelled(t *testing.T) {
	tuesday := monday.AddDate(0, 0, 1)
	lister := &fakeLister{reservations: []*domain.Reservation{
		reservation(1, "room-x", monday, "09:00", "10:00", domain.StatusActive),
		reservation(2, "room-x", tuesday, "09:00", "10:00", domain.StatusCancelled),
	}}
	uc, _ := newUseCase(t, lister)

	identical := candidate("room-x", monday, "09:00", "10:00")
	overCancelled := candidate("room-x", tuesday, "09:00", "10:00")

	resp, err := uc.Execute(context.Background(), &Request{
		Domain:     "rooms",
		Candidates: []domain.BookingCandidate{identical, overCancelled},
	})
	require.NoError(t, err)
	assert.Equal(t, []domain.BookingCandidate{identical}, resp.Report.Conflicting)
	assert.Equal(t, []domain.BookingCandidate{overCancelled}, resp.Report.Valid)
}

func TestExecute_AdjacentIsNotConflict(t *testing.T) {
	lister := &fakeLister{reservations: []*domain.Reservation{
		reservation(1, "room-x", monday, "10:00", "11:00", domain.StatusActive),
	}}
	uc, _ := newUseCase(t, lister)

	resp, err := uc.Execute(context.Background(), &Request{
		Domain: "rooms",
		Candidates: []domain.BookingCandidate{
			candidate("room-x", monday, "09:00", "10:00"),
			candidate("room-x", monday, "11:00", "12:00"),
		},
	})
	require.NoError(t, err)
	assert.Len(t, resp.Report.Valid, 2)
	assert.False(t, resp.Report.HasConflicts())
}

func TestExecute_IntraBatchDuplicate(t *testing.T) {
	uc, _ := newUseCase(t, &fakeLister{})

	first := candidate("room-x", monday, "09:00", "11:00")
	second := candidate("room-x", monday, "10:00", "10:30")

	resp, err := uc.Execute(context.Background(), &Request{
		Domain:     "rooms",
		Candidates: []domain.BookingCandidate{first, second},
	})
	require.NoError(t, err)
	assert.Equal(t, []domain.BookingCandidate{first}, resp.Report.Valid)
	require.Len(t, resp.Report.Details, 1)
	assert.Equal(t, domain.ConflictDuplicate, resp.Report.Details[0].Reason)
	assert.Equal(t, first, *resp.Report.Details[0].DuplicateOf)
}

func TestExecute_BlockedOccurrence(t *testing.T) {
	uc, _ := newUseCase(t, &fakeLister{})

	sunday := monday.AddDate(0, 0, 6)
	past := candidate("room-x", monday.AddDate(0, 0, -2), "09:00", "10:00")
	onSunday := candidate("room-x", sunday, "09:00", "10:00")

	resp, err := uc.Execute(context.Background(), &Request{
		Domain:     "rooms",
		Candidates: []domain.BookingCandidate{past, onSunday},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Report.Valid)
	require.Len(t, resp.Report.Details, 2)
	for _, d := range resp.Report.Details {
		assert.Equal(t, domain.ConflictBlocked, d.Reason)
	}
}

func TestExecute_Errors(t *testing.T) {
	lister := &fakeLister{err: errors.New("connection refused")}
	uc, _ := newUseCase(t, lister)

	_, err := uc.Execute(context.Background(), &Request{
		Domain:     "rooms",
		Candidates: []domain.BookingCandidate{candidate("room-x", monday, "09:00", "10:00")},
	})
	assert.ErrorIs(t, err, ErrInternal)

	_, err = uc.Execute(context.Background(), &Request{Domain: "cars"})
	assert.ErrorIs(t, err, ErrDomainNotFound)

	_, err = uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_EmptyBatchSkipsStore(t *testing.T) {
	lister := &fakeLister{}
	uc, _ := newUseCase(t, lister)

	resp, err := uc.Execute(context.Background(), &Request{Domain: "rooms"})
	require.NoError(t, err)
	assert.Empty(t, resp.Report.Valid)
	assert.Equal(t, 0, lister.calls)
}
