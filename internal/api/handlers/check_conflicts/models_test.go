package check_conflicts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

func TestToDomainForm(t *testing.T) {
	end := "2025-02-03"
	attendees := 6
	req := &CheckRequest{
		RequesterName:    "Ivan",
		RequesterContact: "ivan@example.com",
		Purpose:          "Planning",
		Attendees:        &attendees,
		RecurrenceRule:   "weekly",
		RecurrenceEnd:    &end,
	}

	form, err := req.ToDomainForm()
	require.NoError(t, err)
	assert.Equal(t, "Ivan", form.Requester.Name)
	assert.Equal(t, domain.RecurrenceWeekly, form.RecurrenceRule)
	require.NotNil(t, form.RecurrenceEnd)
	assert.Equal(t, time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC), *form.RecurrenceEnd)
	assert.True(t, form.IsRecurring())

	bad := "03.02.2025"
	req.RecurrenceEnd = &bad
	_, err = req.ToDomainForm()
	assert.Error(t, err)
}

func TestFromDomainReport(t *testing.T) {
	tuesday := time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC)
	first := domain.BookingCandidate{
		Selection: domain.MergedSelection{ResourceID: "room-a", Date: tuesday, Start: "09:00", End: "10:00"},
	}
	duplicate := domain.BookingCandidate{
		Selection: domain.MergedSelection{ResourceID: "room-a", Date: tuesday, Start: "09:30", End: "10:30"},
		SeriesID:  "series-1",
	}
	existing := domain.BookingCandidate{
		Selection:  domain.MergedSelection{ResourceID: "room-b", Date: tuesday, Start: "11:00", End: "12:00"},
		Occurrence: 1,
	}
	checkedAt := time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC)

	resp := FromDomainReport(&domain.ConflictReport{
		Valid:       []domain.BookingCandidate{first},
		Conflicting: []domain.BookingCandidate{duplicate, existing},
		Details: []domain.ConflictDetail{
			{Candidate: duplicate, Reason: domain.ConflictDuplicate, DuplicateOf: &first},
			{Candidate: existing, Reason: domain.ConflictExisting, Existing: &domain.Reservation{ID: 3, ResourceID: "room-b"}},
		},
		CheckedAt: checkedAt,
	})

	assert.True(t, resp.HasConflicts)
	assert.Equal(t, checkedAt, resp.CheckedAt)
	require.Len(t, resp.Valid, 1)
	assert.Equal(t, "09:00", resp.Valid[0].Start)

	require.Len(t, resp.Conflicting, 2)
	assert.Equal(t, "duplicate", resp.Conflicting[0].Reason)
	require.NotNil(t, resp.Conflicting[0].DuplicateOf)
	assert.Equal(t, "10:00", resp.Conflicting[0].DuplicateOf.End)
	assert.Equal(t, "series-1", resp.Conflicting[0].SeriesID)
	assert.Nil(t, resp.Conflicting[0].Existing)

	assert.Equal(t, "existing", resp.Conflicting[1].Reason)
	require.NotNil(t, resp.Conflicting[1].Existing)
	assert.Equal(t, int64(3), resp.Conflicting[1].Existing.ID)
	assert.Equal(t, 1, resp.Conflicting[1].Occurrence)
}
