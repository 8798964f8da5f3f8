package prepare_booking

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

type fixedSeries struct{ id string }

func (f fixedSeries) NewSeriesID() string { return f.id }

var monday = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

func newUseCase(t *testing.T) *UseCase {
	t.Helper()
	registry, err := grid.NewRegistry([]domain.DomainConfig{{
		Grid: domain.GridConfig{
			Domain:      "rooms",
			Shape:       domain.ShapeVertical,
			OpenTime:    "08:00",
			CloseTime:   "20:00",
			SlotMinutes: 30,
			Resources: []domain.Resource{
				{ID: "room-x", Name: "Room X"},
				{ID: "hall", Name: "Hall", Capacity: 40, Layouts: []string{"theatre", "classroom"}},
			},
		},
	}}, nil)
	require.NoError(t, err)

	uc := NewUseCase(registry, logger.NewNop())
	uc.seriesID = fixedSeries{id: "series-1"}
	return uc
}

func validForm() domain.BookingForm {
	return domain.BookingForm{
		Requester: domain.Requester{Name: "Ivanov", Contact: "ivanov@example.com", Service: "IT"},
		Purpose:   "meeting",
	}
}

func selection(resourceID string, date time.Time, start, end string) domain.MergedSelection {
	return domain.MergedSelection{ResourceID: resourceID, Date: date, Start: types.TimeString(start), End: types.TimeString(end)}
}

func TestExecute_SingleCandidatePerSelection(t *testing.T) {
	uc := newUseCase(t)

	resp, err := uc.Execute(context.Background(), &Request{
		Domain: "rooms",
		Selections: []domain.MergedSelection{
			selection("room-x", monday, "09:00", "11:00"),
			selection("room-x", monday, "14:00", "15:00"),
		},
		Form: validForm(),
	})
	require.NoError(t, err)
	require.Len(t, resp.Candidates, 2)
	assert.Empty(t, resp.Candidates[0].SeriesID)
	assert.Equal(t, 0, resp.Candidates[1].Occurrence)
}

func TestExecute_WeeklyRecurrence(t *testing.T) {
	uc := newUseCase(t)
	form := validForm()
	form.RecurrenceRule = domain.RecurrenceWeekly
	end := time.Date(2025, 1, 27, 0, 0, 0, 0, time.UTC)
	form.RecurrenceEnd = &end

	resp, err := uc.Execute(context.Background(), &Request{
		Domain:     "rooms",
		Selections: []domain.MergedSelection{selection("room-x", monday, "09:00", "10:00")},
		Form:       form,
	})
	require.NoError(t, err)
	require.Len(t, resp.Candidates, 4)

	wantDates := []time.Time{
		monday,
		time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 27, 0, 0, 0, 0, time.UTC),
	}
	for i, c := range resp.Candidates {
		assert.Equal(t, wantDates[i], c.Selection.Date)
		assert.Equal(t, i, c.Occurrence)
		assert.Equal(t, "series-1", c.SeriesID)
		assert.Equal(t, types.TimeString("09:00"), c.Selection.Start)
	}
}

func TestExecute_FormValidation(t *testing.T) {
	uc := newUseCase(t)
	end := monday.AddDate(0, 0, -1)

	tests := []struct {
		name      string
		resource  string
		mutate    func(f *domain.BookingForm)
		wantField string
	}{
		{
			name:      "missing name",
			resource:  "room-x",
			mutate:    func(f *domain.BookingForm) { f.Requester.Name = " " },
			wantField: "requester.name",
		},
		{
			name:      "missing contact",
			resource:  "room-x",
			mutate:    func(f *domain.BookingForm) { f.Requester.Contact = "" },
			wantField: "requester.contact",
		},
		{
			name:      "layout required",
			resource:  "hall",
			mutate:    func(f *domain.BookingForm) {},
			wantField: "layout",
		},
		{
			name:     "unknown layout",
			resource: "hall",
			mutate: func(f *domain.BookingForm) {
				layout := "banquet"
				f.Layout = &layout
			},
			wantField: "layout",
		},
		{
			name:     "too many attendees",
			resource: "hall",
			mutate: func(f *domain.BookingForm) {
				layout, attendees := "theatre", 41
				f.Layout, f.Attendees = &layout, &attendees
			},
			wantField: "attendees",
		},
		{
			name:     "recurrence end missing",
			resource: "room-x",
			mutate: func(f *domain.BookingForm) {
				f.RecurrenceRule = domain.RecurrenceMonthly
			},
			wantField: "recurrence.end",
		},
		{
			name:     "recurrence end before selection",
			resource: "room-x",
			mutate: func(f *domain.BookingForm) {
				f.RecurrenceRule = domain.RecurrenceWeekly
				f.RecurrenceEnd = &end
			},
			wantField: "recurrence.end",
		},
		{
			name:      "unknown rule",
			resource:  "room-x",
			mutate:    func(f *domain.BookingForm) { f.RecurrenceRule = "daily" },
			wantField: "recurrence.rule",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			_, err := uc.Execute(context.Background(), &Request{
				Domain:     "rooms",
				Selections: []domain.MergedSelection{selection(tt.resource, monday, "09:00", "10:00")},
				Form:       form,
			})
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)

			var errs domain.ValidationErrors
			require.True(t, errors.As(err, &errs))
			fields := make([]string, 0, len(errs))
			for _, e := range errs {
				fields = append(fields, e.Field)
			}
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestExecute_LayoutAccepted(t *testing.T) {
	uc := newUseCase(t)
	form := validForm()
	layout, attendees := "classroom", 20
	form.Layout, form.Attendees = &layout, &attendees

	resp, err := uc.Execute(context.Background(), &Request{
		Domain:     "rooms",
		Selections: []domain.MergedSelection{selection("hall", monday, "09:00", "10:00")},
		Form:       form,
	})
	require.NoError(t, err)
	require.Len(t, resp.Candidates, 1)
	assert.Equal(t, "classroom", *resp.Candidates[0].Form.Layout)
}

func TestExecute_InputErrors(t *testing.T) {
	uc := newUseCase(t)

	_, err := uc.Execute(context.Background(), &Request{Domain: "rooms", Form: validForm()})
	assert.ErrorIs(t, err, ErrEmptySelection)

	_, err = uc.Execute(context.Background(), &Request{
		Domain:     "cars",
		Selections: []domain.MergedSelection{selection("room-x", monday, "09:00", "10:00")},
		Form:       validForm(),
	})
	assert.ErrorIs(t, err, ErrDomainNotFound)

	_, err = uc.Execute(context.Background(), &Request{
		Domain:     "rooms",
		Selections: []domain.MergedSelection{selection("room-z", monday, "09:00", "10:00")},
		Form:       validForm(),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_TooManyOccurrences(t *testing.T) {
	uc := newUseCase(t)
	form := validForm()
	form.RecurrenceRule = domain.RecurrenceWeekly
	end := monday.AddDate(10, 0, 0)
	form.RecurrenceEnd = &end

	_, err := uc.Execute(context.Background(), &Request{
		Domain:     "rooms",
		Selections: []domain.MergedSelection{selection("room-x", monday, "09:00", "10:00")},
		Form:       form,
	})
	var fieldErr *domain.ValidationError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "recurrence.end", fieldErr.Field)
}
