package reservation

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

var monday = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

func newRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func reservationRow(mock sqlmock.Sqlmock) *sqlmock.Rows {
	return mock.NewRows(columns)
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newRepository(t)
	createdAt := time.Date(2025, 1, 5, 18, 0, 0, 0, time.UTC)
	layout := "theatre"

	mock.ExpectQuery(`INSERT INTO reservations \(domain_name,resource_id,.*\) VALUES \(\$1,\$2,.*\) RETURNING id`).
		WithArgs(
			"rooms", "hall", monday, "09:00", monday, "11:00",
			"Ivanov", "ivanov@example.com", sql.NullString{}, "meeting", nil,
			false, sql.NullString{}, nil, nil, &layout, nil,
			"active", createdAt,
		).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(17))

	created, err := repo.Create(context.Background(), &domain.Reservation{
		Domain:     "rooms",
		ResourceID: "hall",
		StartDate:  monday,
		StartTime:  "09:00",
		EndDate:    monday,
		EndTime:    "11:00",
		Requester:  domain.Requester{Name: "Ivanov", Contact: "ivanov@example.com"},
		Purpose:    "meeting",
		Layout:     &layout,
		Status:     domain.StatusActive,
		CreatedAt:  createdAt,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(17), created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateFailure(t *testing.T) {
	repo, mock := newRepository(t)
	mock.ExpectQuery(`INSERT INTO reservations`).WillReturnError(sql.ErrConnDone)

	_, err := repo.Create(context.Background(), &domain.Reservation{Domain: "rooms", Status: domain.StatusActive})
	assert.ErrorIs(t, err, ErrExecQuery)
}

func TestRepository_List(t *testing.T) {
	repo, mock := newRepository(t)
	to := monday.AddDate(0, 0, 6)
	seriesID := "0b6f7d1e-5a1c-4bb4-9d0b-3f0e2d1e0c11"

	rows := reservationRow(mock).
		AddRow(1, "rooms", "room-x", monday, "09:00:00", monday, "10:00:00",
			"Ivanov", "ivanov@example.com", "IT", "meeting", "bring projector",
			true, "weekly", to, seriesID, nil, nil, "active", monday).
		AddRow(2, "rooms", "room-y", monday, "11:00", monday, "12:00",
			"Petrov", "petrov@example.com", nil, "call", nil,
			false, nil, nil, nil, "u-shape", int64(12), "active", monday)

	mock.ExpectQuery(`SELECT .* FROM reservations WHERE domain_name = \$1 AND start_date >= \$2 AND start_date <= \$3 AND status = \$4 ORDER BY start_date ASC, start_time ASC`).
		WithArgs("rooms", monday, to, "active").
		WillReturnRows(rows)

	list, err := repo.List(context.Background(), domain.ReservationFilter{Domain: "rooms", From: &monday, To: &to})
	require.NoError(t, err)
	require.Len(t, list, 2)

	first := list[0]
	assert.Equal(t, "09:00", first.StartTime.String())
	assert.Equal(t, "10:00", first.EndTime.String())
	assert.Equal(t, domain.RecurrenceWeekly, first.RecurrenceRule)
	assert.Equal(t, seriesID, *first.SeriesID)
	assert.Equal(t, "bring projector", *first.Note)
	assert.Equal(t, to, *first.RecurrenceEnd)
	assert.Equal(t, "IT", first.Requester.Service)
	assert.True(t, first.IsActive())

	second := list[1]
	assert.Nil(t, second.Note)
	assert.Equal(t, domain.RecurrenceNone, second.RecurrenceRule)
	assert.Equal(t, "u-shape", *second.Layout)
	assert.Equal(t, 12, *second.Attendees)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListIncludeCancelledByResource(t *testing.T) {
	repo, mock := newRepository(t)
	resourceID := "room-x"

	mock.ExpectQuery(`SELECT .* FROM reservations WHERE domain_name = \$1 AND resource_id = \$2 ORDER BY`).
		WithArgs("rooms", "room-x").
		WillReturnRows(reservationRow(mock))

	list, err := repo.List(context.Background(), domain.ReservationFilter{
		Domain:           "rooms",
		ResourceID:       &resourceID,
		IncludeCancelled: true,
	})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Cancel(t *testing.T) {
	t.Run("active reservation", func(t *testing.T) {
		repo, mock := newRepository(t)
		mock.ExpectExec(`UPDATE reservations SET status = \$1 WHERE id = \$2 AND status = \$3`).
			WithArgs("cancelled", int64(5), "active").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Cancel(context.Background(), 5))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already cancelled", func(t *testing.T) {
		repo, mock := newRepository(t)
		mock.ExpectExec(`UPDATE reservations`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT .* FROM reservations WHERE id = \$1`).
			WithArgs(int64(5)).
			WillReturnRows(reservationRow(mock).AddRow(5, "rooms", "room-x", monday, "09:00", monday, "10:00",
				"Ivanov", "ivanov@example.com", nil, "meeting", nil,
				false, nil, nil, nil, nil, nil, "cancelled", monday))

		assert.ErrorIs(t, repo.Cancel(context.Background(), 5), ErrCannotCancel)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newRepository(t)
		mock.ExpectExec(`UPDATE reservations`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT .* FROM reservations WHERE id = \$1`).
			WithArgs(int64(5)).
			WillReturnError(sql.ErrNoRows)

		assert.ErrorIs(t, repo.Cancel(context.Background(), 5), ErrReservationNotFound)
	})
}
