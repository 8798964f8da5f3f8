package reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ResourceBooking/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ResourceBooking/internal/service/reservations/models"
	"github.com/m04kA/SMC-ResourceBooking/pkg/logger"
)

var monday = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

type fakeRepo struct {
	byID      map[int64]*domain.Reservation
	cancelErr error
	cancelled []int64
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	res, ok := r.byID[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	copied := *res
	return &copied, nil
}

func (r *fakeRepo) Cancel(_ context.Context, id int64) error {
	if r.cancelErr != nil {
		return r.cancelErr
	}
	r.cancelled = append(r.cancelled, id)
	return nil
}

type fakeCache struct {
	list        []*domain.Reservation
	filters     []domain.ReservationFilter
	invalidated []string
}

func (c *fakeCache) List(_ context.Context, filter domain.ReservationFilter, fresh bool) ([]*domain.Reservation, error) {
	c.filters = append(c.filters, filter)
	return c.list, nil
}

func (c *fakeCache) Invalidate(_ context.Context, name string) error {
	c.invalidated = append(c.invalidated, name)
	return nil
}

type domains []string

func (d domains) Domains() []string { return d }

func active(id int64) *domain.Reservation {
	return &domain.Reservation{
		ID: id, Domain: "rooms", ResourceID: "room-x",
		StartDate: monday, StartTime: "09:00", EndDate: monday, EndTime: "10:00",
		Requester: domain.Requester{Name: "Anna", Contact: "anna@example.com"},
		Purpose:   "Planning",
		Status:    domain.StatusActive,
	}
}

func TestService_Cancel(t *testing.T) {
	cancelled := active(2)
	cancelled.Status = domain.StatusCancelled

	tests := []struct {
		name      string
		id        int64
		cancelErr error
		wantErr   error
	}{
		{name: "active reservation", id: 1},
		{name: "already cancelled", id: 2, wantErr: ErrCannotCancel},
		{name: "not found", id: 3, wantErr: ErrReservationNotFound},
		{name: "cancelled concurrently", id: 1, cancelErr: reservationRepo.ErrCannotCancel, wantErr: ErrCannotCancel},
		{name: "repository failure", id: 1, cancelErr: errors.New("db down"), wantErr: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{byID: map[int64]*domain.Reservation{1: active(1), 2: cancelled}, cancelErr: tt.cancelErr}
			cache := &fakeCache{}
			svc := NewService(repo, cache, domains{"rooms"}, logger.NewNop())

			resp, err := svc.Cancel(context.Background(), tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, cache.invalidated)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "cancelled", resp.Status)
			assert.Equal(t, []int64{tt.id}, repo.cancelled)
			assert.Equal(t, []string{"rooms"}, cache.invalidated)
		})
	}
}

func TestService_List(t *testing.T) {
	cache := &fakeCache{list: []*domain.Reservation{active(1)}}
	svc := NewService(&fakeRepo{}, cache, domains{"rooms"}, logger.NewNop())

	from := monday
	to := monday.AddDate(0, 0, 6)
	resp, err := svc.List(context.Background(), &models.ListRequest{Domain: "rooms", From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, resp.Reservations, 1)
	assert.Equal(t, "2025-01-06", resp.Reservations[0].Date)
	assert.Equal(t, "09:00", resp.Reservations[0].StartTime)
	assert.Equal(t, &to, cache.filters[0].To)

	_, err = svc.List(context.Background(), &models.ListRequest{Domain: "garage"})
	assert.ErrorIs(t, err, ErrDomainNotFound)

	_, err = svc.List(context.Background(), &models.ListRequest{Domain: "rooms", From: &to, To: &from})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetByID(t *testing.T) {
	svc := NewService(&fakeRepo{byID: map[int64]*domain.Reservation{1: active(1)}}, &fakeCache{}, domains{"rooms"}, logger.NewNop())

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "room-x", resp.ResourceID)

	_, err = svc.GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}
