package get_grid

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	getGrid "github.com/m04kA/SMC-ResourceBooking/internal/usecase/get_grid"
	"github.com/m04kA/SMC-ResourceBooking/pkg/logger"
)

type fakeUseCase struct {
	req  *getGrid.Request
	resp *getGrid.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getGrid.Request) (*getGrid.Response, error) {
	f.req = req
	return f.resp, f.err
}

func newRequest(target, domainName string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return mux.SetURLVars(req, map[string]string{"domain": domainName})
}

func TestHandle_Success(t *testing.T) {
	reservationID := int64(7)
	monday := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &getGrid.Response{
		Domain:    "rooms",
		Shape:     domain.ShapeVertical,
		WeekStart: monday,
		Resources: []domain.Resource{{ID: "room-a", Name: "Room A"}},
		Days: []getGrid.Day{{
			Date: monday,
			Slots: []getGrid.Slot{{
				Start: "09:00",
				End:   "09:30",
				Cells: []getGrid.Cell{{ResourceID: "room-a", Status: getGrid.CellOccupied, ReservationID: &reservationID}},
			}},
		}},
	}}
	h := NewHandler(uc, logger.NewNop())

	w := httptest.NewRecorder()
	h.Handle(w, newRequest("/api/v1/domains/rooms/grid?weekStart=2025-01-08&resourceId=room-a", "rooms"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "rooms", uc.req.Domain)
	assert.Equal(t, time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC), uc.req.WeekStart.UTC())
	require.NotNil(t, uc.req.ResourceID)
	assert.Equal(t, "room-a", *uc.req.ResourceID)

	var body GridResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "2025-01-06", body.WeekStart)
	require.Len(t, body.Days, 1)
	cell := body.Days[0].Slots[0].Cells[0]
	assert.Equal(t, "occupied", cell.Status)
	require.NotNil(t, cell.ReservationID)
	assert.Equal(t, int64(7), *cell.ReservationID)
}

func TestHandle_DefaultsToCurrentWeek(t *testing.T) {
	now := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &getGrid.Response{WeekStart: now}}
	h := NewHandler(uc, logger.NewNop())
	h.now = func() time.Time { return now }

	w := httptest.NewRecorder()
	h.Handle(w, newRequest("/api/v1/domains/rooms/grid", "rooms"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, now, uc.req.WeekStart)
	assert.Nil(t, uc.req.ResourceID)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		err        error
		wantStatus int
	}{
		{name: "bad week start", target: "/grid?weekStart=06.01.2025", wantStatus: http.StatusBadRequest},
		{name: "unknown domain", target: "/grid", err: getGrid.ErrDomainNotFound, wantStatus: http.StatusNotFound},
		{name: "unknown resource", target: "/grid?resourceId=x", err: getGrid.ErrResourceNotFound, wantStatus: http.StatusNotFound},
		{name: "storage failure", target: "/grid", err: getGrid.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, logger.NewNop())
			w := httptest.NewRecorder()
			h.Handle(w, newRequest(tt.target, "rooms"))
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
