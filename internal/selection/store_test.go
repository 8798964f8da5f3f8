package selection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/internal/grid"
	"github.com/m04kA/SMC-ResourceBooking/pkg/types"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var (
	monday  = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	tuesday = monday.AddDate(0, 0, 1)
	sunday  = monday.AddDate(0, 0, 6)
	now     = time.Date(2025, 1, 6, 7, 0, 0, 0, time.UTC)
)

func roomsGrid(t *testing.T, shape domain.ShapeRule) *grid.Grid {
	t.Helper()
	g, err := grid.New(domain.GridConfig{
		Domain:         "rooms",
		Shape:          shape,
		OpenTime:       "08:00",
		CloseTime:      "20:00",
		SlotMinutes:    30,
		ClosedWeekdays: []time.Weekday{time.Sunday},
		Resources: []domain.Resource{
			{ID: "room-x", Name: "Room X"},
			{ID: "room-y", Name: "Room Y"},
			{ID: "board", Name: "Board room", AdminOnly: true},
		},
	}, fixedClock{now: now})
	require.NoError(t, err)
	return g
}

func aiGrid(t *testing.T) *grid.Grid {
	t.Helper()
	g, err := grid.New(domain.GridConfig{
		Domain:               "ai_tool",
		Shape:                domain.ShapeRectangular,
		CollapseResourceAxis: true,
		Periods: []domain.Period{
			{Label: "Morning", Start: "09:00", End: "13:00"},
			{Label: "Afternoon", Start: "13:00", End: "17:00"},
		},
		ClosedWeekdays: []time.Weekday{time.Saturday, time.Sunday},
		Resources:      []domain.Resource{{ID: "ai-1"}, {ID: "ai-2"}, {ID: "ai-3"}},
	}, fixedClock{now: now})
	require.NoError(t, err)
	return g
}

func cell(resourceID string, date time.Time, start string) domain.SelectionCell {
	return domain.NewSelectionCell(resourceID, date, types.TimeString(start))
}

func run(resourceID string, date time.Time, start, end string) domain.MergedSelection {
	return domain.MergedSelection{
		ResourceID: resourceID,
		Date:       date,
		Start:      types.TimeString(start),
		End:        types.TimeString(end),
	}
}

func cellsBetween(resourceID string, date time.Time, from, to string) []domain.SelectionCell {
	start := types.TimeString(from)
	cells := make([]domain.SelectionCell, 0)
	for start.IsBefore(types.TimeString(to)) {
		cells = append(cells, domain.NewSelectionCell(resourceID, date, start))
		start, _ = start.AddMinutes(30)
	}
	return cells
}

func TestStore_AddIsIdempotent(t *testing.T) {
	s := NewStore(roomsGrid(t, domain.ShapeVertical))

	added := s.Add(cell("room-x", monday, "09:00"), cell("room-x", monday, "09:30"))
	assert.Len(t, added, 2)

	added = s.Add(cell("room-x", monday, "09:30"), cell("room-x", monday, "10:00"))
	assert.Equal(t, []domain.SelectionCell{cell("room-x", monday, "10:00")}, added)
	assert.Equal(t, 3, s.Len())
}

func TestStore_CellsKeepInsertionOrder(t *testing.T) {
	s := NewStore(roomsGrid(t, domain.ShapeVertical))
	s.Add(cell("room-y", monday, "10:00"), cell("room-x", monday, "09:00"), cell("room-x", monday, "08:00"))
	s.Remove(cell("room-x", monday, "09:00"))

	assert.Equal(t, []domain.SelectionCell{
		cell("room-y", monday, "10:00"),
		cell("room-x", monday, "08:00"),
	}, s.Cells())
}

func TestStore_Toggle(t *testing.T) {
	s := NewStore(roomsGrid(t, domain.ShapeVertical))
	c := cell("room-x", monday, "09:00")

	assert.True(t, s.Toggle(c))
	assert.True(t, s.Contains(c))
	assert.False(t, s.Toggle(c))
	assert.False(t, s.Contains(c))
}

func TestStore_Notifications(t *testing.T) {
	s := NewStore(roomsGrid(t, domain.ShapeVertical))
	var changes []Change
	s.Subscribe(func(c Change) { changes = append(changes, c) })

	s.Add(cell("room-x", monday, "09:00"))
	s.Add(cell("room-x", monday, "09:00")) // без изменений, событие не отправляется
	s.Remove(cell("room-x", monday, "09:00"))
	s.Clear()

	require.Len(t, changes, 3)
	assert.Equal(t, ChangeAdded, changes[0].Kind)
	assert.Equal(t, ChangeRemoved, changes[1].Kind)
	assert.Equal(t, ChangeCleared, changes[2].Kind)
}

func TestMerge(t *testing.T) {
	g := roomsGrid(t, domain.ShapeVertical)

	tests := []struct {
		name  string
		cells []domain.SelectionCell
		want  []domain.MergedSelection
	}{
		{
			name:  "empty",
			cells: nil,
			want:  []domain.MergedSelection{},
		},
		{
			name:  "contiguous cells in any order",
			cells: []domain.SelectionCell{cell("room-x", monday, "10:00"), cell("room-x", monday, "09:00"), cell("room-x", monday, "09:30")},
			want:  []domain.MergedSelection{run("room-x", monday, "09:00", "10:30")},
		},
		{
			name:  "gap splits runs",
			cells: []domain.SelectionCell{cell("room-x", monday, "09:00"), cell("room-x", monday, "10:00")},
			want: []domain.MergedSelection{
				run("room-x", monday, "09:00", "09:30"),
				run("room-x", monday, "10:00", "10:30"),
			},
		},
		{
			name: "resources and days are separate groups",
			cells: []domain.SelectionCell{
				cell("room-y", monday, "09:00"),
				cell("room-x", tuesday, "09:00"),
				cell("room-x", monday, "09:00"),
			},
			want: []domain.MergedSelection{
				run("room-x", monday, "09:00", "09:30"),
				run("room-y", monday, "09:00", "09:30"),
				run("room-x", tuesday, "09:00", "09:30"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Merge(tt.cells, g))
		})
	}
}

func TestStore_PartialEraseSplitsRun(t *testing.T) {
	s := NewStore(roomsGrid(t, domain.ShapeVertical))
	s.Add(cellsBetween("room-x", monday, "09:00", "12:00")...)
	original := s.MergedView()
	require.Equal(t, []domain.MergedSelection{run("room-x", monday, "09:00", "12:00")}, original)

	sub := cellsBetween("room-x", monday, "10:00", "11:00")
	s.Remove(sub...)
	assert.Equal(t, []domain.MergedSelection{
		run("room-x", monday, "09:00", "10:00"),
		run("room-x", monday, "11:00", "12:00"),
	}, s.MergedView())

	// Повторное добавление того же поддиапазона восстанавливает исходный интервал
	s.Add(sub...)
	assert.Equal(t, original, s.MergedView())
}

func TestStore_MergeCompleteness(t *testing.T) {
	s := NewStore(roomsGrid(t, domain.ShapeVertical))
	s.Add(cellsBetween("room-x", monday, "08:00", "09:00")...)
	s.Add(cellsBetween("room-x", monday, "10:00", "11:00")...)
	s.Add(cellsBetween("room-x", monday, "09:00", "10:00")...)
	s.Add(cellsBetween("room-x", monday, "15:00", "15:30")...)
	s.Remove(cell("room-x", monday, "08:30"))

	merged := s.MergedView()
	for i := range merged {
		for j := range merged {
			if i == j {
				continue
			}
			a, b := merged[i], merged[j]
			if a.ResourceID != b.ResourceID || !a.Date.Equal(b.Date) {
				continue
			}
			overlapsOrTouches := !a.Start.IsAfter(b.End) && !b.Start.IsAfter(a.End)
			assert.False(t, overlapsOrTouches, "runs %v and %v must be merged", a, b)
		}
	}
	assert.Equal(t, []domain.MergedSelection{
		run("room-x", monday, "08:00", "08:30"),
		run("room-x", monday, "09:00", "11:00"),
		run("room-x", monday, "15:00", "15:30"),
	}, merged)
}
