package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

func TestRegion_Vertical(t *testing.T) {
	g := roomsGrid(t, domain.ShapeVertical)

	// Курсор на другом ресурсе и дне: учитывается только слот
	got := Region(g, cell("room-x", monday, "10:00"), cell("room-y", tuesday, "09:00"))
	assert.Equal(t, cellsBetween("room-x", monday, "09:00", "10:30"), got)
}

func TestRegion_HorizontalSkipsBlockedDays(t *testing.T) {
	g := roomsGrid(t, domain.ShapeHorizontal)
	nextMonday := monday.AddDate(0, 0, 7)

	got := Region(g, cell("room-x", nextMonday, "09:00"), cell("room-y", monday.AddDate(0, 0, 5), "14:00"))
	assert.Equal(t, []domain.SelectionCell{
		cell("room-x", monday.AddDate(0, 0, 5), "09:00"),
		cell("room-x", nextMonday, "09:00"),
	}, got)
	for _, c := range got {
		assert.NotEqual(t, sunday, c.Date)
	}
}

func TestRegion_Rectangular(t *testing.T) {
	g := roomsGrid(t, domain.ShapeRectangular)

	got := Region(g, cell("room-y", tuesday, "09:30"), cell("room-x", monday, "09:00"))
	assert.Equal(t, []domain.SelectionCell{
		cell("room-x", monday, "09:00"),
		cell("room-x", monday, "09:30"),
		cell("room-y", monday, "09:00"),
		cell("room-y", monday, "09:30"),
		cell("room-x", tuesday, "09:00"),
		cell("room-x", tuesday, "09:30"),
		cell("room-y", tuesday, "09:00"),
		cell("room-y", tuesday, "09:30"),
	}, got)
}

func TestRegion_CollapsedAxis(t *testing.T) {
	g := aiGrid(t)

	// ai-1/Afternoon (1) .. ai-3/Morning (4): линейная ось пересекает границу ресурса
	got := Region(g, cell("ai-1", monday, "13:00"), cell("ai-3", monday, "09:00"))
	assert.Equal(t, []domain.SelectionCell{
		cell("ai-1", monday, "13:00"),
		cell("ai-2", monday, "09:00"),
		cell("ai-2", monday, "13:00"),
		cell("ai-3", monday, "09:00"),
	}, got)
}

func TestRegion_UnknownAnchor(t *testing.T) {
	g := roomsGrid(t, domain.ShapeVertical)
	assert.Empty(t, Region(g, cell("missing", monday, "09:00"), cell("room-x", monday, "10:00")))
}
