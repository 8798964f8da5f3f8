package get_grid

import (
	"time"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	getGrid "github.com/m04kA/SMC-ResourceBooking/internal/usecase/get_grid"
)

// GridResponse HTTP response model
type GridResponse struct {
	Domain    string     `json:"domain"`
	Shape     string     `json:"shape"`
	WeekStart string     `json:"weekStart"`
	Resources []Resource `json:"resources"`
	Days      []Day      `json:"days"`
}

// Resource ресурс сетки
type Resource struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Category  string   `json:"category,omitempty"`
	Capacity  int      `json:"capacity,omitempty"`
	AdminOnly bool     `json:"adminOnly"`
	Layouts   []string `json:"layouts,omitempty"`
}

// Day день сетки
type Day struct {
	Date    string `json:"date"`
	Blocked bool   `json:"blocked"`
	Slots   []Slot `json:"slots"`
}

// Slot строка сетки
type Slot struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"label,omitempty"`
	Cells []Cell `json:"cells"`
}

// Cell ячейка сетки
type Cell struct {
	ResourceID    string `json:"resourceId"`
	Status        string `json:"status"` // free | occupied | blocked | past
	ReservationID *int64 `json:"reservationId,omitempty"`
}

// ToUseCaseRequest создает запрос use case из параметров запроса
// Без weekStart показывается текущая неделя
func ToUseCaseRequest(domainName, weekStartStr, resourceID string, now time.Time) (*getGrid.Request, error) {
	req := &getGrid.Request{
		Domain:    domainName,
		WeekStart: now,
	}

	if weekStartStr != "" {
		weekStart, err := domain.ParseDate(weekStartStr)
		if err != nil {
			return nil, err
		}
		req.WeekStart = weekStart
	}

	if resourceID != "" {
		req.ResourceID = &resourceID
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getGrid.Response) *GridResponse {
	out := &GridResponse{
		Domain:    resp.Domain,
		Shape:     string(resp.Shape),
		WeekStart: resp.WeekStart.Format(domain.DateFormat),
		Resources: make([]Resource, 0, len(resp.Resources)),
		Days:      make([]Day, 0, len(resp.Days)),
	}

	for _, r := range resp.Resources {
		out.Resources = append(out.Resources, Resource{
			ID:        r.ID,
			Name:      r.Name,
			Category:  r.Category,
			Capacity:  r.Capacity,
			AdminOnly: r.AdminOnly,
			Layouts:   r.Layouts,
		})
	}

	for _, d := range resp.Days {
		day := Day{
			Date:    d.Date.Format(domain.DateFormat),
			Blocked: d.Blocked,
			Slots:   make([]Slot, 0, len(d.Slots)),
		}
		for _, s := range d.Slots {
			slot := Slot{
				Start: s.Start.String(),
				End:   s.End.String(),
				Label: s.Label,
				Cells: make([]Cell, 0, len(s.Cells)),
			}
			for _, c := range s.Cells {
				slot.Cells = append(slot.Cells, Cell{
					ResourceID:    c.ResourceID,
					Status:        string(c.Status),
					ReservationID: c.ReservationID,
				})
			}
			day.Slots = append(day.Slots, slot)
		}
		out.Days = append(out.Days, day)
	}

	return out
}
