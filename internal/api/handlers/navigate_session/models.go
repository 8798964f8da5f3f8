package navigate_session

import (
	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/internal/service/sessions"
)

// NavigateRequest HTTP request model
type NavigateRequest struct {
	WeekStart  string  `json:"weekStart"`            // Любая дата недели, YYYY-MM-DD
	ResourceID *string `json:"resourceId,omitempty"` // Зафиксированный ресурс (опционально)
}

// ToServiceView конвертирует запрос в модель сервиса
func (r *NavigateRequest) ToServiceView() (sessions.View, error) {
	weekStart, err := domain.ParseDate(r.WeekStart)
	if err != nil {
		return sessions.View{}, err
	}
	view := sessions.View{WeekStart: weekStart}
	if r.ResourceID != nil && *r.ResourceID != "" {
		view.ResourceID = r.ResourceID
	}
	return view, nil
}
