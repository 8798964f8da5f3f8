package get_grid

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/internal/grid"
	"github.com/m04kA/SMC-ResourceBooking/internal/selection"
)

// UseCase use case для получения сетки недели с занятостью
// Чтение может идти из кэша: это подсказка для отображения, а не проверка конфликтов
type UseCase struct {
	reservations ReservationLister
	grids        GridProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(reservations ReservationLister, grids GridProvider, logger Logger) *UseCase {
	return &UseCase{
		reservations: reservations,
		grids:        grids,
		logger:       logger,
	}
}

// Execute выполняет use case получения сетки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetGrid: domain=%s, weekStart=%s", req.Domain, req.WeekStart.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if strings.TrimSpace(req.Domain) == "" {
		return nil, fmt.Errorf("%w: domain is required", ErrInvalidInput)
	}
	if req.WeekStart.IsZero() {
		return nil, fmt.Errorf("%w: weekStart is required", ErrInvalidInput)
	}

	// 2. Получаем сетку домена
	g, err := uc.grids.Grid(req.Domain)
	if err != nil {
		if errors.Is(err, grid.ErrDomainNotFound) {
			uc.logger.Warn("GetGrid: domain %s not found", req.Domain)
			return nil, ErrDomainNotFound
		}
		uc.logger.Error("GetGrid: failed to get grid for domain %s: %v", req.Domain, err)
		return nil, fmt.Errorf("%w: failed to get grid: %v", ErrInternal, err)
	}

	// 3. Определяем ресурсы для отображения
	resources := g.Resources()
	if req.ResourceID != nil {
		resource, ok := g.Resource(*req.ResourceID)
		if !ok {
			uc.logger.Warn("GetGrid: resource %s not found in domain %s", *req.ResourceID, req.Domain)
			return nil, ErrResourceNotFound
		}
		resources = []domain.Resource{resource}
	}

	// 4. Получаем бронирования недели
	week := g.Week(domain.WeekStart(req.WeekStart))
	from, to := week[0], week[len(week)-1]
	filter := domain.ReservationFilter{
		Domain:     req.Domain,
		ResourceID: req.ResourceID,
		From:       &from,
		To:         &to,
	}

	reservations, err := uc.reservations.List(ctx, filter, false)
	if err != nil {
		uc.logger.Error("GetGrid: failed to list reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}

	// 5. Строим сетку
	occupancy := selection.NewOccupancy(reservations)
	days := make([]Day, 0, len(week))
	for _, date := range week {
		days = append(days, buildDay(g, occupancy, resources, date))
	}

	uc.logger.Info("GetGrid: built %d days x %d slots x %d resources for domain %s",
		len(days), g.SlotCount(), len(resources), req.Domain)

	return &Response{
		Domain:    req.Domain,
		Shape:     g.Shape(),
		WeekStart: from,
		Resources: resources,
		Days:      days,
	}, nil
}
