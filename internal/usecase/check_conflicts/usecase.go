package check_conflicts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/internal/grid"
)

// UseCase use case для проверки кандидатов против хранилища
// Блокировки не берутся: корректность держится на порядке «перечитать, проверить, записать»
type UseCase struct {
	reservations ReservationLister
	grids        GridProvider
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservations ReservationLister,
	grids GridProvider,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservations: reservations,
		grids:        grids,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case проверки конфликтов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckConflicts: domain=%s, candidates=%d", req.Domain, len(req.Candidates))

	// 1. Валидация входных данных
	if strings.TrimSpace(req.Domain) == "" {
		uc.logger.Warn("CheckConflicts: validation failed: domain is required")
		return nil, fmt.Errorf("%w: domain is required", ErrInvalidInput)
	}

	// 2. Получаем сетку домена
	g, err := uc.grids.Grid(req.Domain)
	if err != nil {
		if errors.Is(err, grid.ErrDomainNotFound) {
			uc.logger.Warn("CheckConflicts: domain %s not found", req.Domain)
			return nil, ErrDomainNotFound
		}
		uc.logger.Error("CheckConflicts: failed to get grid for domain %s: %v", req.Domain, err)
		return nil, fmt.Errorf("%w: failed to get grid: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()

	if len(req.Candidates) == 0 {
		return &Response{Report: partition(g, nil, nil, now)}, nil
	}

	// 3. Перечитываем бронирования в обход кэша на весь диапазон дат кандидатов
	from, to := dateRange(req.Candidates)
	filter := domain.ReservationFilter{
		Domain:           req.Domain,
		From:             &from,
		To:               &to,
		IncludeCancelled: false,
	}

	existing, err := uc.reservations.List(ctx, filter, true)
	if err != nil {
		uc.logger.Error("CheckConflicts: failed to list reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}

	// 4. Разбиваем кандидатов
	report := partition(g, req.Candidates, existing, now)

	if report.HasConflicts() {
		uc.metrics.ConflictsDetected(req.Domain, len(report.Conflicting))
		uc.logger.Warn("CheckConflicts: %d of %d candidates conflict in domain %s",
			len(report.Conflicting), len(req.Candidates), req.Domain)
	} else {
		uc.logger.Info("CheckConflicts: all %d candidates are valid", len(req.Candidates))
	}

	return &Response{Report: report}, nil
}

func dateRange(candidates []domain.BookingCandidate) (time.Time, time.Time) {
	from := candidates[0].Selection.Date
	to := from
	for _, c := range candidates[1:] {
		if c.Selection.Date.Before(from) {
			from = c.Selection.Date
		}
		if c.Selection.Date.After(to) {
			to = c.Selection.Date
		}
	}
	return domain.DateOnly(from), domain.DateOnly(to)
}
