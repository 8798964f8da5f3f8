package prepare_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/internal/grid"
	"github.com/m04kA/SMC-ResourceBooking/internal/recurrence"
)

// UseCase use case для подготовки кандидатов на бронирование
// Валидирует форму и разворачивает повторы; к хранилищу не обращается
type UseCase struct {
	grids    GridProvider
	seriesID SeriesIDGenerator
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(grids GridProvider, logger Logger) *UseCase {
	return &UseCase{
		grids:    grids,
		seriesID: &UUIDGenerator{},
		logger:   logger,
	}
}

// Execute выполняет use case подготовки кандидатов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("PrepareBooking: domain=%s, selections=%d, recurrence=%q",
		req.Domain, len(req.Selections), req.Form.RecurrenceRule)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("PrepareBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем сетку домена
	g, err := uc.grids.Grid(req.Domain)
	if err != nil {
		if errors.Is(err, grid.ErrDomainNotFound) {
			uc.logger.Warn("PrepareBooking: domain %s not found", req.Domain)
			return nil, ErrDomainNotFound
		}
		uc.logger.Error("PrepareBooking: failed to get grid for domain %s: %v", req.Domain, err)
		return nil, fmt.Errorf("%w: failed to get grid: %v", ErrInternal, err)
	}

	// 3. Проверяем, что выделение адресует ресурсы домена
	for _, s := range req.Selections {
		if _, ok := g.Resource(s.ResourceID); !ok {
			uc.logger.Warn("PrepareBooking: unknown resource %s in domain %s", s.ResourceID, req.Domain)
			return nil, fmt.Errorf("%w: unknown resource %s", ErrInvalidInput, s.ResourceID)
		}
	}

	// 4. Валидация полей формы
	if errs := validateForm(g, req.Selections, req.Form); len(errs) > 0 {
		uc.logger.Warn("PrepareBooking: form validation failed: %v", errs)
		return nil, errs
	}

	// 5. Разворачиваем повторы
	candidates := make([]domain.BookingCandidate, 0, len(req.Selections))
	for _, s := range req.Selections {
		expanded, err := uc.expand(s, req.Form)
		if err != nil {
			uc.logger.Warn("PrepareBooking: failed to expand %s: %v", s.Interval(), err)
			return nil, err
		}
		candidates = append(candidates, expanded...)
	}

	uc.logger.Info("PrepareBooking: prepared %d candidates from %d selections", len(candidates), len(req.Selections))

	return &Response{Candidates: candidates}, nil
}

// expand исходное выделение и его повторы с общим идентификатором серии
func (uc *UseCase) expand(s domain.MergedSelection, form domain.BookingForm) ([]domain.BookingCandidate, error) {
	original := domain.BookingCandidate{Selection: s, Form: form}
	if !form.IsRecurring() {
		return []domain.BookingCandidate{original}, nil
	}

	dates, err := recurrence.Expand(s.Date, form.RecurrenceRule, *form.RecurrenceEnd)
	if err != nil {
		if errors.Is(err, recurrence.ErrTooManyOccurs) {
			return nil, &domain.ValidationError{
				Field:   "recurrence.end",
				Message: fmt.Sprintf("at most %d occurrences are allowed", domain.MaxRecurrenceOccurs),
			}
		}
		return nil, fmt.Errorf("%w: failed to expand recurrence: %v", ErrInternal, err)
	}

	seriesID := uc.seriesID.NewSeriesID()
	original.SeriesID = seriesID

	candidates := make([]domain.BookingCandidate, 0, len(dates)+1)
	candidates = append(candidates, original)
	for i, date := range dates {
		occurrence := s
		occurrence.Date = date
		candidates = append(candidates, domain.BookingCandidate{
			Selection:  occurrence,
			Form:       form,
			SeriesID:   seriesID,
			Occurrence: i + 1,
		})
	}

	return candidates, nil
}
