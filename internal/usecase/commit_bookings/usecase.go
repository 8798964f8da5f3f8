package commit_bookings

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

// UseCase use case для последовательного сохранения кандидатов
// Кандидаты пишутся по одному, без пакетов и без параллелизма:
// хранилище не даёт транзакционной изоляции
type UseCase struct {
	repo         ReservationRepository
	cache        ReservationCache
	notifier     Notifier
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	repo ReservationRepository,
	cache ReservationCache,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		repo:         repo,
		cache:        cache,
		notifier:     notifier,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case сохранения
// Ошибка записи прерывает цикл: созданные бронирования остаются, оставшиеся кандидаты не отправляются,
// возвращаются и частичный Response, и *domain.PersistenceError
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CommitBookings: domain=%s, candidates=%d", req.Domain, len(req.Candidates))

	// 1. Валидация входных данных
	if strings.TrimSpace(req.Domain) == "" {
		uc.logger.Warn("CommitBookings: validation failed: domain is required")
		return nil, fmt.Errorf("%w: domain is required", ErrInvalidInput)
	}
	if len(req.Candidates) == 0 {
		uc.logger.Warn("CommitBookings: nothing to commit")
		return nil, ErrNothingToCommit
	}

	// 2. Хранилище выделения очищается и кэш сбрасывается при любом исходе цикла
	defer uc.finish(req)

	resp := &Response{
		Created: make([]*domain.Reservation, 0, len(req.Candidates)),
		Total:   len(req.Candidates),
	}

	// 3. Сохраняем кандидатов по одному в порядке отправки
	for i, candidate := range req.Candidates {
		record := candidate.ToReservation(req.Domain, uc.timeProvider.Now())

		created, err := uc.repo.Create(ctx, record)
		if err != nil {
			uc.metrics.PersistenceFailed(req.Domain)
			uc.logger.Error("CommitBookings: failed to create %s (%d/%d): %v",
				candidate.Interval(), i+1, resp.Total, err)

			abandoned := make([]domain.BookingCandidate, len(req.Candidates)-i-1)
			copy(abandoned, req.Candidates[i+1:])

			return resp, &domain.PersistenceError{
				CreatedIDs: resp.CreatedIDs(),
				Failed:     candidate,
				Abandoned:  abandoned,
				Err:        err,
			}
		}

		resp.Created = append(resp.Created, created)
		uc.metrics.ReservationCreated(req.Domain)
		uc.logger.Info("CommitBookings: created reservation id=%d for %s (%d/%d)",
			created.ID, candidate.Interval(), i+1, resp.Total)

		if req.OnProgress != nil {
			req.OnProgress(Progress{Current: i + 1, Total: resp.Total})
		}

		// 3.1. Уведомление best-effort: результат отбрасывается
		uc.notify(ctx, req.Domain, created)
	}

	uc.logger.Info("CommitBookings: successfully created %d reservations in domain %s", len(resp.Created), req.Domain)

	return resp, nil
}

// notify ошибка уведомления логируется и считается, но не влияет на сохранённое бронирование
func (uc *UseCase) notify(ctx context.Context, domainName string, reservation *domain.Reservation) {
	if uc.notifier == nil {
		return
	}
	if err := uc.notifier.SendConfirmation(ctx, reservation); err != nil {
		uc.metrics.NotificationFailed(domainName)
		uc.logger.Warn("CommitBookings: notification for reservation id=%d failed: %v", reservation.ID, err)
	}
}

func (uc *UseCase) finish(req *Request) {
	if req.Selection != nil {
		req.Selection.Clear()
	}

	// Контекст запроса мог быть отменён, сброс кэша выполняется независимо от него
	if err := uc.cache.Invalidate(context.Background(), req.Domain); err != nil {
		uc.logger.Error("CommitBookings: failed to invalidate cache for domain %s: %v", req.Domain, err)
	}
}
