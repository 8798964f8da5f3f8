package reservations

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

// Cache кэш списка бронирований домена поверх репозитория
// В кэше лежит полный список домена (включая отменённые), фильтр применяется в памяти
type Cache struct {
	repo    Repository
	backend Backend
	ttl     time.Duration
	metrics Metrics
	logger  Logger
}

// New создает кэш
func New(repo Repository, backend Backend, ttl time.Duration, metrics Metrics, logger Logger) *Cache {
	return &Cache{
		repo:    repo,
		backend: backend,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
	}
}

// List читает бронирования
// fresh = true всегда идёт в репозиторий и не трогает кэш: это точка оптимистичной проверки конфликтов
func (c *Cache) List(ctx context.Context, filter domain.ReservationFilter, fresh bool) ([]*domain.Reservation, error) {
	if fresh {
		list, err := c.repo.List(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("%w: List - fresh read: %v", ErrRepository, err)
		}
		return list, nil
	}

	list, found, err := c.backend.Get(ctx, filter.Domain)
	if err != nil {
		// Недоступный кэш не должен ломать чтение
		c.logger.Warn("ReservationCache: get %s failed, falling back to repository: %v", filter.Domain, err)
	}
	if found {
		c.metrics.CacheHit(filter.Domain)
		return applyFilter(list, filter), nil
	}
	c.metrics.CacheMiss(filter.Domain)

	list, err = c.repo.List(ctx, domain.ReservationFilter{Domain: filter.Domain, IncludeCancelled: true})
	if err != nil {
		return nil, fmt.Errorf("%w: List - load domain %s: %v", ErrRepository, filter.Domain, err)
	}

	if err := c.backend.Set(ctx, filter.Domain, list, c.ttl); err != nil {
		c.logger.Warn("ReservationCache: set %s failed: %v", filter.Domain, err)
	}

	return applyFilter(list, filter), nil
}

// Invalidate сбрасывает кэш домена, следующее чтение пойдёт в репозиторий
func (c *Cache) Invalidate(ctx context.Context, domainName string) error {
	if err := c.backend.Delete(ctx, domainName); err != nil {
		return fmt.Errorf("%w: Invalidate - %s: %v", ErrBackend, domainName, err)
	}
	c.logger.Info("ReservationCache: invalidated domain %s", domainName)
	return nil
}

func applyFilter(list []*domain.Reservation, filter domain.ReservationFilter) []*domain.Reservation {
	out := make([]*domain.Reservation, 0, len(list))
	for _, r := range list {
		if !filter.IncludeCancelled && !r.IsActive() {
			continue
		}
		if filter.ResourceID != nil && r.ResourceID != *filter.ResourceID {
			continue
		}
		if filter.From != nil && r.StartDate.Before(domain.DateOnly(*filter.From)) {
			continue
		}
		if filter.To != nil && r.StartDate.After(domain.DateOnly(*filter.To)) {
			continue
		}
		out = append(out, r)
	}
	return out
}
