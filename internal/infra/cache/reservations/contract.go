package reservations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

// Repository интерфейс авторитетного хранилища бронирований
type Repository interface {
	List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
}

// Backend интерфейс хранилища кэша
// found = false означает промах (нет записи или истёк TTL)
type Backend interface {
	Get(ctx context.Context, domainName string) (list []*domain.Reservation, found bool, err error)
	Set(ctx context.Context, domainName string, list []*domain.Reservation, ttl time.Duration) error
	Delete(ctx context.Context, domainName string) error
}

// Metrics интерфейс метрик
type Metrics interface {
	CacheHit(domain string)
	CacheMiss(domain string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
