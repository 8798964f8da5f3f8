package commit_bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

// ReservationRepository интерфейс записи бронирований во внешнее хранилище
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
}

// ReservationCache интерфейс кэша списка бронирований
type ReservationCache interface {
	Invalidate(ctx context.Context, domain string) error
}

// Notifier интерфейс сервиса уведомлений
type Notifier interface {
	SendConfirmation(ctx context.Context, reservation *domain.Reservation) error
}

// SelectionStore хранилище выделения, которое очищается после сохранения
type SelectionStore interface {
	Clear()
}

// Metrics интерфейс метрик
type Metrics interface {
	ReservationCreated(domain string)
	PersistenceFailed(domain string)
	NotificationFailed(domain string)
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
