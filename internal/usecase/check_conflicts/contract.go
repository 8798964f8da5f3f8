package check_conflicts

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/internal/grid"
)

// ReservationLister интерфейс чтения бронирований
// fresh = true обязывает прочитать хранилище в обход кэша
type ReservationLister interface {
	List(ctx context.Context, filter domain.ReservationFilter, fresh bool) ([]*domain.Reservation, error)
}

// GridProvider интерфейс реестра сеток доменов
type GridProvider interface {
	Grid(name string) (*grid.Grid, error)
}

// Metrics интерфейс метрик
type Metrics interface {
	ConflictsDetected(domain string, count int)
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
