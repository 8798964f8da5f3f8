package sessions

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/internal/grid"
	"github.com/m04kA/SMC-ResourceBooking/internal/usecase/check_conflicts"
	"github.com/m04kA/SMC-ResourceBooking/internal/usecase/commit_bookings"
	"github.com/m04kA/SMC-ResourceBooking/internal/usecase/prepare_booking"
)

// GridRegistry интерфейс реестра сеток и политик доменов
type GridRegistry interface {
	Grid(name string) (*grid.Grid, error)
	Policy(name string) (domain.Policy, error)
}

// ReservationLister интерфейс чтения бронирований (через кэш)
type ReservationLister interface {
	List(ctx context.Context, filter domain.ReservationFilter, fresh bool) ([]*domain.Reservation, error)
}

// PrepareUseCase интерфейс подготовки кандидатов
type PrepareUseCase interface {
	Execute(ctx context.Context, req *prepare_booking.Request) (*prepare_booking.Response, error)
}

// CheckUseCase интерфейс проверки конфликтов
type CheckUseCase interface {
	Execute(ctx context.Context, req *check_conflicts.Request) (*check_conflicts.Response, error)
}

// CommitUseCase интерфейс сохранения кандидатов
type CommitUseCase interface {
	Execute(ctx context.Context, req *commit_bookings.Request) (*commit_bookings.Response, error)
}

// Metrics интерфейс метрик
type Metrics interface {
	SelectionRejected(domain, rule string)
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
