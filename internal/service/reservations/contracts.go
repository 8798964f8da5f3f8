package reservations

import (
	"context"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	Cancel(ctx context.Context, id int64) error
}

// ReservationCache интерфейс кэша списка бронирований
type ReservationCache interface {
	List(ctx context.Context, filter domain.ReservationFilter, fresh bool) ([]*domain.Reservation, error)
	Invalidate(ctx context.Context, domainName string) error
}

// DomainRegistry интерфейс реестра доменов
type DomainRegistry interface {
	Domains() []string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
