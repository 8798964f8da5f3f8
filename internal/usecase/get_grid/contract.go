package get_grid

import (
	"context"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/internal/grid"
)

// ReservationLister интерфейс чтения бронирований
type ReservationLister interface {
	// List при fresh = false может вернуть кэшированный список
	List(ctx context.Context, filter domain.ReservationFilter, fresh bool) ([]*domain.Reservation, error)
}

// GridProvider интерфейс реестра сеток доменов
type GridProvider interface {
	Grid(name string) (*grid.Grid, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
