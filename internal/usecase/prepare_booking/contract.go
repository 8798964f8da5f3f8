package prepare_booking

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ResourceBooking/internal/grid"
)

// GridProvider интерфейс реестра сеток доменов
type GridProvider interface {
	Grid(name string) (*grid.Grid, error)
}

// SeriesIDGenerator интерфейс генератора идентификаторов серий повторов
type SeriesIDGenerator interface {
	NewSeriesID() string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// UUIDGenerator генератор идентификаторов серий для production
type UUIDGenerator struct{}

// NewSeriesID возвращает случайный UUID
func (g *UUIDGenerator) NewSeriesID() string {
	return uuid.NewString()
}
