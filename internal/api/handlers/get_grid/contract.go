package get_grid

import (
	"context"

	getGrid "github.com/m04kA/SMC-ResourceBooking/internal/usecase/get_grid"
)

type GetGridUseCase interface {
	Execute(ctx context.Context, req *getGrid.Request) (*getGrid.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
