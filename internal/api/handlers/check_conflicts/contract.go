package check_conflicts

import (
	"context"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

type SessionService interface {
	Check(ctx context.Context, sessionID string, form domain.BookingForm) (*domain.ConflictReport, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
