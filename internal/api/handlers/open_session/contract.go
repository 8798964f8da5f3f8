package open_session

import (
	"context"

	"github.com/m04kA/SMC-ResourceBooking/internal/service/sessions"
)

type SessionService interface {
	Open(ctx context.Context, domainName string) (*sessions.Snapshot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
