package navigate_session

import (
	"context"

	"github.com/m04kA/SMC-ResourceBooking/internal/service/sessions"
)

type SessionService interface {
	Navigate(ctx context.Context, sessionID string, view sessions.View) (*sessions.Snapshot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
