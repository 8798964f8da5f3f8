package cancel_selection

import (
	"github.com/m04kA/SMC-ResourceBooking/internal/service/sessions"
)

type SessionService interface {
	Cancel(sessionID string) (*sessions.Snapshot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
