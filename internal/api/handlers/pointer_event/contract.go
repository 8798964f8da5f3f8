package pointer_event

import (
	"github.com/m04kA/SMC-ResourceBooking/internal/service/sessions"
)

type SessionService interface {
	Pointer(sessionID string, event sessions.PointerEvent) (*sessions.PointerResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
