package commit_bookings

import (
	"context"

	commitBookings "github.com/m04kA/SMC-ResourceBooking/internal/usecase/commit_bookings"
)

type SessionService interface {
	Commit(
		ctx context.Context,
		sessionID string,
		acceptPartial bool,
		onProgress func(commitBookings.Progress),
	) (*commitBookings.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
