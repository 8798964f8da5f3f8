package notifier

import (
	"context"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

// Nop уведомления отключены (transport = "none")
type Nop struct {
	log Logger
}

// NewNop создает notifier, который только пишет в лог
func NewNop(log Logger) *Nop {
	return &Nop{log: log}
}

// SendConfirmation ничего не отправляет
func (n *Nop) SendConfirmation(_ context.Context, reservation *domain.Reservation) error {
	n.log.Info("Notifications disabled, skipping confirmation for reservation_id=%d", reservation.ID)
	return nil
}
