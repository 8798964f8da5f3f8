package sessions

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена или истекла
	ErrSessionNotFound = errors.New("sessions: session not found")

	// ErrDomainNotFound возвращается, когда домен не сконфигурирован
	ErrDomainNotFound = errors.New("sessions: domain not found")

	// ErrResourceNotFound возвращается, когда ресурс не принадлежит домену
	ErrResourceNotFound = errors.New("sessions: resource not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("sessions: invalid input data")

	// ErrInvalidPasscode возвращается при неверном коде администратора
	ErrInvalidPasscode = errors.New("sessions: invalid admin passcode")

	// ErrNotChecked возвращается, когда выделение не проверено на конфликты перед сохранением
	ErrNotChecked = errors.New("sessions: selection has not been checked for conflicts")

	// ErrConflictsPending возвращается, когда есть конфликты, а частичное сохранение не подтверждено
	ErrConflictsPending = errors.New("sessions: conflicts must be confirmed before commit")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("sessions: internal error")
)

// StaleReportError свежая проверка перед записью нашла конфликты, которых не было в подтверждённом отчёте
// Report заменяет прежний отчёт сессии; повторный Commit работает уже с ним
type StaleReportError struct {
	Report *domain.ConflictReport
}

func (e *StaleReportError) Error() string {
	return fmt.Sprintf("%v: %d conflicting candidates after re-check", ErrConflictsPending, len(e.Report.Conflicting))
}

func (e *StaleReportError) Unwrap() error {
	return ErrConflictsPending
}
