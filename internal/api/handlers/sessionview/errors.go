package sessionview

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ResourceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ResourceBooking/internal/service/sessions"
	"github.com/m04kA/SMC-ResourceBooking/internal/usecase/commit_bookings"
	"github.com/m04kA/SMC-ResourceBooking/internal/usecase/prepare_booking"
)

const (
	msgSessionNotFound  = "сессия не найдена или истекла"
	msgDomainNotFound   = "домен бронирования не найден"
	msgResourceNotFound = "ресурс не найден"
	msgInvalidInput     = "некорректные входные данные"
	msgInvalidPasscode  = "неверный код администратора"
	msgNotChecked       = "выделение не проверено на конфликты"
	msgConflictsPending = "есть конфликтующие бронирования, требуется подтверждение"
	msgEmptySelection   = "выделение пусто"
	msgNothingToCommit  = "нет бронирований для сохранения"
)

// RespondError отвечает на ошибки сервиса сессий и движка
// Возвращает false для неизвестных ошибок: их логирует и обрабатывает вызывающий как 500
func RespondError(w http.ResponseWriter, err error) bool {
	if handlers.RespondDomainError(w, err) {
		return true
	}

	switch {
	case errors.Is(err, sessions.ErrSessionNotFound):
		handlers.RespondNotFound(w, msgSessionNotFound)
	case errors.Is(err, sessions.ErrDomainNotFound):
		handlers.RespondNotFound(w, msgDomainNotFound)
	case errors.Is(err, sessions.ErrResourceNotFound):
		handlers.RespondNotFound(w, msgResourceNotFound)
	case errors.Is(err, sessions.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)
	case errors.Is(err, sessions.ErrInvalidPasscode):
		handlers.RespondForbidden(w, msgInvalidPasscode)
	case errors.Is(err, sessions.ErrNotChecked):
		handlers.RespondConflict(w, msgNotChecked)
	case errors.Is(err, sessions.ErrConflictsPending):
		handlers.RespondConflict(w, msgConflictsPending)
	case errors.Is(err, prepare_booking.ErrEmptySelection):
		handlers.RespondError(w, http.StatusUnprocessableEntity, msgEmptySelection)
	case errors.Is(err, commit_bookings.ErrNothingToCommit):
		handlers.RespondConflict(w, msgNothingToCommit)
	default:
		return false
	}
	return true
}
