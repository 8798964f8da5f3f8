package notifier

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifier client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("notifier client: invalid response")

	// ErrServiceUnavailable возвращается, когда circuit breaker разомкнут
	// Подтверждение не отправляется, бронирование при этом уже создано
	ErrServiceUnavailable = errors.New("notifier client: service unavailable")
)
