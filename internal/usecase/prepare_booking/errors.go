package prepare_booking

import "errors"

var (
	// ErrDomainNotFound возвращается, когда домен не сконфигурирован
	ErrDomainNotFound = errors.New("prepare_booking: domain not found")

	// ErrEmptySelection возвращается, когда нечего бронировать
	ErrEmptySelection = errors.New("prepare_booking: selection is empty")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("prepare_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("prepare_booking: internal error")
)
