package get_grid

import "errors"

var (
	// ErrDomainNotFound возвращается, когда домен не сконфигурирован
	ErrDomainNotFound = errors.New("get_grid: domain not found")

	// ErrResourceNotFound возвращается, когда ресурс не найден в домене
	ErrResourceNotFound = errors.New("get_grid: resource not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_grid: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_grid: internal error")
)
