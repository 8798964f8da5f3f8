package check_conflicts

import "errors"

var (
	// ErrDomainNotFound возвращается, когда домен не сконфигурирован
	ErrDomainNotFound = errors.New("check_conflicts: domain not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_conflicts: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_conflicts: internal error")
)
