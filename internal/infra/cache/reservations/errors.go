package reservations

import "errors"

var (
	// ErrBackend возвращается при ошибке хранилища кэша
	ErrBackend = errors.New("reservations.cache: backend error")

	// ErrRepository возвращается при ошибке чтения авторитетного хранилища
	ErrRepository = errors.New("reservations.cache: repository error")
)
