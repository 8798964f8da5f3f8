package eventbus

import "errors"

var (
	// ErrConnect ошибка подключения к брокеру
	ErrConnect = errors.New("eventbus: failed to connect")

	// ErrPublish ошибка публикации сообщения
	ErrPublish = errors.New("eventbus: failed to publish")
)
