package config

import "errors"

var (
	// ErrReadConfig ошибка чтения файла конфигурации
	ErrReadConfig = errors.New("config: failed to read file")

	// ErrParseConfig ошибка разбора TOML
	ErrParseConfig = errors.New("config: failed to parse file")

	// ErrInvalidConfig конфигурация не прошла проверку
	ErrInvalidConfig = errors.New("config: invalid configuration")
)
