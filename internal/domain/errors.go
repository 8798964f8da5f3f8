package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation базовая ошибка незаполненных / некорректных полей формы
	ErrValidation = errors.New("domain: validation failed")

	// ErrConstraintViolation базовая ошибка нарушения политики выделения
	ErrConstraintViolation = errors.New("domain: constraint violation")

	// ErrPersistence базовая ошибка записи во внешнее хранилище
	ErrPersistence = errors.New("domain: persistence failed")
)

// ValidationError ошибка конкретного поля формы
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrValidation, e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ValidationErrors набор ошибок полей
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return fmt.Sprintf("%v: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// ConstraintRule правило политики выделения
type ConstraintRule string

const (
	RuleResourceCap ConstraintRule = "resource_cap"
	RuleDateSpan    ConstraintRule = "date_span"
	RuleAccess      ConstraintRule = "access"
	RuleTemporal    ConstraintRule = "temporal"
)

// ConstraintViolation нарушение политики выделения
// Limit/Actual заполняются для ограничений-лимитов
type ConstraintViolation struct {
	Rule       ConstraintRule
	Limit      int
	Actual     int
	ResourceID string
	Message    string
}

func (e *ConstraintViolation) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrConstraintViolation, e.Rule, e.Message)
}

func (e *ConstraintViolation) Is(target error) bool {
	return target == ErrConstraintViolation
}

// PersistenceError ошибка записи в середине цикла сохранения
// Уже созданные бронирования остаются, оставшиеся кандидаты не отправлялись
type PersistenceError struct {
	CreatedIDs []int64
	Failed     BookingCandidate
	Abandoned  []BookingCandidate
	Err        error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%v: created=%d, failed=1, abandoned=%d: %v",
		ErrPersistence, len(e.CreatedIDs), len(e.Abandoned), e.Err)
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
