package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

const (
	msgValidationFailed = "форма заполнена некорректно"
	msgAccessDenied     = "ресурс доступен только администратору"
)

// FieldError ошибка поля формы
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ViolationDetails подробности нарушения политики выделения
type ViolationDetails struct {
	Rule       string `json:"rule"`
	Limit      int    `json:"limit,omitempty"`
	Actual     int    `json:"actual,omitempty"`
	ResourceID string `json:"resourceId,omitempty"`
}

// RespondDomainError отвечает на типизированные ошибки движка
// Возвращает false, если ошибка не относится к ним и её должен обработать вызывающий
func RespondDomainError(w http.ResponseWriter, err error) bool {
	var violation *domain.ConstraintViolation
	if errors.As(err, &violation) {
		details := ViolationDetails{
			Rule:       string(violation.Rule),
			Limit:      violation.Limit,
			Actual:     violation.Actual,
			ResourceID: violation.ResourceID,
		}
		if violation.Rule == domain.RuleAccess {
			RespondErrorWithDetails(w, http.StatusForbidden, msgAccessDenied, details)
			return true
		}
		RespondErrorWithDetails(w, http.StatusUnprocessableEntity, violation.Message, details)
		return true
	}

	var fieldErrs domain.ValidationErrors
	if errors.As(err, &fieldErrs) {
		RespondErrorWithDetails(w, http.StatusUnprocessableEntity, msgValidationFailed, toFieldErrors(fieldErrs))
		return true
	}

	var fieldErr *domain.ValidationError
	if errors.As(err, &fieldErr) {
		RespondErrorWithDetails(w, http.StatusUnprocessableEntity, msgValidationFailed,
			toFieldErrors(domain.ValidationErrors{fieldErr}))
		return true
	}

	return false
}

func toFieldErrors(errs domain.ValidationErrors) []FieldError {
	out := make([]FieldError, 0, len(errs))
	for _, e := range errs {
		out = append(out, FieldError{Field: e.Field, Message: e.Message})
	}
	return out
}
