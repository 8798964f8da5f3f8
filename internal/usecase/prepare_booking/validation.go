package prepare_booking

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/internal/grid"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.Domain) == "" {
		return fmt.Errorf("%w: domain is required", ErrInvalidInput)
	}

	if len(req.Selections) == 0 {
		return ErrEmptySelection
	}

	for _, s := range req.Selections {
		if s.ResourceID == "" || s.Date.IsZero() {
			return fmt.Errorf("%w: selection must have resource and date", ErrInvalidInput)
		}
		if !s.Start.IsBefore(s.End) {
			return fmt.Errorf("%w: selection %s is empty", ErrInvalidInput, s.Interval())
		}
	}

	return nil
}

// validateForm проверяет поля формы до обращения к сети
// Возвращает все ошибки полей сразу, чтобы форма могла подсветить их одновременно
func validateForm(g *grid.Grid, selections []domain.MergedSelection, form domain.BookingForm) domain.ValidationErrors {
	var errs domain.ValidationErrors
	add := func(field, message string) {
		errs = append(errs, &domain.ValidationError{Field: field, Message: message})
	}

	if strings.TrimSpace(form.Requester.Name) == "" {
		add("requester.name", "name is required")
	} else if utf8.RuneCountInString(form.Requester.Name) > domain.MaxRequesterLength {
		add("requester.name", fmt.Sprintf("name must be at most %d characters", domain.MaxRequesterLength))
	}

	if strings.TrimSpace(form.Requester.Contact) == "" {
		add("requester.contact", "contact is required")
	} else if utf8.RuneCountInString(form.Requester.Contact) > domain.MaxRequesterLength {
		add("requester.contact", fmt.Sprintf("contact must be at most %d characters", domain.MaxRequesterLength))
	}

	if strings.TrimSpace(form.Purpose) == "" {
		add("purpose", "purpose is required")
	} else if utf8.RuneCountInString(form.Purpose) > domain.MaxPurposeLength {
		add("purpose", fmt.Sprintf("purpose must be at most %d characters", domain.MaxPurposeLength))
	}

	if form.Note != nil && utf8.RuneCountInString(*form.Note) > domain.MaxNoteLength {
		add("note", fmt.Sprintf("note must be at most %d characters", domain.MaxNoteLength))
	}

	errs = append(errs, validateLayout(g, selections, form)...)
	errs = append(errs, validateRecurrence(selections, form)...)

	return errs
}

// validateLayout расстановка обязательна только для ресурсов, которые её объявляют
func validateLayout(g *grid.Grid, selections []domain.MergedSelection, form domain.BookingForm) domain.ValidationErrors {
	var errs domain.ValidationErrors
	checked := make(map[string]struct{})

	for _, s := range selections {
		if _, ok := checked[s.ResourceID]; ok {
			continue
		}
		checked[s.ResourceID] = struct{}{}

		resource, _ := g.Resource(s.ResourceID)
		if !resource.RequiresLayout() {
			continue
		}

		if form.Layout == nil || *form.Layout == "" {
			errs = append(errs, &domain.ValidationError{
				Field:   "layout",
				Message: fmt.Sprintf("layout is required for %s", resource.Name),
			})
		} else if !resource.HasLayout(*form.Layout) {
			errs = append(errs, &domain.ValidationError{
				Field:   "layout",
				Message: fmt.Sprintf("layout %q is not available for %s", *form.Layout, resource.Name),
			})
		}

		if form.Attendees != nil && resource.Capacity > 0 && *form.Attendees > resource.Capacity {
			errs = append(errs, &domain.ValidationError{
				Field:   "attendees",
				Message: fmt.Sprintf("%s fits at most %d attendees", resource.Name, resource.Capacity),
			})
		}
	}

	if form.Attendees != nil && *form.Attendees <= 0 {
		errs = append(errs, &domain.ValidationError{Field: "attendees", Message: "attendees must be positive"})
	}

	return errs
}

func validateRecurrence(selections []domain.MergedSelection, form domain.BookingForm) domain.ValidationErrors {
	if !form.RecurrenceRule.IsValid() {
		return domain.ValidationErrors{{
			Field:   "recurrence.rule",
			Message: fmt.Sprintf("unknown recurrence rule %q", form.RecurrenceRule),
		}}
	}
	if !form.IsRecurring() {
		return nil
	}
	if form.RecurrenceEnd == nil || form.RecurrenceEnd.IsZero() {
		return domain.ValidationErrors{{Field: "recurrence.end", Message: "end date is required"}}
	}

	var latest time.Time
	for _, s := range selections {
		if s.Date.After(latest) {
			latest = s.Date
		}
	}
	if domain.DateOnly(*form.RecurrenceEnd).Before(domain.DateOnly(latest)) {
		return domain.ValidationErrors{{
			Field:   "recurrence.end",
			Message: fmt.Sprintf("end date must not be before %s", latest.Format(domain.DateFormat)),
		}}
	}

	return nil
}
