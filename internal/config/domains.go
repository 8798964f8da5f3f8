package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/pkg/types"
)

// DomainConfig блок [domains.<name>]
// Слоты задаются либо open_time/close_time/slot_minutes, либо списком periods
type DomainConfig struct {
	Kind                 string           `toml:"kind"`
	Shape                string           `toml:"shape"`
	CollapseResourceAxis bool             `toml:"collapse_resource_axis"`
	Timezone             string           `toml:"timezone"`
	OpenTime             string           `toml:"open_time"`
	CloseTime            string           `toml:"close_time"`
	SlotMinutes          int              `toml:"slot_minutes"`
	Periods              []PeriodConfig   `toml:"periods"`
	ClosedWeekdays       []string         `toml:"closed_weekdays"`
	Holidays             []string         `toml:"holidays"`
	MaxResources         int              `toml:"max_resources"` // 0 = без ограничения
	MaxSpanDays          *int             `toml:"max_span_days"` // не задано или -1 = без ограничения
	RequireLayout        bool             `toml:"require_layout"`
	Resources            []ResourceConfig `toml:"resources"`
}

// PeriodConfig именованный период дня
type PeriodConfig struct {
	Label string `toml:"label"`
	Start string `toml:"start"`
	End   string `toml:"end"`
}

// ResourceConfig бронируемый ресурс
type ResourceConfig struct {
	ID        string   `toml:"id"`
	Name      string   `toml:"name"`
	Category  string   `toml:"category"`
	Capacity  int      `toml:"capacity"`
	AdminOnly bool     `toml:"admin_only"`
	Layouts   []string `toml:"layouts"`
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// DomainConfigs конфигурации доменов для движка в алфавитном порядке имён
func (c *Config) DomainConfigs() ([]domain.DomainConfig, error) {
	out := make([]domain.DomainConfig, 0, len(c.Domains))
	for _, name := range c.DomainNames() {
		dc, err := c.Domains[name].toDomain(name)
		if err != nil {
			return nil, err
		}
		out = append(out, dc)
	}
	return out, nil
}

func (d DomainConfig) toDomain(name string) (domain.DomainConfig, error) {
	invalid := func(format string, v ...interface{}) error {
		return fmt.Errorf("%w: domains.%s: %s", ErrInvalidConfig, name, fmt.Sprintf(format, v...))
	}

	shape := domain.ShapeRule(d.Shape)
	if !shape.IsValid() {
		return domain.DomainConfig{}, invalid("unknown shape %q", d.Shape)
	}
	if d.CollapseResourceAxis && shape != domain.ShapeRectangular {
		return domain.DomainConfig{}, invalid("collapse_resource_axis requires rectangular shape")
	}

	location := time.UTC
	if d.Timezone != "" {
		loc, err := time.LoadLocation(d.Timezone)
		if err != nil {
			return domain.DomainConfig{}, invalid("unknown timezone %q", d.Timezone)
		}
		location = loc
	}

	grid := domain.GridConfig{
		Domain:               name,
		Kind:                 d.Kind,
		Shape:                shape,
		CollapseResourceAxis: d.CollapseResourceAxis,
		Location:             location,
		SlotMinutes:          d.SlotMinutes,
	}

	if len(d.Periods) > 0 {
		for _, p := range d.Periods {
			start, err := types.NewTimeStringFromString(p.Start)
			if err != nil {
				return domain.DomainConfig{}, invalid("period %q start: %v", p.Label, err)
			}
			end, err := types.NewTimeStringFromString(p.End)
			if err != nil {
				return domain.DomainConfig{}, invalid("period %q end: %v", p.Label, err)
			}
			grid.Periods = append(grid.Periods, domain.Period{Label: p.Label, Start: start, End: end})
		}
	} else {
		open, err := types.NewTimeStringFromString(d.OpenTime)
		if err != nil {
			return domain.DomainConfig{}, invalid("open_time: %v", err)
		}
		closeTime, err := types.NewTimeStringFromString(d.CloseTime)
		if err != nil {
			return domain.DomainConfig{}, invalid("close_time: %v", err)
		}
		if d.SlotMinutes <= 0 {
			return domain.DomainConfig{}, invalid("slot_minutes must be positive")
		}
		grid.OpenTime = open
		grid.CloseTime = closeTime
	}

	for _, wd := range d.ClosedWeekdays {
		weekday, ok := weekdays[strings.ToLower(wd)]
		if !ok {
			return domain.DomainConfig{}, invalid("unknown weekday %q", wd)
		}
		grid.ClosedWeekdays = append(grid.ClosedWeekdays, weekday)
	}

	for _, h := range d.Holidays {
		date, err := domain.ParseDate(h)
		if err != nil {
			return domain.DomainConfig{}, invalid("holiday %q must be YYYY-MM-DD", h)
		}
		grid.Holidays = append(grid.Holidays, date)
	}

	if len(d.Resources) == 0 {
		return domain.DomainConfig{}, invalid("at least one resource is required")
	}
	for _, r := range d.Resources {
		if r.ID == "" {
			return domain.DomainConfig{}, invalid("resource id is required")
		}
		if d.RequireLayout && len(r.Layouts) == 0 {
			return domain.DomainConfig{}, invalid("resource %q must declare layouts", r.ID)
		}
		resourceName := r.Name
		if resourceName == "" {
			resourceName = r.ID
		}
		grid.Resources = append(grid.Resources, domain.Resource{
			ID:        r.ID,
			Name:      resourceName,
			Category:  r.Category,
			Capacity:  r.Capacity,
			AdminOnly: r.AdminOnly,
			Layouts:   r.Layouts,
		})
	}

	policy := domain.Policy{
		MaxResources: d.MaxResources,
		MaxSpanDays:  domain.UnboundedSpanDays,
	}
	if policy.MaxResources < 0 {
		return domain.DomainConfig{}, invalid("max_resources must not be negative")
	}
	if d.MaxSpanDays != nil {
		if *d.MaxSpanDays < domain.UnboundedSpanDays {
			return domain.DomainConfig{}, invalid("max_span_days must be -1 or greater")
		}
		policy.MaxSpanDays = *d.MaxSpanDays
	}

	return domain.DomainConfig{Grid: grid, Policy: policy}, nil
}
