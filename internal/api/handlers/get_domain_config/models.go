package get_domain_config

import (
	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/internal/grid"
)

// DomainConfigResponse HTTP response model
// Клиент строит по нему сетку и подсказки формы
type DomainConfigResponse struct {
	Domain               string     `json:"domain"`
	Shape                string     `json:"shape"`
	CollapseResourceAxis bool       `json:"collapseResourceAxis"`
	Timezone             string     `json:"timezone"`
	Slots                []Slot     `json:"slots"`
	Resources            []Resource `json:"resources"`
	Policy               Policy     `json:"policy"`
}

// Slot слот дня
type Slot struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"label,omitempty"`
}

// Resource ресурс домена
type Resource struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Category  string   `json:"category,omitempty"`
	Capacity  int      `json:"capacity,omitempty"`
	AdminOnly bool     `json:"adminOnly"`
	Layouts   []string `json:"layouts,omitempty"`
}

// Policy ограничения выделения; null = без ограничения
type Policy struct {
	MaxResources *int `json:"maxResources"`
	MaxSpanDays  *int `json:"maxSpanDays"`
}

// FromDomain собирает ответ из сетки и политики домена
func FromDomain(g *grid.Grid, policy domain.Policy) *DomainConfigResponse {
	resp := &DomainConfigResponse{
		Domain:               g.Domain(),
		Shape:                string(g.Shape()),
		CollapseResourceAxis: g.CollapseResourceAxis(),
		Timezone:             g.Location().String(),
		Slots:                make([]Slot, 0, g.SlotCount()),
		Resources:            make([]Resource, 0, len(g.Resources())),
	}

	for _, s := range g.Slots() {
		resp.Slots = append(resp.Slots, Slot{Start: s.Start.String(), End: s.End.String(), Label: s.Label})
	}

	for _, r := range g.Resources() {
		resp.Resources = append(resp.Resources, Resource{
			ID:        r.ID,
			Name:      r.Name,
			Category:  r.Category,
			Capacity:  r.Capacity,
			AdminOnly: r.AdminOnly,
			Layouts:   r.Layouts,
		})
	}

	if policy.HasResourceCap() {
		maxResources := policy.MaxResources
		resp.Policy.MaxResources = &maxResources
	}
	if policy.HasSpanCap() {
		maxSpan := policy.MaxSpanDays
		resp.Policy.MaxSpanDays = &maxSpan
	}

	return resp
}
