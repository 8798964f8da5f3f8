package grid

import (
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

var (
	// ErrDomainNotFound возвращается, когда домен не сконфигурирован
	ErrDomainNotFound = errors.New("grid: domain not found")
)

// Registry сетки и политики всех сконфигурированных доменов
// После построения только читается, безопасен для конкурентного использования
type Registry struct {
	grids    map[string]*Grid
	policies map[string]domain.Policy
}

// NewRegistry строит сетку для каждого домена
func NewRegistry(configs []domain.DomainConfig, clock TimeProvider) (*Registry, error) {
	r := &Registry{
		grids:    make(map[string]*Grid, len(configs)),
		policies: make(map[string]domain.Policy, len(configs)),
	}

	for _, cfg := range configs {
		if _, dup := r.grids[cfg.Grid.Domain]; dup {
			return nil, fmt.Errorf("%w: duplicate domain %q", ErrInvalidConfig, cfg.Grid.Domain)
		}
		g, err := New(cfg.Grid, clock)
		if err != nil {
			return nil, fmt.Errorf("domain %q: %w", cfg.Grid.Domain, err)
		}
		r.grids[cfg.Grid.Domain] = g
		r.policies[cfg.Grid.Domain] = cfg.Policy
	}

	return r, nil
}

// Grid сетка домена
func (r *Registry) Grid(name string) (*Grid, error) {
	g, ok := r.grids[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDomainNotFound, name)
	}
	return g, nil
}

// Policy политика выделения домена
func (r *Registry) Policy(name string) (domain.Policy, error) {
	p, ok := r.policies[name]
	if !ok {
		return domain.Policy{}, fmt.Errorf("%w: %s", ErrDomainNotFound, name)
	}
	return p, nil
}

// Domains имена доменов в алфавитном порядке
func (r *Registry) Domains() []string {
	names := make([]string, 0, len(r.grids))
	for name := range r.grids {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
