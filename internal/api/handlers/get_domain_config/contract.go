package get_domain_config

import (
	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/internal/grid"
)

type DomainRegistry interface {
	Grid(name string) (*grid.Grid, error)
	Policy(name string) (domain.Policy, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
