package get_domain_config

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ResourceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ResourceBooking/internal/grid"
)

const msgDomainNotFound = "домен бронирования не найден"

type Handler struct {
	registry DomainRegistry
	logger   Logger
}

func NewHandler(registry DomainRegistry, logger Logger) *Handler {
	return &Handler{
		registry: registry,
		logger:   logger,
	}
}

// Handle GET /api/v1/domains/{domain}/config
// Публичный endpoint: конфигурация только читается, изменить её можно лишь файлом
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	domainName := mux.Vars(r)["domain"]

	g, err := h.registry.Grid(domainName)
	if err == nil {
		policy, policyErr := h.registry.Policy(domainName)
		if policyErr == nil {
			h.logger.Info("GET /domains/{domain}/config - Config retrieved: domain=%s", domainName)
			handlers.RespondJSON(w, http.StatusOK, FromDomain(g, policy))
			return
		}
		err = policyErr
	}

	if errors.Is(err, grid.ErrDomainNotFound) {
		h.logger.Warn("GET /domains/{domain}/config - Domain not found: domain=%s", domainName)
		handlers.RespondNotFound(w, msgDomainNotFound)
		return
	}

	h.logger.Error("GET /domains/{domain}/config - Failed to get config: domain=%s, error=%v", domainName, err)
	handlers.RespondInternalError(w)
}
