package get_domain_config

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/internal/grid"
	"github.com/m04kA/SMC-ResourceBooking/pkg/logger"
)

func newRegistry(t *testing.T) *grid.Registry {
	t.Helper()
	registry, err := grid.NewRegistry([]domain.DomainConfig{{
		Grid: domain.GridConfig{
			Domain:               "ai_tool",
			Shape:                domain.ShapeRectangular,
			CollapseResourceAxis: true,
			Location:             time.UTC,
			Periods: []domain.Period{
				{Label: "Morning", Start: "09:00", End: "13:00"},
				{Label: "Afternoon", Start: "13:00", End: "17:00"},
			},
			Resources: []domain.Resource{{ID: "assistant-1", Name: "Assistant 1"}},
		},
		Policy: domain.Policy{MaxResources: 2, MaxSpanDays: domain.UnboundedSpanDays},
	}}, nil)
	require.NoError(t, err)
	return registry
}

func TestHandle(t *testing.T) {
	h := NewHandler(newRegistry(t), logger.NewNop())

	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/v1/domains/ai_tool/config", nil),
		map[string]string{"domain": "ai_tool"})
	w := httptest.NewRecorder()
	h.Handle(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body DomainConfigResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "rectangular", body.Shape)
	assert.True(t, body.CollapseResourceAxis)
	assert.Equal(t, "UTC", body.Timezone)
	require.Len(t, body.Slots, 2)
	assert.Equal(t, "Afternoon", body.Slots[1].Label)
	require.NotNil(t, body.Policy.MaxResources)
	assert.Equal(t, 2, *body.Policy.MaxResources)
	assert.Nil(t, body.Policy.MaxSpanDays)
}

func TestHandle_UnknownDomain(t *testing.T) {
	h := NewHandler(newRegistry(t), logger.NewNop())

	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/v1/domains/boats/config", nil),
		map[string]string{"domain": "boats"})
	w := httptest.NewRecorder()
	h.Handle(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
