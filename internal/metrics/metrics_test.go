package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryIsSingleton(t *testing.T) {
	assert.Same(t, Registry(), Registry())
}

func TestHandlerServesMetrics(t *testing.T) {
	SimulationsTotal.Inc()
	LineupsSavedTotal.Inc()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	Handler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "lineup_lab_simulations_total")
	assert.Contains(t, body, "lineup_lab_lineups_saved_total")
}
