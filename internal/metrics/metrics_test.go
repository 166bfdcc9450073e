package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_RegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() { Init(reg) })

	Renders.WithLabelValues("success").Inc()
	SessionsStarted.Inc()

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["bot_renders_total"])
	assert.True(t, names["bot_sessions_started_total"])

	// registering twice on the same registry must fail
	assert.Panics(t, func() { Init(reg) })
}

func TestRendersCounter(t *testing.T) {
	before := testutil.ToFloat64(Renders.WithLabelValues("failure"))
	Renders.WithLabelValues("failure").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(Renders.WithLabelValues("failure")))
}
