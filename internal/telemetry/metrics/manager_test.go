package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager_RegistersChallengeMetrics(t *testing.T) {
	m, reg := NewTestManagerAndRegistry()

	m.CounterDaysCompleted.Inc()
	m.CounterDaysCompleted.Inc()
	m.CounterNotifications.WithLabelValues("reminder", "ok").Inc()
	m.HistogramCronDuration.WithLabelValues("progression").Observe(0.5)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CounterDaysCompleted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterNotifications.WithLabelValues("reminder", "ok")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["challenge45_test_server_days_completed"])
	assert.True(t, names["challenge45_test_server_cron_duration_seconds"])
}

func TestSetupPrometheus(t *testing.T) {
	reg := SetupPrometheus()
	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
