package observability

import (
	"context"
	"strings"
	"testing"

	"growthpro/internal/models"
	"growthpro/internal/version"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func setupMetricsProvider(t *testing.T) *Provider {
	t.Helper()
	metrics := models.MetricsConfig{Enabled: true, Path: "/metrics", Port: 9090}
	obs := models.ObservabilityConfig{ServiceName: "test"}
	provider, err := Setup(metrics, obs, version.Info{Version: "test"})
	require.NoError(t, err)
	t.Cleanup(func() { provider.Shutdown(context.Background()) })
	return provider
}

// findFamily returns the first gathered family whose name starts with prefix.
// The exporter appends unit and _total suffixes, so prefixes keep tests
// independent of its naming rules.
func findFamily(t *testing.T, p *Provider, prefix string) *dto.MetricFamily {
	t.Helper()
	families, err := p.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if strings.HasPrefix(mf.GetName(), prefix) {
			return mf
		}
	}
	return nil
}

func hasLabel(m *dto.Metric, name, value string) bool {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name && lp.GetValue() == value {
			return true
		}
	}
	return false
}

// counterValue sums every counter sample in the family carrying name=value.
func counterValue(mf *dto.MetricFamily, name, value string) float64 {
	var total float64
	if mf == nil {
		return 0
	}
	for _, m := range mf.GetMetric() {
		if hasLabel(m, name, value) {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}
