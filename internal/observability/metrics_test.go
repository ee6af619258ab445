package observability

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsServer(t *testing.T) {
	provider := setupMetricsProvider(t)

	ms := NewMetricsServer(9090, "/metrics", provider)
	assert.NotNil(t, ms)
	assert.NotNil(t, ms.server)
	assert.Equal(t, ":9090", ms.server.Addr)
}

func TestMetricsServer_ServeAndShutdown(t *testing.T) {
	provider := setupMetricsProvider(t)

	m, err := NewGovernorMetrics(provider, "memory")
	require.NoError(t, err)
	m.ObserveSweep(4)

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ms := NewMetricsServer(0, "/metrics", provider)

	errCh := make(chan error, 1)
	go func() {
		errCh <- ms.Serve(l)
	}()

	resp, err := http.Get("http://" + l.Addr().String() + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "governor_sweep_evictions")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, ms.Shutdown(ctx))
	assert.Equal(t, http.ErrServerClosed, <-errCh)
}

func TestNewMetricsServer_NilProvider(t *testing.T) {
	ms := NewMetricsServer(9090, "/metrics", nil)
	require.NotNil(t, ms)

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go ms.Serve(l)
	defer ms.Shutdown(context.Background())

	resp, err := http.Get("http://" + l.Addr().String() + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
