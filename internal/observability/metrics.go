package observability

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
)

// MetricsServer serves Prometheus metrics on a separate port so scrapes never
// pass through the governed API router.
type MetricsServer struct {
	server *http.Server
}

// NewMetricsServer creates a metrics HTTP server serving the provider's
// registry at the given path on the given port. A nil provider or one with
// metrics disabled yields a server that answers 404 everywhere.
func NewMetricsServer(port int, path string, provider *Provider) *MetricsServer {
	mux := http.NewServeMux()

	if h := provider.Handler(); h != nil {
		mux.Handle(path, h)
	}

	return &MetricsServer{
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		},
	}
}

// Start begins serving metrics in a blocking call.
// Returns http.ErrServerClosed on graceful shutdown.
func (ms *MetricsServer) Start() error {
	slog.Info("Starting metrics server", "addr", ms.server.Addr)
	return ms.server.ListenAndServe()
}

// Serve serves metrics on an existing listener in a blocking call.
func (ms *MetricsServer) Serve(l net.Listener) error {
	slog.Info("Starting metrics server", "addr", l.Addr().String())
	return ms.server.Serve(l)
}

// Shutdown gracefully stops the metrics server.
func (ms *MetricsServer) Shutdown(ctx context.Context) error {
	return ms.server.Shutdown(ctx)
}
