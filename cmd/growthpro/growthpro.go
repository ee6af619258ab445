package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"growthpro/internal/api"
	"growthpro/internal/business"
	"growthpro/internal/config"
	"growthpro/internal/logger"
	"growthpro/internal/models"
	"growthpro/internal/observability"
	"growthpro/internal/ratelimit"
	"growthpro/internal/synth"
	"growthpro/internal/version"
)

var (
	configFile    = flag.String("config", "", "Path to configuration file")
	showVersion   = flag.Bool("version", false, "Print version information and exit")
	exampleConfig = flag.String("write-example-config", "", "Write an example configuration file to the given path and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.GetInfo().String())
		return
	}

	if *exampleConfig != "" {
		if err := config.SaveExample(*exampleConfig); err != nil {
			slog.Error("Failed to write example configuration", "error", err)
			os.Exit(1)
		}
		fmt.Printf("Example configuration written to %s\n", *exampleConfig)
		return
	}

	// Load configuration
	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	ver := version.GetInfo()

	// Initialize structured logging
	log, closer, err := logger.Setup(cfg.Logging, ver)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	if closer != nil {
		defer closer.Close()
	}
	slog.SetDefault(log)

	// Initialize observability (OpenTelemetry)
	otelProvider, err := observability.Setup(cfg.Metrics, cfg.Observability, ver)
	if err != nil {
		slog.Error("Failed to initialize observability", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := otelProvider.Shutdown(shutdownCtx); err != nil {
			slog.Error("Failed to shutdown observability", "error", err)
		}
	}()

	service, err := initializeService(cfg, otelProvider)
	if err != nil {
		slog.Error("Failed to initialize business service", "error", err)
		os.Exit(1)
	}

	handlerOpts := []api.HandlerOption{}
	routeOpts := []api.RouteOption{}
	if cfg.Observability.Tracing.Enabled {
		routeOpts = append(routeOpts, api.WithOTelMiddleware(cfg.Observability.ServiceName))
	}

	// Initialize the request governor if enabled
	if cfg.Governor.Enabled {
		limiter, opts, err := initializeGovernor(cfg.Governor, cfg.Metrics.Enabled, otelProvider)
		if err != nil {
			slog.Error("Failed to initialize request governor", "error", err)
			os.Exit(1)
		}
		defer limiter.Close()

		trusted, err := ratelimit.ParseTrustedProxies(cfg.Governor.TrustedProxies)
		if err != nil {
			slog.Error("Invalid trusted proxy list", "error", err)
			os.Exit(1)
		}
		if len(trusted) > 0 {
			slog.Info("Honoring forwarding headers from trusted proxies", "proxies", cfg.Governor.TrustedProxies)
		}

		handlerOpts = append(handlerOpts, opts...)
		routeOpts = append(routeOpts, api.WithGovernor(ratelimit.Middleware(limiter, ratelimit.NewClientKeyFunc(trusted))))
	} else {
		slog.Warn("Request governor disabled, governed endpoints accept unlimited requests")
	}

	handlers := api.NewHandlers(service, handlerOpts...)
	router := api.SetupRoutes(handlers, cfg, routeOpts...)

	// Start metrics server if enabled
	var metricsServer *observability.MetricsServer
	if cfg.Metrics.Enabled {
		metricsServer = observability.NewMetricsServer(cfg.Metrics.Port, cfg.Metrics.Path, otelProvider)
		go func() {
			if err := metricsServer.Start(); err != nil && err != http.ErrServerClosed {
				slog.Error("Metrics server failed", "error", err)
			}
		}()
	}

	if cfg.Server.TLSEnabled && (cfg.Server.TLSCertFile == "" || cfg.Server.TLSKeyFile == "") {
		slog.Error("TLS is enabled but cert file or key file is not specified")
		os.Exit(1)
	}

	listener, err := listenWithFallback(cfg.Server.Host, cfg.Server.Port, cfg.Server.PortFallbackAttempts)
	if err != nil {
		slog.Error("Server failed to start", "error", err)
		os.Exit(1)
	}

	// Create HTTP server
	server := &http.Server{
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Starting server", "addr", listener.Addr().String())

		var err error
		if cfg.Server.TLSEnabled {
			slog.Info("Starting HTTPS server with TLS")
			err = server.ServeTLS(listener, cfg.Server.TLSCertFile, cfg.Server.TLSKeyFile)
		} else {
			slog.Info("Starting HTTP server")
			err = server.Serve(listener)
		}

		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server")

	// Create a deadline to wait for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown metrics server
	if metricsServer != nil {
		if err := metricsServer.Shutdown(ctx); err != nil {
			slog.Error("Metrics server forced to shutdown", "error", err)
		}
	}

	// Attempt graceful shutdown
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	slog.Info("Server shutdown complete")
}

// initializeService builds the business service over the configured random
// source, instrumented when metrics or tracing are on.
func initializeService(cfg *models.Config, provider *observability.Provider) (business.ServiceInterface, error) {
	var src synth.Source
	if cfg.Synthesis.Seed != 0 {
		slog.Info("Using seeded random source", "seed", cfg.Synthesis.Seed)
		src = synth.NewSeededSource(cfg.Synthesis.Seed)
	} else {
		src = synth.NewEntropySource()
	}

	service := business.NewService(synth.NewDataSynthesizer(), src)
	if !cfg.Metrics.Enabled && !cfg.Observability.Tracing.Enabled {
		return service, nil
	}
	return observability.NewInstrumentedService(service, provider)
}

// initializeGovernor creates the configured limiter backend and the health
// report options describing it.
func initializeGovernor(cfg models.GovernorConfig, metricsEnabled bool, provider *observability.Provider) (ratelimit.Limiter, []api.HandlerOption, error) {
	var govMetrics *observability.GovernorMetrics
	if metricsEnabled {
		m, err := observability.NewGovernorMetrics(provider, cfg.Backend)
		if err != nil {
			return nil, nil, fmt.Errorf("governor metrics: %w", err)
		}
		govMetrics = m
	}

	var limiter ratelimit.Limiter
	var opts []api.HandlerOption

	switch cfg.Backend {
	case models.GovernorBackendRedis:
		rl, err := ratelimit.NewRedisLimiter(ratelimit.RedisConfig{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
			Timeout:   cfg.Redis.Timeout,
		}, cfg.Window, cfg.MaxAdmits)
		if err != nil {
			return nil, nil, err
		}
		limiter = rl
		opts = append(opts, api.WithComponent("governor", "redis backend at "+cfg.Redis.Addr, rl.Ping))

	default:
		govOpts := []ratelimit.GovernorOption{ratelimit.WithSweepInterval(cfg.SweepInterval)}
		if govMetrics != nil {
			govOpts = append(govOpts, ratelimit.WithSweepObserver(govMetrics.ObserveSweep))
		}
		g := ratelimit.NewGovernor(cfg.Window, cfg.MaxAdmits, govOpts...)
		g.Start()

		if govMetrics != nil {
			if err := govMetrics.RegisterBucketGauge(g.Len); err != nil {
				g.Stop()
				return nil, nil, fmt.Errorf("governor bucket gauge: %w", err)
			}
		}

		limiter = g
		opts = append(opts,
			api.WithComponent("governor", "memory backend", nil),
			api.WithHealthGauge("governor_buckets", g.Len),
		)
	}

	slog.Info("Request governor enabled",
		"backend", cfg.Backend,
		"window", cfg.Window,
		"max_admits", cfg.MaxAdmits)

	if govMetrics != nil {
		limiter = govMetrics.Wrap(limiter)
	}
	return limiter, opts, nil
}

// listenWithFallback binds host:port, moving on to the next port while the
// current one is already in use, for at most attempts extra ports.
func listenWithFallback(host string, port, attempts int) (net.Listener, error) {
	var lastErr error
	for i := 0; i <= attempts; i++ {
		addr := net.JoinHostPort(host, fmt.Sprintf("%d", port+i))
		l, err := net.Listen("tcp", addr)
		if err == nil {
			if i > 0 {
				slog.Warn("Configured port in use, using fallback",
					"configured_port", port,
					"port", port+i)
			}
			return l, nil
		}
		if !errors.Is(err, syscall.EADDRINUSE) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("no free port in %d-%d: %w", port, port+attempts, lastErr)
}
