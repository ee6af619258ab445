// Package models - Service configuration and operational settings.
// This file defines the configuration structures for every service component.
//
// Configuration Philosophy:
// - Hierarchical configuration grouped by component (server, governor, synthesis, ...)
// - Defaults that reproduce the reference deployment out of the box
// - Validation catches misconfigurations before the server starts
package models

import (
	"errors"
	"fmt"
	"net/netip"
	"slices"
	"time"
)

// Governor backend constants
const (
	GovernorBackendMemory = "memory"
	GovernorBackendRedis  = "redis"
)

// Default governor policy: 15 admitted requests per client per 60 seconds.
const (
	DefaultGovernorWindow    = 60 * time.Second
	DefaultGovernorMaxAdmits = 15
)

// Config is the root configuration structure containing all service settings.
//
// Configuration Structure:
// - Server: HTTP listener, timeouts, TLS, CORS and port fallback
// - Governor: per-client request admission policy and its backend
// - Synthesis: random source used to fabricate records
// - Logging: structured logging and output configuration
// - Metrics: Prometheus endpoint
// - Observability: OpenTelemetry tracing
type Config struct {
	Server        ServerConfig        `yaml:"server" json:"server"`
	Governor      GovernorConfig      `yaml:"governor" json:"governor"`
	Synthesis     SynthesisConfig     `yaml:"synthesis" json:"synthesis"`
	Logging       LoggingConfig       `yaml:"logging" json:"logging"`
	Metrics       MetricsConfig       `yaml:"metrics" json:"metrics"`
	Observability ObservabilityConfig `yaml:"observability" json:"observability"`
}

type ServerConfig struct {
	Port         int           `yaml:"port" json:"port"`
	Host         string        `yaml:"host" json:"host"`
	ReadTimeout  time.Duration `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" json:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" json:"idle_timeout"`
	TLSEnabled   bool          `yaml:"tls_enabled" json:"tls_enabled"`
	TLSCertFile  string        `yaml:"tls_cert_file" json:"tls_cert_file"`
	TLSKeyFile   string        `yaml:"tls_key_file" json:"tls_key_file"`
	// PortFallbackAttempts is how many successive ports are tried when the
	// configured one is already in use. Zero disables the fallback.
	PortFallbackAttempts int        `yaml:"port_fallback_attempts" json:"port_fallback_attempts"`
	CORS                 CORSConfig `yaml:"cors" json:"cors"`
}

type CORSConfig struct {
	Enabled          bool     `yaml:"enabled" json:"enabled"`
	AllowedOrigins   []string `yaml:"allowed_origins" json:"allowed_origins"`
	AllowedMethods   []string `yaml:"allowed_methods" json:"allowed_methods"`
	AllowedHeaders   []string `yaml:"allowed_headers" json:"allowed_headers"`
	AllowCredentials bool     `yaml:"allow_credentials" json:"allow_credentials"`
	MaxAge           int      `yaml:"max_age" json:"max_age"`
}

// GovernorConfig controls request admission on the governed endpoints.
type GovernorConfig struct {
	Enabled       bool          `yaml:"enabled" json:"enabled"`
	Backend       string        `yaml:"backend" json:"backend"`
	Window        time.Duration `yaml:"window" json:"window"`
	MaxAdmits     int           `yaml:"max_admits" json:"max_admits"`
	SweepInterval time.Duration `yaml:"sweep_interval" json:"sweep_interval"`
	Redis         RedisConfig   `yaml:"redis" json:"redis"`

	// TrustedProxies lists peer addresses or CIDR prefixes whose
	// X-Forwarded-For and X-Real-IP headers identify the client. Empty means
	// clients are keyed by their connecting address only.
	TrustedProxies []string `yaml:"trusted_proxies" json:"trusted_proxies"`
}

type RedisConfig struct {
	Addr      string        `yaml:"addr" json:"addr"`
	Password  string        `yaml:"password" json:"password"`
	DB        int           `yaml:"db" json:"db"`
	KeyPrefix string        `yaml:"key_prefix" json:"key_prefix"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`
}

// SynthesisConfig selects the random source. A zero seed means the process
// draws from OS entropy; any other value makes every run replay the same
// sequence of records.
type SynthesisConfig struct {
	Seed uint64 `yaml:"seed" json:"seed"`
}

type LoggingConfig struct {
	Level      string `yaml:"level" json:"level"`
	Format     string `yaml:"format" json:"format"`
	Output     string `yaml:"output" json:"output"`
	FilePath   string `yaml:"file_path" json:"file_path"`
	MaxSize    int    `yaml:"max_size" json:"max_size"`
	MaxBackups int    `yaml:"max_backups" json:"max_backups"`
	MaxAge     int    `yaml:"max_age" json:"max_age"`
	Compress   bool   `yaml:"compress" json:"compress"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Path    string `yaml:"path" json:"path"`
	Port    int    `yaml:"port" json:"port"`
}

type ObservabilityConfig struct {
	ServiceName    string        `yaml:"service_name" json:"service_name"`
	ServiceVersion string        `yaml:"service_version" json:"service_version"`
	Tracing        TracingConfig `yaml:"tracing" json:"tracing"`
}

type TracingConfig struct {
	Enabled      bool    `yaml:"enabled" json:"enabled"`
	Exporter     string  `yaml:"exporter" json:"exporter"`
	SampleRate   float64 `yaml:"sample_rate" json:"sample_rate"`
	OTLPEndpoint string  `yaml:"otlp_endpoint" json:"otlp_endpoint"`
}

// NewDefaultConfig creates a configuration with production-ready defaults.
//
// Default Values Rationale:
// - Port 3002 with up to 10 fallback ports, matching the dashboard's expectations
// - Governor enabled in memory: 15 requests per client per minute
// - Entropy-seeded synthesis: every request produces fresh data
// - Structured JSON logging to stdout
// - Metrics on a separate port, tracing off until an exporter is chosen
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:                 3002,
			Host:                 "0.0.0.0",
			ReadTimeout:          30 * time.Second,
			WriteTimeout:         30 * time.Second,
			IdleTimeout:          60 * time.Second,
			TLSEnabled:           false,
			PortFallbackAttempts: 10,
			CORS: CORSConfig{
				Enabled:          true,
				AllowedOrigins:   []string{"*"},
				AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
				AllowedHeaders:   []string{"Content-Type", "X-Request-ID"},
				AllowCredentials: false,
				MaxAge:           86400,
			},
		},
		Governor: GovernorConfig{
			Enabled:       true,
			Backend:       GovernorBackendMemory,
			Window:        DefaultGovernorWindow,
			MaxAdmits:     DefaultGovernorMaxAdmits,
			SweepInterval: DefaultGovernorWindow,
			Redis: RedisConfig{
				Addr:      "localhost:6379",
				KeyPrefix: "growthpro:governor:",
				Timeout:   250 * time.Millisecond,
			},
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			Output:     "stdout",
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
			Port:    9090,
		},
		Observability: ObservabilityConfig{
			ServiceName:    "growthpro",
			ServiceVersion: "1.0.0",
			Tracing: TracingConfig{
				Enabled:    false,
				Exporter:   "stdout",
				SampleRate: 1.0,
			},
		},
	}
}

func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("invalid server config: %w", err)
	}

	if err := c.Governor.Validate(); err != nil {
		return fmt.Errorf("invalid governor config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("invalid logging config: %w", err)
	}

	if err := c.Metrics.Validate(); err != nil {
		return fmt.Errorf("invalid metrics config: %w", err)
	}

	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("invalid observability config: %w", err)
	}

	return nil
}

func (sc *ServerConfig) Validate() error {
	if sc.Port <= 0 || sc.Port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	if sc.Host == "" {
		return errors.New("host cannot be empty")
	}

	if sc.ReadTimeout < 0 {
		return errors.New("read timeout cannot be negative")
	}

	if sc.WriteTimeout < 0 {
		return errors.New("write timeout cannot be negative")
	}

	if sc.IdleTimeout < 0 {
		return errors.New("idle timeout cannot be negative")
	}

	if sc.PortFallbackAttempts < 0 {
		return errors.New("port fallback attempts cannot be negative")
	}

	if sc.Port+sc.PortFallbackAttempts > 65535 {
		return errors.New("port fallback range exceeds 65535")
	}

	if sc.TLSEnabled {
		if sc.TLSCertFile == "" {
			return errors.New("TLS cert file is required when TLS is enabled")
		}
		if sc.TLSKeyFile == "" {
			return errors.New("TLS key file is required when TLS is enabled")
		}
	}

	return nil
}

func (gc *GovernorConfig) Validate() error {
	if !gc.Enabled {
		return nil
	}

	if !slices.Contains([]string{GovernorBackendMemory, GovernorBackendRedis}, gc.Backend) {
		return fmt.Errorf("invalid governor backend: %s", gc.Backend)
	}

	if gc.Window <= 0 {
		return errors.New("governor window must be positive")
	}

	if gc.MaxAdmits <= 0 {
		return errors.New("governor max admits must be positive")
	}

	if gc.SweepInterval < 0 {
		return errors.New("governor sweep interval cannot be negative")
	}

	if gc.Backend == GovernorBackendRedis && gc.Redis.Addr == "" {
		return errors.New("Redis address is required when governor backend is redis")
	}

	for _, proxy := range gc.TrustedProxies {
		if _, err := netip.ParsePrefix(proxy); err == nil {
			continue
		}
		if _, err := netip.ParseAddr(proxy); err != nil {
			return fmt.Errorf("invalid trusted proxy: %q", proxy)
		}
	}

	return nil
}

func (lc *LoggingConfig) Validate() error {
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, lc.Level) {
		return fmt.Errorf("invalid log level: %s", lc.Level)
	}

	if !slices.Contains([]string{"json", "text"}, lc.Format) {
		return fmt.Errorf("invalid log format: %s", lc.Format)
	}

	if !slices.Contains([]string{"stdout", "stderr", "file"}, lc.Output) {
		return fmt.Errorf("invalid log output: %s", lc.Output)
	}

	if lc.Output == "file" && lc.FilePath == "" {
		return errors.New("file path is required when output is file")
	}

	return nil
}

func (mc *MetricsConfig) Validate() error {
	if !mc.Enabled {
		return nil
	}

	if mc.Path == "" {
		return errors.New("metrics path cannot be empty")
	}

	if mc.Port <= 0 || mc.Port > 65535 {
		return errors.New("metrics port must be between 1 and 65535")
	}

	return nil
}

func (oc *ObservabilityConfig) Validate() error {
	if !oc.Tracing.Enabled {
		return nil
	}

	if !slices.Contains([]string{"stdout", "otlp"}, oc.Tracing.Exporter) {
		return fmt.Errorf("invalid tracing exporter: %s", oc.Tracing.Exporter)
	}

	if oc.Tracing.SampleRate < 0 || oc.Tracing.SampleRate > 1 {
		return errors.New("tracing sample rate must be between 0 and 1")
	}

	if oc.Tracing.Exporter == "otlp" && oc.Tracing.OTLPEndpoint == "" {
		return errors.New("OTLP endpoint is required when tracing exporter is otlp")
	}

	return nil
}
