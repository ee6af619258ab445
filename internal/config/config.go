package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"growthpro/internal/models"

	"gopkg.in/yaml.v3"
)

// envPrefix namespaces every environment override.
const envPrefix = "GROWTHPRO_"

// Load loads configuration from file and environment variables
func Load(configPath string) (*models.Config, error) {
	// Start with default configuration
	config := models.NewDefaultConfig()

	// Load from file if provided and exists
	if configPath != "" {
		if err := loadFromFile(config, configPath); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Override with environment variables
	loadFromEnvironment(config)

	// Validate the final configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// deprecatedConfig mirrors config sections that look plausible but are not
// read, so operators learn why their settings have no effect.
type deprecatedConfig struct {
	Storage  interface{} `yaml:"storage"`
	Cache    interface{} `yaml:"cache"`
	Security struct {
		RateLimit interface{} `yaml:"rate_limit"`
		APIKeys   interface{} `yaml:"api_keys"`
	} `yaml:"security"`
}

// warnDeprecatedKeys logs a warning for each unsupported config key found in the YAML data.
// The service continues to start normally - these keys are silently ignored by the main decoder.
func warnDeprecatedKeys(data []byte) {
	var dep deprecatedConfig
	if err := yaml.Unmarshal(data, &dep); err != nil {
		return
	}
	if dep.Storage != nil {
		slog.Warn("Config key is not supported; generated records are never persisted.", "config_key", "storage")
	}
	if dep.Cache != nil {
		slog.Warn("Config key is not supported; every request synthesizes a fresh record.", "config_key", "cache")
	}
	if dep.Security.RateLimit != nil {
		slog.Warn("Config key is not supported; use the governor section instead.", "config_key", "security.rate_limit")
	}
	if dep.Security.APIKeys != nil {
		slog.Warn("Config key is not supported; the API is unauthenticated.", "config_key", "security.api_keys")
	}
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(config *models.Config, filePath string) error {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return fmt.Errorf("config file not found: %s", filePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	warnDeprecatedKeys(data)
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}
	return nil
}

// loadFromEnvironment loads configuration from environment variables
func loadFromEnvironment(config *models.Config) {
	// Server configuration. A bare PORT is honored for platforms that
	// inject it; the prefixed variable wins when both are set.
	setInt("PORT", &config.Server.Port, false)
	setInt("PORT", &config.Server.Port, true)
	setString("HOST", &config.Server.Host)
	setDuration("READ_TIMEOUT", &config.Server.ReadTimeout)
	setDuration("WRITE_TIMEOUT", &config.Server.WriteTimeout)
	setDuration("IDLE_TIMEOUT", &config.Server.IdleTimeout)
	setBool("TLS_ENABLED", &config.Server.TLSEnabled)
	setString("TLS_CERT_FILE", &config.Server.TLSCertFile)
	setString("TLS_KEY_FILE", &config.Server.TLSKeyFile)
	setInt("PORT_FALLBACK_ATTEMPTS", &config.Server.PortFallbackAttempts, true)

	// CORS configuration
	setBool("CORS_ENABLED", &config.Server.CORS.Enabled)
	setList("CORS_ALLOWED_ORIGINS", &config.Server.CORS.AllowedOrigins)
	setBool("CORS_ALLOW_CREDENTIALS", &config.Server.CORS.AllowCredentials)

	// Governor configuration
	setBool("GOVERNOR_ENABLED", &config.Governor.Enabled)
	setString("GOVERNOR_BACKEND", &config.Governor.Backend)
	setDuration("GOVERNOR_WINDOW", &config.Governor.Window)
	setInt("GOVERNOR_MAX_ADMITS", &config.Governor.MaxAdmits, true)
	setDuration("GOVERNOR_SWEEP_INTERVAL", &config.Governor.SweepInterval)
	setList("GOVERNOR_TRUSTED_PROXIES", &config.Governor.TrustedProxies)

	// Redis configuration
	setString("REDIS_ADDR", &config.Governor.Redis.Addr)
	setString("REDIS_PASSWORD", &config.Governor.Redis.Password)
	setInt("REDIS_DB", &config.Governor.Redis.DB, true)
	setString("REDIS_KEY_PREFIX", &config.Governor.Redis.KeyPrefix)
	setDuration("REDIS_TIMEOUT", &config.Governor.Redis.Timeout)

	// Synthesis configuration
	if seed := os.Getenv(envPrefix + "SYNTHESIS_SEED"); seed != "" {
		if s, err := strconv.ParseUint(seed, 10, 64); err == nil {
			config.Synthesis.Seed = s
		}
	}

	// Logging configuration
	setString("LOG_LEVEL", &config.Logging.Level)
	setString("LOG_FORMAT", &config.Logging.Format)
	setString("LOG_OUTPUT", &config.Logging.Output)
	setString("LOG_FILE_PATH", &config.Logging.FilePath)
	setInt("LOG_MAX_SIZE", &config.Logging.MaxSize, true)
	setInt("LOG_MAX_BACKUPS", &config.Logging.MaxBackups, true)
	setInt("LOG_MAX_AGE", &config.Logging.MaxAge, true)
	setBool("LOG_COMPRESS", &config.Logging.Compress)

	// Metrics configuration
	setBool("METRICS_ENABLED", &config.Metrics.Enabled)
	setString("METRICS_PATH", &config.Metrics.Path)
	setInt("METRICS_PORT", &config.Metrics.Port, true)

	// Tracing configuration
	setBool("TRACING_ENABLED", &config.Observability.Tracing.Enabled)
	setString("TRACING_EXPORTER", &config.Observability.Tracing.Exporter)
	setString("TRACING_OTLP_ENDPOINT", &config.Observability.Tracing.OTLPEndpoint)
	if rate := os.Getenv(envPrefix + "TRACING_SAMPLE_RATE"); rate != "" {
		if r, err := strconv.ParseFloat(rate, 64); err == nil {
			config.Observability.Tracing.SampleRate = r
		}
	}
}

func setString(key string, dst *string) {
	if v := os.Getenv(envPrefix + key); v != "" {
		*dst = v
	}
}

func setInt(key string, dst *int, prefixed bool) {
	if prefixed {
		key = envPrefix + key
	}
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(key string, dst *bool) {
	if v := os.Getenv(envPrefix + key); v != "" {
		*dst = strings.ToLower(v) == "true"
	}
}

func setDuration(key string, dst *time.Duration) {
	if v := os.Getenv(envPrefix + key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}

// setList splits a comma-separated value, dropping empty items.
func setList(key string, dst *[]string) {
	v := os.Getenv(envPrefix + key)
	if v == "" {
		return
	}
	var items []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	*dst = items
}

// SaveExample saves an example configuration file
func SaveExample(filePath string) error {
	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// Get default config with some example values
	config := models.NewDefaultConfig()

	// Example shared governor backend
	config.Governor.Redis.Addr = "redis:6379"

	// Example dashboard origin
	config.Server.CORS.AllowedOrigins = []string{"http://localhost:5173"}

	// Example TLS configuration
	config.Server.TLSEnabled = false
	config.Server.TLSCertFile = "/path/to/cert.pem"
	config.Server.TLSKeyFile = "/path/to/key.pem"

	// Marshal to YAML
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// Write to file
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
