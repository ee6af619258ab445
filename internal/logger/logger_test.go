package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"growthpro/internal/models"
	"growthpro/internal/version"
)

var testVersion = version.Info{
	Version:   "1.2.3",
	GitCommit: "abc1234",
	BuildDate: "2025-06-01T00:00:00Z",
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  string
		expectErr bool
	}{
		{name: "debug", input: "debug", expected: "DEBUG"},
		{name: "info", input: "info", expected: "INFO"},
		{name: "warn", input: "warn", expected: "WARN"},
		{name: "error", input: "error", expected: "ERROR"},
		{name: "uppercase", input: "DEBUG", expected: "DEBUG"},
		{name: "mixed case", input: "Info", expected: "INFO"},
		{name: "invalid", input: "invalid", expectErr: true},
		{name: "empty", input: "", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, err := parseLevel(tt.input)
			if tt.expectErr {
				if err == nil {
					t.Errorf("expected error for input %q, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error for input %q: %v", tt.input, err)
				return
			}
			if level.String() != tt.expected {
				t.Errorf("expected level %v, got %v", tt.expected, level)
			}
		})
	}
}

func TestSetupConsoleOutputs(t *testing.T) {
	tests := []struct {
		name   string
		format string
		output string
	}{
		{name: "json stdout", format: "json", output: "stdout"},
		{name: "text stdout", format: "text", output: "stdout"},
		{name: "json stderr", format: "json", output: "stderr"},
		{name: "text stderr", format: "text", output: "stderr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := models.LoggingConfig{Level: "info", Format: tt.format, Output: tt.output}

			logger, closer, err := Setup(cfg, testVersion)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if closer != nil {
				t.Errorf("expected nil closer for %s", tt.output)
			}
			if logger == nil {
				t.Fatal("expected non-nil logger")
			}
		})
	}
}

func TestSetupFileOutputJSON(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "growthpro.log")

	cfg := models.LoggingConfig{
		Level:      "info",
		Format:     "json",
		Output:     "file",
		FilePath:   logFile,
		MaxSize:    1,
		MaxBackups: 1,
	}

	logger, closer, err := Setup(cfg, testVersion)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if closer == nil {
		t.Fatal("expected non-nil closer for file output")
	}

	logger.Info("record created", "business", "Joe's Pizza")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%s)", err, data)
	}
	if entry["msg"] != "record created" {
		t.Errorf("unexpected msg: %v", entry["msg"])
	}
	if entry["business"] != "Joe's Pizza" {
		t.Errorf("unexpected business: %v", entry["business"])
	}
	if entry["version"] != "1.2.3" || entry["git_commit"] != "abc1234" {
		t.Errorf("version fields missing: %v", entry)
	}
}

func TestSetupFileOutputTextHasNoColor(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "growthpro.log")

	cfg := models.LoggingConfig{
		Level:    "warn",
		Format:   "text",
		Output:   "file",
		FilePath: logFile,
	}

	logger, closer, err := Setup(cfg, testVersion)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Info("should not appear")
	logger.Warn("should appear")
	closer.Close()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	content := string(data)
	if strings.Contains(content, "should not appear") {
		t.Error("info message should have been filtered by warn level")
	}
	if !strings.Contains(content, "should appear") {
		t.Error("warn message should have appeared")
	}
	if strings.Contains(content, "\x1b[") {
		t.Error("file output must not contain ANSI escape codes")
	}
}

func TestSetupFileOutputMissingPath(t *testing.T) {
	cfg := models.LoggingConfig{
		Level:  "info",
		Format: "json",
		Output: "file",
	}

	_, _, err := Setup(cfg, testVersion)
	if err == nil {
		t.Error("expected error for file output without path")
	}
}

func TestSetupInvalidLevel(t *testing.T) {
	cfg := models.LoggingConfig{
		Level:  "invalid",
		Format: "json",
		Output: "stdout",
	}

	_, _, err := Setup(cfg, testVersion)
	if err == nil {
		t.Error("expected error for invalid log level")
	}
}

func TestOpenWriter(t *testing.T) {
	tests := []struct {
		name      string
		cfg       models.LoggingConfig
		expectErr bool
	}{
		{name: "stdout", cfg: models.LoggingConfig{Output: "stdout"}},
		{name: "stderr", cfg: models.LoggingConfig{Output: "stderr"}},
		{name: "default fallback", cfg: models.LoggingConfig{Output: "anything"}},
		{name: "file", cfg: models.LoggingConfig{Output: "file", FilePath: filepath.Join(t.TempDir(), "x.log")}},
		{name: "file missing path", cfg: models.LoggingConfig{Output: "file"}, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer, closer, err := openWriter(tt.cfg)
			if tt.expectErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if writer == nil {
				t.Error("expected non-nil writer")
			}
			if closer != nil {
				closer.Close()
			}
		})
	}
}
