// Package version provides build-time metadata for the growthpro service.
// Build variables are populated via -ldflags; the API version is fixed in
// source because clients key on it.
package version

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// APIVersion is the version of the HTTP contract reported by the index and
// health endpoints. It changes only when the wire format does.
const APIVersion = "1.0.0"

var (
	// Version is the release tag or git commit hash of the binary.
	// Set via: -ldflags "-X growthpro/internal/version.Version=..."
	Version = "unknown"

	// BuildDate is the ISO 8601 UTC timestamp when the binary was built.
	// Set via: -ldflags "-X growthpro/internal/version.BuildDate=..."
	BuildDate = "unknown"

	// GitCommit is the git commit SHA of the source code.
	// Set via: -ldflags "-X growthpro/internal/version.GitCommit=..."
	GitCommit = "unknown"
)

// startedAt is captured at package initialization and anchors Uptime.
var startedAt = time.Now()

// Info holds all build metadata and runtime information.
type Info struct {
	Version    string    `json:"version"`
	APIVersion string    `json:"api_version"`
	GitCommit  string    `json:"git_commit"`
	BuildDate  string    `json:"build_date"`
	InstanceID string    `json:"instance_id"`
	Hostname   string    `json:"hostname"`
	StartedAt  time.Time `json:"started_at"`
}

var (
	once sync.Once
	info Info
)

// GetInfo returns build metadata and runtime information.
// Instance ID and hostname are computed once on first call and cached.
func GetInfo() Info {
	once.Do(func() {
		info = Info{
			Version:    Version,
			APIVersion: APIVersion,
			GitCommit:  GitCommit,
			BuildDate:  BuildDate,
			InstanceID: uuid.New().String(),
			Hostname:   getHostname(),
			StartedAt:  startedAt.UTC(),
		}
	})
	return info
}

// Uptime reports how long the process has been running, truncated to seconds.
func Uptime() time.Duration {
	return time.Since(startedAt).Truncate(time.Second)
}

// getHostname returns the system hostname, fallback to "unknown" on error.
func getHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return hostname
}

// String formats version info for CLI display.
func (i Info) String() string {
	return fmt.Sprintf("growthpro version %s (api %s, commit: %s, built: %s)", i.Version, i.APIVersion, i.GitCommit, i.BuildDate)
}
