package handler

import (
	"net/http"
	"os"
	"runtime"
	"time"
)

// Build metadata, set with -ldflags "-X .../internal/handler.Version=..."
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unset"
)

var startedAt = time.Now().UTC()

// VersionInfo describes the running binary
type VersionInfo struct {
	Version       string `json:"version"`
	GoVersion     string `json:"go_version"`
	BuildTime     string `json:"build_time,omitempty"`
	GitCommit     string `json:"git_commit,omitempty"`
	StartedAt     string `json:"started_at"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// HandleVersion handles GET /version
func HandleVersion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, VersionInfo{
			Version:       resolveVersion(),
			GoVersion:     runtime.Version(),
			BuildTime:     BuildTime,
			GitCommit:     GitCommit,
			StartedAt:     startedAt.Format(time.RFC3339),
			UptimeSeconds: int64(time.Since(startedAt).Seconds()),
		})
	}
}

// resolveVersion prefers the linked-in version, then $VERSION.
func resolveVersion() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if v := os.Getenv("VERSION"); v != "" {
		return v
	}
	return "dev"
}
