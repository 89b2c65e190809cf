package config

import (
	"os"
	"strconv"
	"time"
)

// RuntimeConfig holds process settings read from the environment
type RuntimeConfig struct {
	ConfigPath string
	// Restart policy applied by the composition root when the poller fails.
	// MaxRestarts of 0 means a failed poller ends the process.
	MaxRestarts       int
	RestartBackoff    time.Duration
	RestartMaxBackoff time.Duration
}

// LoadRuntime reads runtime config from environment or returns defaults
func LoadRuntime() (*RuntimeConfig, error) {
	maxRestarts := 0
	if v := os.Getenv("POLLER_MAX_RESTARTS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			maxRestarts = i
		}
	}

	return &RuntimeConfig{
		ConfigPath:        envOrDefault("CONFIG_PATH", "config.json"),
		MaxRestarts:       maxRestarts,
		RestartBackoff:    envSeconds("POLLER_RESTART_BACKOFF", 1*time.Second),
		RestartMaxBackoff: envSeconds("POLLER_RESTART_MAX_BACKOFF", 30*time.Second),
	}, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envSeconds(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return time.Duration(i) * time.Second
		}
	}
	return def
}
