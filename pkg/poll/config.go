package poll

import "time"

// Config holds configuration for the poller
type Config struct {
	// Flag gates whether an activated poller does any work
	Flag bool
	// Interval between iterations
	Interval time.Duration
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		Flag:     false,
		Interval: 5 * time.Second,
	}
}
