package sockopen

import (
	"log/slog"
)

// Config holds the configuration for an Opener.
type Config struct {
	// Workers is the number of goroutines executing open requests.
	// Blocking syscalls run only on these, never on the caller.
	Workers int

	// Queue is the number of requests that may wait for a worker before
	// Open blocks. Submissions beyond capacity queue rather than fail.
	Queue int

	// Logger receives debug-level request lifecycle events.
	// Nil discards all output.
	Logger *slog.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Workers: 4,
		Queue:   16,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return ErrInvalidWorkerCount
	}
	if c.Queue < 0 {
		return ErrInvalidQueueSize
	}
	return nil
}
