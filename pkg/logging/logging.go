package logging

import (
	"log/slog"
	"os"
)

// Name is the name of the service that is logging.
type Name string

// Config is the configuration for a logger.
type Config struct {
	// name is the name of the service that is logging.
	name Name
}

// NewConfig creates a new logging configuration.
func NewConfig(name Name) *Config {
	return &Config{
		name: name,
	}
}

// CommonLogger creates the common logger for the application. All logs are
// written to stdout as JSON with the service name attached.
func CommonLogger(c *Config) (*slog.Logger, error) {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})

	l := slog.New(h).With(slog.String(KeyService, string(c.name)))
	slog.SetDefault(l)
	return l, nil
}
