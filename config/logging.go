package config

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// SetupLogger builds the process logger from the logging configuration.
// Log output goes to stderr; the interactive prompt owns stdout.
func SetupLogger(cfg LoggingConfig) zerolog.Logger {
	levelStr := cfg.Level
	if levelStr == "" {
		levelStr = "info"
	}

	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		return zerolog.New(output).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
