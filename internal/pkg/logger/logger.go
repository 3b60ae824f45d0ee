package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"refsign/internal/platform/config"
)

// Init configures the global zerolog logger. Logs never go to stdout so
// they don't mix with the signed link the CLI prints there; "stdout"
// output is mapped to stderr.
func Init(cfg config.LoggingConfig) {
	log.Logger = New(cfg, os.Stderr)
}

func New(cfg config.LoggingConfig, console io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(ParseLevel(cfg.Level))

	if cfg.Output == "file" && cfg.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
			log.Error().Err(err).Msg("failed to create log directory")
			return zerolog.New(console).With().Timestamp().Logger()
		}

		file, err := os.OpenFile(cfg.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0664)
		if err != nil {
			log.Error().Err(err).Msg("failed to open log file")
			return zerolog.New(console).With().Timestamp().Logger()
		}
		return zerolog.New(file).With().Timestamp().Logger()
	}

	if cfg.Format == "text" {
		return zerolog.New(zerolog.ConsoleWriter{Out: console, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}
	return zerolog.New(console).With().Timestamp().Logger()
}

func ParseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
