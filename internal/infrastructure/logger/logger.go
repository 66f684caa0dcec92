package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"vesper-voice-api/internal/config"
)

// New constructs the service logger from configuration and installs it as
// the zerolog global logger.
func New(cfg *config.Config) zerolog.Logger {
	return newWithWriter(cfg, os.Stdout)
}

func newWithWriter(cfg *config.Config, out io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	writer := out
	if strings.EqualFold(cfg.LogFormat, "console") {
		writer = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	zerolog.SetGlobalLevel(lvl)

	logger := zerolog.New(writer).
		Level(lvl).
		With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Logger()

	log.Logger = logger
	return logger
}
