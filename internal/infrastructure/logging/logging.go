// Package logging builds the process-wide zerolog.Logger value from
// configuration. The returned logger is a value, never stored in a package
// global; callers hold it as a struct field and pass it to constructors
// explicitly (see internal/application/optimization.Service and
// internal/adapters/queue.Worker).
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/andrescamacho/mission-optimizer-core/internal/infrastructure/config"
)

// New builds a zerolog.Logger from a LoggingConfig: level, JSON-vs-console
// format, output destination, and optional caller/stacktrace annotation.
func New(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	switch strings.ToLower(cfg.Output) {
	case "stderr":
		out = os.Stderr
	case "file":
		if cfg.FilePath != "" {
			if f, err := os.OpenFile(cfg.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644); err == nil {
				out = f
			}
		}
	}

	if strings.ToLower(cfg.Format) == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	logger := zerolog.New(out).Level(level).With().Timestamp()
	if cfg.IncludeCaller {
		logger = logger.Caller()
	}

	result := logger.Logger()
	if cfg.IncludeStacktrace {
		zerolog.ErrorStackMarshaler = defaultStackMarshaler
	}
	return result
}

func defaultStackMarshaler(err error) interface{} {
	return err.Error()
}
