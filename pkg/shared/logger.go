package shared

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds a timestamped zerolog logger writing to stderr. Any format
// other than "json" produces human-readable console output. Unknown levels
// fall back to info.
func NewLogger(level string, format string) zerolog.Logger {
	return newLogger(os.Stderr, level, format)
}

func newLogger(out io.Writer, level string, format string) zerolog.Logger {
	writer := out
	if !strings.EqualFold(strings.TrimSpace(format), "json") {
		writer = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	parsedLevel, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || strings.TrimSpace(level) == "" {
		parsedLevel = zerolog.InfoLevel
	}

	return zerolog.New(writer).
		Level(parsedLevel).
		With().
		Timestamp().
		Logger()
}
