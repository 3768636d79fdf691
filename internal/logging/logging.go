// Package logging initializes the process-wide zerolog logger.
package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config controls log level and output format.
type Config struct {
	Level  string // debug/info/warn/error
	Format string // json/console
}

// Init configures the global zerolog logger. Safe to call once at startup.
func Init(cfg Config) {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	if strings.EqualFold(cfg.Format, "console") {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
