// Package logger configures the global zerolog logger for the experiment runner.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const milliTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Init writes logs to stdout, and to LOG_FILE when set, at the given level.
// Unknown levels fall back to info.
func Init(level string) zerolog.Level {
	var output io.Writer = zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: milliTimeFormat,
		NoColor:    os.Getenv("NO_COLOR") != "",
	}
	if logFile := os.Getenv("LOG_FILE"); logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err == nil {
			output = io.MultiWriter(output, f)
		}
	}

	l := Setup(output, level)
	log.Info().Str("level", l.String()).Msg("logger initialized")
	return l
}

// Setup points the global logger at w and returns the level in effect.
func Setup(w io.Writer, level string) zerolog.Level {
	zerolog.TimeFieldFormat = milliTimeFormat
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }

	const callerWidth = 24
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		path := fmt.Sprintf("%s:%d", filepath.Base(file), line)
		if len(path) >= callerWidth {
			return path[len(path)-callerWidth:]
		}
		return path + strings.Repeat(" ", callerWidth-len(path))
	}

	l, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		l = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(l)

	log.Logger = zerolog.New(w).With().Timestamp().Caller().Logger()
	return l
}

// ForGame returns a logger tagging every event with the game ID.
func ForGame(id string) zerolog.Logger {
	return log.Logger.With().Str("game", id).Logger()
}
