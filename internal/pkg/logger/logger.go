package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger backs the package-level helpers and log.Logger
var defaultLogger zerolog.Logger

// LogLevel represents the log level
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
	FatalLevel LogLevel = "fatal" // exits the process after logging
)

var zerologLevels = map[LogLevel]zerolog.Level{
	DebugLevel: zerolog.DebugLevel,
	InfoLevel:  zerolog.InfoLevel,
	WarnLevel:  zerolog.WarnLevel,
	ErrorLevel: zerolog.ErrorLevel,
	FatalLevel: zerolog.FatalLevel,
}

// ParseLevel maps a config string onto a LogLevel, falling back to info
func ParseLevel(level string) LogLevel {
	l := LogLevel(strings.ToLower(strings.TrimSpace(level)))
	if l == "warning" {
		return WarnLevel
	}
	if _, ok := zerologLevels[l]; ok {
		return l
	}
	return InfoLevel
}

// Config represents logger configuration
type Config struct {
	Level LogLevel
	// Pretty switches from JSON lines to zerolog's console writer
	Pretty bool
	// Output defaults to os.Stdout
	Output io.Writer
}

// Configure installs a new global logger. It also replaces zerolog's log.Logger
// so code using the log package directly shares the same output.
func Configure(config Config) {
	if config.Output == nil {
		config.Output = os.Stdout
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, ok := zerologLevels[config.Level]
	if !ok {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	writer := config.Output
	if config.Pretty {
		writer = zerolog.ConsoleWriter{Out: config.Output, TimeFormat: time.RFC3339}
	}

	defaultLogger = zerolog.New(writer).With().Timestamp().Logger()
	log.Logger = defaultLogger
}

func Debug() *zerolog.Event { return defaultLogger.Debug() }
func Info() *zerolog.Event  { return defaultLogger.Info() }
func Warn() *zerolog.Event  { return defaultLogger.Warn() }
func Error() *zerolog.Event { return defaultLogger.Error() }
func Fatal() *zerolog.Event { return defaultLogger.Fatal() }

// Component returns a child logger tagged with the component name
func Component(name string) zerolog.Logger {
	return defaultLogger.With().Str("component", name).Logger()
}

func init() {
	Configure(Config{Level: InfoLevel, Pretty: true, Output: os.Stdout})
}
