package log

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var logger = zerolog.Nop()
var once sync.Once

type LoggerOption func(*LoggerConfig)

type LoggerConfig struct {
	fileName string
	console  bool
	logLevel zerolog.Level
}

// WithFileLogger adds a size-rotated file output.
func WithFileLogger(fileName string) LoggerOption {
	return func(l *LoggerConfig) {
		l.fileName = fileName
	}
}

func WithConsoleLogger() LoggerOption {
	return func(l *LoggerConfig) {
		l.console = true
	}
}

func WithLogLevel(logLevel zerolog.Level) LoggerOption {
	return func(l *LoggerConfig) {
		l.logLevel = logLevel
	}
}

// ParseLevel converts a textual level ("debug", "info", ...) into a zerolog level, falling back to info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Init builds the process-wide logger. Only the first call has an effect.
func Init(serviceName string, opts ...LoggerOption) {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano
		l := &LoggerConfig{logLevel: zerolog.InfoLevel}

		for _, opt := range opts {
			opt(l)
		}

		output := make([]io.Writer, 0, 2)
		defaultOutput := os.Stdout
		if l.console {
			output = append(output, zerolog.ConsoleWriter{
				Out:        defaultOutput,
				TimeFormat: time.RFC3339,
			})
		}
		if l.fileName != "" {
			output = append(output, &lumberjack.Logger{
				Filename:   l.fileName,
				MaxSize:    5,
				MaxBackups: 10,
				MaxAge:     14,
				Compress:   true,
			})
		}

		if len(output) == 0 {
			output = append(output, defaultOutput)
		}

		logger = zerolog.New(zerolog.MultiLevelWriter(output...)).
			Level(l.logLevel).
			With().
			Timestamp().
			Str("service", serviceName).
			Logger()
	})
}

// GetLogger returns the process-wide logger. Before Init it is a no-op logger.
func GetLogger() zerolog.Logger {
	return logger
}

// ForRequest returns the process-wide logger tagged with requestID. An empty id adds nothing.
func ForRequest(requestID string) zerolog.Logger {
	if requestID == "" {
		return logger
	}
	return logger.With().Str("request_id", requestID).Logger()
}
