package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ekisa-team/visionkit/internal/env"
)

// Options configures logger construction.
type Options struct {
	LogToFile bool
	LogFile   string
	Level     slog.Leveler
}

// Option mutates Options.
type Option func(*Options)

// WithLogToFile enables or disables logging to a rotated file.
func WithLogToFile(enabled bool) Option {
	return func(o *Options) { o.LogToFile = enabled }
}

// WithLogFile sets the log file path used when file logging is enabled.
func WithLogFile(path string) Option {
	return func(o *Options) { o.LogFile = path }
}

// WithLevel sets the minimum log level.
func WithLevel(level slog.Leveler) Option {
	return func(o *Options) { o.Level = level }
}

// New builds a slog.Logger appropriate for the environment: a colorized
// tint handler for development consoles, a JSON handler in production.
// When file logging is enabled output also goes to a size-rotated file.
func New(environment env.Environment, opts ...Option) *slog.Logger {
	options := Options{
		LogFile: "logs/visionkit.log",
		Level:   slog.LevelInfo,
	}
	for _, opt := range opts {
		opt(&options)
	}

	var w io.Writer = os.Stderr
	if options.LogToFile {
		w = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   options.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		})
	}

	if environment.IsProduction() {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: options.Level,
		}))
	}

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      options.Level,
		TimeFormat: time.Kitchen,
	}))
}
