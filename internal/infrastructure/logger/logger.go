package logger

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
)

type Logger struct {
	*slog.Logger
}

var (
	defaultLogger *Logger
	once          sync.Once
)

const (
	EnvDebug     = "IPSYNC_DEBUG"
	EnvLogFormat = "IPSYNC_LOG_FORMAT"
)

type Config struct {
	Level     slog.Level
	Format    string
	Output    io.Writer
	AddSource bool
}

func DefaultConfig() *Config {
	return &Config{
		Level:     slog.LevelInfo,
		Format:    "text",
		Output:    os.Stderr,
		AddSource: false,
	}
}

// ConfigFromEnv reads IPSYNC_DEBUG and IPSYNC_LOG_FORMAT on top of the defaults.
func ConfigFromEnv() *Config {
	cfg := DefaultConfig()
	if v, ok := os.LookupEnv(EnvDebug); ok {
		if on, err := strconv.ParseBool(v); err == nil && on {
			cfg.Level = slog.LevelDebug
			cfg.AddSource = true
		}
	}
	if strings.EqualFold(os.Getenv(EnvLogFormat), "json") {
		cfg.Format = "json"
	}
	return cfg
}

func New(cfg *Config) *Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = slog.NewTextHandler(output, opts)
	}
	return &Logger{slog.New(handler)}
}

func Init(cfg *Config) {
	once.Do(func() {
		defaultLogger = New(cfg)
	})
}

func L() *Logger {
	if defaultLogger == nil {
		Init(DefaultConfig())
	}
	return defaultLogger
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{l.Logger.With(args...)}
}

func Debug(msg string, args ...any) { L().Debug(msg, args...) }
func Info(msg string, args ...any)  { L().Info(msg, args...) }
func Warn(msg string, args ...any)  { L().Warn(msg, args...) }
func Error(msg string, args ...any) { L().Error(msg, args...) }
