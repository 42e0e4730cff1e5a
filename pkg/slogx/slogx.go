package slogx

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// DefaultService tags records when Config.Service is empty.
const DefaultService = "botofarm"

type Config struct {
	Service string // defaults to DefaultService
	Version string
	Env     string // "dev" adds source locations
	Level   string // debug, info, warn, error
	Format  string // json (default) or text

	// Output defaults to stdout. Only the stdout logger becomes slog's default.
	Output io.Writer
}

// New builds the service logger. Every record carries service, version and env.
func New(cfg Config) *slog.Logger {
	if cfg.Service == "" {
		cfg.Service = DefaultService
	}
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{
		AddSource: cfg.Env == "dev",
		Level:     parseLevel(cfg.Level),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}

	logger := slog.New(handler).With(
		slog.String("service", cfg.Service),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	if cfg.Output == nil {
		slog.SetDefault(logger)
	}
	return logger
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return New(Config{Output: io.Discard, Level: "error"})
}

func parseLevel(lvl string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
