package slogx

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
)

type Config struct {
	Service string
	Version string
	Env     string        // e.g. "dev", "production"
	Level   string        // e.g. "debug", "info", "warn", "error"
	Format  string        // e.g. "json", "text"
	File    string        // Optional: also write to this file, rotated daily
	MaxAge  time.Duration // Retention for rotated files (default: 7 days)
}

// New returns a configured slog.Logger instance and installs it as the
// process default.
func New(cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		AddSource: cfg.Env == "dev",
		Level:     parseLevel(cfg.Level),
	}

	var out io.Writer = os.Stdout
	var fileErr error
	if cfg.File != "" {
		var rotated io.Writer
		rotated, fileErr = newRotatingFile(cfg.File, cfg.MaxAge)
		if fileErr == nil {
			out = io.MultiWriter(os.Stdout, rotated)
		}
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "text":
		handler = slog.NewTextHandler(out, opts)
	default:
		handler = slog.NewJSONHandler(out, opts)
	}

	logger := slog.New(handler).With(
		"service", cfg.Service,
		"version", cfg.Version,
		"env", cfg.Env,
	)
	if fileErr != nil {
		logger.Warn("log file unavailable, logging to stdout only",
			slog.String("file", cfg.File), slog.Any("error", fileErr))
	}

	slog.SetDefault(logger)
	return logger
}

func newRotatingFile(path string, maxAge time.Duration) (io.Writer, error) {
	if maxAge <= 0 {
		maxAge = 7 * 24 * time.Hour
	}
	return rotatelogs.New(
		path+".%Y%m%d",
		rotatelogs.WithLinkName(path),
		rotatelogs.WithRotationTime(24*time.Hour),
		rotatelogs.WithMaxAge(maxAge),
	)
}

// parseLevel maps a string to slog.Level.
func parseLevel(lvl string) slog.Level {
	switch strings.ToLower(lvl) {
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

// Mask hides most of an email address or phone number so log lines can be
// correlated without recording the full identifier.
//
//	Mask("jane.doe@example.com") == "ja******@example.com"
//	Mask("01712345678")          == "*******5678"
func Mask(identifier string) string {
	if at := strings.LastIndex(identifier, "@"); at > 0 {
		local, domain := identifier[:at], identifier[at:]
		keep := min(2, len(local))
		return local[:keep] + strings.Repeat("*", len(local)-keep) + domain
	}
	if len(identifier) <= 4 {
		return strings.Repeat("*", len(identifier))
	}
	return strings.Repeat("*", len(identifier)-4) + identifier[len(identifier)-4:]
}
