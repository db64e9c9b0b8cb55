package app

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env                 string        // Environment (dev, staging, production) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	LogFile             string        // Optional: also log to this file, rotated daily
	LogMaxAge           time.Duration // Retention for rotated log files (default: 7 days)
	Port                int           // HTTP server port (default: 3000)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
	SweepInterval       time.Duration // Housekeeping interval (default: 5m)

	DatabaseFile string // Path to SQLite database file (default: ./securevoice.db)
	PepperFile   string // Path to file containing pepper for password hashing (default: ./pepper)

	EphemeralBackend string   // memory or redis (default: memory)
	RedisAddrs       []string // more than one address selects cluster mode
	RedisPassword    string
	RedisDB          int

	SessionSecret string        // HS256 key for session cookies; required in production, random per process otherwise
	SessionTTL    time.Duration // Authenticated session lifetime (default: 24h)

	FrontendURL     string // Base for email links and the CORS origin
	SMTPHost        string
	SMTPPort        string
	SMTPUser        string // Without user and password emails are only logged; required in production
	SMTPPass        string
	SMTPFrom        string
	SuperAdminEmail string // Contact address in rejection emails

	EnforceStepOrder bool // Reject a registration step until the previous one completed
}

// Production reports whether the service runs in production: codes are never
// echoed and cookies are marked Secure.
func (c Config) Production() bool {
	return strings.EqualFold(c.Env, "production") || strings.EqualFold(c.Env, "prod")
}

// Validate rejects settings production cannot run with. Outside production
// a missing session secret or SMTP login only degrades to a per-process key
// and logged emails.
func (c Config) Validate() error {
	if !c.Production() {
		return nil
	}
	var errs []error
	if c.SessionSecret == "" {
		errs = append(errs, errors.New("SESSION_SECRET is required in production"))
	}
	if c.SMTPUser == "" || c.SMTPPass == "" {
		errs = append(errs, errors.New("EMAIL_USER and EMAIL_PASS are required in production"))
	}
	return errors.Join(errs...)
}

func LoadConfig() Config {
	// A missing .env file is normal outside local development
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to read .env file", slog.Any("error", err))
	}

	cfg := Config{
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		LogFile:             os.Getenv("LOG_FILE"),
		LogMaxAge:           getEnvDurationOrDefault("LOG_MAX_AGE", 7*24*time.Hour),
		Port:                getEnvIntOrDefault("PORT", 3000),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		SweepInterval:       getEnvDurationOrDefault("SWEEP_INTERVAL", 5*time.Minute),

		DatabaseFile: getEnvOrDefault("DATABASE_FILE", "securevoice.db"),
		PepperFile:   getEnvOrDefault("PEPPER_FILE", "pepper"),

		EphemeralBackend: strings.ToLower(getEnvOrDefault("EPHEMERAL_BACKEND", "memory")),
		RedisAddrs:       splitList(getEnvOrDefault("REDIS_ADDR", "localhost:6379")),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:          getEnvIntOrDefault("REDIS_DB", 0),

		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionTTL:    getEnvDurationOrDefault("SESSION_TTL", 24*time.Hour),

		FrontendURL:     getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),
		SMTPHost:        getEnvOrDefault("EMAIL_HOST", "smtp.gmail.com"),
		SMTPPort:        getEnvOrDefault("EMAIL_PORT", "587"),
		SMTPUser:        os.Getenv("EMAIL_USER"),
		SMTPPass:        os.Getenv("EMAIL_PASS"),
		SMTPFrom:        os.Getenv("EMAIL_FROM"),
		SuperAdminEmail: getEnvOrDefault("SUPER_ADMIN_EMAIL", "superadmin@crime.gov.bd"),

		EnforceStepOrder: getEnvBoolOrDefault("REGISTRATION_ENFORCE_STEP_ORDER", false),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
