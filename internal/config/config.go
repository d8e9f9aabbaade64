// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Export formats.
const (
	FormatXLSX     = "xlsx"
	FormatCSV      = "csv"
	FormatPostgres = "postgres"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Source   SourceConfig
	Export   ExportConfig
	Server   ServerConfig
	Database DatabaseConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// SourceConfig holds event log settings.
type SourceConfig struct {
	// Path is the semicolon-delimited event log (default: hw.txt)
	Path string `env:"HW_SOURCE_PATH" envAlt:"HW_SOURCE" default:"hw.txt"`

	// PageSize is the number of entries per browse page (default: 50)
	PageSize int `env:"HW_PAGE_SIZE" default:"50"`
}

// ExportConfig holds export artifact settings.
type ExportConfig struct {
	// Dir is where file artifacts are written (default: current directory)
	Dir string `env:"HW_OUTPUT_DIR" default:"."`

	// Format is the artifact format: xlsx, csv or postgres (default: xlsx)
	Format string `env:"HW_EXPORT_FORMAT" default:"xlsx"`

	// Timeout bounds a single export (default: 2m)
	Timeout time.Duration `env:"HW_EXPORT_TIMEOUT" default:"2m"`

	// MaxConcurrent is the maximum number of parallel exports (default: 2)
	MaxConcurrent int `env:"HW_EXPORT_MAX_CONCURRENT" default:"2"`

	// MaxWait is how long an export waits for a free slot (default: 30s)
	MaxWait time.Duration `env:"HW_EXPORT_MAX_WAIT" default:"30s"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 127.0.0.1)
	Host string `env:"SERVER_HOST" default:"127.0.0.1"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading a request (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing a response (default: 2m)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"2m"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// DatabaseConfig holds the PostgreSQL export target.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string, required for the postgres format.
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of connections in the pool (default: 4)
	MaxConns int `env:"DB_MAX_CONNS" default:"4"`
}

// SecurityConfig holds settings for the mutating HTTP routes.
type SecurityConfig struct {
	// RequireAPIKey guards reload and server-side export with X-API-Key (default: false)
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"false"`

	// APIKeys is a comma-separated list of accepted keys
	APIKeys []string `env:"API_KEYS"`

	// TrustedProxies is a comma-separated list of CIDRs whose X-Real-IP and
	// X-Forwarded-For headers are honoured
	TrustedProxies []string `env:"TRUSTED_PROXIES"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
