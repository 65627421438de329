package server

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	apperrors "golang-statement-analyzer/pkg/errors"
)

// Config holds the HTTP server configuration
type Config struct {
	Addr            string        `json:"addr"`
	UploadDir       string        `json:"upload_dir"`
	MaxUploadBytes  int64         `json:"max_upload_bytes"`
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
}

// DefaultConfig returns the default server configuration
func DefaultConfig() *Config {
	return &Config{
		Addr:            ":8080",
		UploadDir:       "uploads",
		MaxUploadBytes:  1 << 20,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// LoadConfig builds the server configuration from the environment. A .env
// file in the working directory is loaded first when present; real
// environment variables win over .env entries.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if v := os.Getenv("ANALYZER_HTTP_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("ANALYZER_UPLOAD_DIR"); v != "" {
		cfg.UploadDir = v
	}
	if v := os.Getenv("ANALYZER_MAX_UPLOAD_BYTES"); v != "" {
		size, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, apperrors.ConfigurationError(apperrors.CodeInvalidConfig,
				"ANALYZER_MAX_UPLOAD_BYTES", v, err)
		}
		cfg.MaxUploadBytes = size
	}
	if v := os.Getenv("ANALYZER_READ_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, apperrors.ConfigurationError(apperrors.CodeInvalidConfig,
				"ANALYZER_READ_TIMEOUT", v, err)
		}
		cfg.ReadTimeout = d
	}
	if v := os.Getenv("ANALYZER_WRITE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, apperrors.ConfigurationError(apperrors.CodeInvalidConfig,
				"ANALYZER_WRITE_TIMEOUT", v, err)
		}
		cfg.WriteTimeout = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("server address cannot be empty")
	}
	if c.UploadDir == "" {
		return fmt.Errorf("upload directory cannot be empty")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max upload size must be positive, got %d", c.MaxUploadBytes)
	}
	return nil
}
