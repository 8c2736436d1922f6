package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultAPIURL       = "https://chanis-tasks-serve.onrender.com/api"
	DefaultComposerAddr = ":8006"
	DefaultHTTPTimeout  = 15 * time.Second
)

// Config holds everything the client needs to reach the API and log locally.
type Config struct {
	APIURL          string
	SessionFile     string
	LogFile         string
	LogLevel        string
	HTTPTimeout     time.Duration
	ComposerAddr    string
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	dir := defaultDir()
	return Config{
		APIURL:          DefaultAPIURL,
		SessionFile:     filepath.Join(dir, "session.json"),
		LogFile:         filepath.Join(dir, "logs", "teamtasks.log"),
		LogLevel:        "info",
		HTTPTimeout:     DefaultHTTPTimeout,
		ComposerAddr:    DefaultComposerAddr,
		BreakerFailures: 3,
		BreakerTimeout:  5 * time.Second,
	}
}

func defaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".teamtasks"
	}
	return filepath.Join(home, ".teamtasks")
}

// Load reads envFile (if it exists) into the process environment and then
// overlays TEAMTASKS_* variables on the defaults. A missing env file is not an error.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("error loading %s: %w", envFile, err)
		}
	}

	cfg := Default()
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("TEAMTASKS_API_URL"); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv("TEAMTASKS_SESSION_FILE"); v != "" {
		c.SessionFile = v
	}
	if v, ok := os.LookupEnv("TEAMTASKS_LOG_FILE"); ok {
		c.LogFile = v
	}
	if v := os.Getenv("TEAMTASKS_LOG_LEVEL"); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("TEAMTASKS_COMPOSER_ADDR"); v != "" {
		c.ComposerAddr = v
	}
	if v := os.Getenv("TEAMTASKS_HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TEAMTASKS_HTTP_TIMEOUT %q: %w", v, err)
		}
		c.HTTPTimeout = d
	}
	if v := os.Getenv("TEAMTASKS_BREAKER_FAILURES"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid TEAMTASKS_BREAKER_FAILURES %q: %w", v, err)
		}
		c.BreakerFailures = uint32(n)
	}
	if v := os.Getenv("TEAMTASKS_BREAKER_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TEAMTASKS_BREAKER_TIMEOUT %q: %w", v, err)
		}
		c.BreakerTimeout = d
	}
	return nil
}

// Validate checks the values that would otherwise fail late at request time.
func (c Config) Validate() error {
	if c.APIURL == "" {
		return errors.New("API URL is not set")
	}
	if !strings.HasPrefix(c.APIURL, "http://") && !strings.HasPrefix(c.APIURL, "https://") {
		return fmt.Errorf("API URL must start with http:// or https://, got %q", c.APIURL)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP timeout must be positive, got %s", c.HTTPTimeout)
	}
	return nil
}

// BaseURL returns the API URL without a trailing slash.
func (c Config) BaseURL() string {
	return strings.TrimRight(c.APIURL, "/")
}
