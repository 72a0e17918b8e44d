package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Environment variable names.
const (
	EnvAPIURL   = "LANGGPT_API_URL"
	EnvDataDir  = "LANGGPT_DATA_DIR"
	EnvLogFile  = "LANGGPT_LOG_FILE"
	EnvLogLevel = "LANGGPT_LOG_LEVEL"
	EnvTimeout  = "LANGGPT_TIMEOUT"
	EnvToken    = "LANGGPT_TOKEN"
)

// DefaultAPIURL is where a locally started backend listens.
const DefaultAPIURL = "http://localhost:8000"

// Config holds runtime settings for the langgpt client.
type Config struct {
	APIURL   string
	DataDir  string
	LogFile  string
	LogLevel string
	Timeout  time.Duration
	// Token, when non-empty, replaces the stored token at startup.
	Token string
}

// LoadDefaults populates c with defaults. LogFile stays empty and is
// derived from DataDir by Finalize.
func (c *Config) LoadDefaults() {
	c.APIURL = DefaultAPIURL
	c.DataDir = defaultDataDir()
	c.LogLevel = "info"
	c.Timeout = 30 * time.Second
}

// Finalize fills values that depend on other fields.
func (c *Config) Finalize() {
	if c.LogFile == "" {
		c.LogFile = filepath.Join(c.DataDir, "langgpt.log")
	}
}

// Getenv looks up an environment variable. os.Getenv in production.
type Getenv func(string) string

// Load builds a Config from defaults, .env, environment and the global
// flags at the front of args. It returns the arguments left after the
// flags (the subcommand and its own flags).
func Load(args []string, getenv Getenv) (*Config, []string, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg := &Config{}
	cfg.LoadDefaults()

	dotenv := readDotenv(".env", filepath.Join("..", ".env"))
	lookup := func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}
	if err := applyEnv(cfg, lookup); err != nil {
		return nil, nil, err
	}

	rest, err := parseFlags(cfg, args)
	if err != nil {
		return nil, nil, err
	}
	cfg.Finalize()
	return cfg, rest, nil
}

func applyEnv(cfg *Config, lookup func(string) string) error {
	if v := lookup(EnvAPIURL); v != "" {
		cfg.APIURL = v
	}
	if v := lookup(EnvDataDir); v != "" {
		cfg.DataDir = v
	}
	if v := lookup(EnvLogFile); v != "" {
		cfg.LogFile = v
	}
	if v := lookup(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := lookup(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
	}
	cfg.Token = lookup(EnvToken)
	return nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".langgpt"
	}
	return filepath.Join(home, ".langgpt")
}
