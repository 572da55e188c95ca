// Package config loads settings from an optional YAML file, a .env file, and
// the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DBPath   string `yaml:"db"`
	CacheDir string `yaml:"cache_dir"`

	GeminiAPIKey string        `yaml:"gemini_api_key"`
	GeminiModel  string        `yaml:"gemini_model"`
	CacheTTL     time.Duration `yaml:"cache_ttl"`
	LookupDelay  time.Duration `yaml:"lookup_delay"`

	LogFile string `yaml:"log_file"`
	Verbose bool   `yaml:"verbose"`

	AuthUser string `yaml:"auth_user"`
	AuthHash string `yaml:"auth_hash"`
}

func defaults() *Config {
	return &Config{
		DBPath:      "oshinavi.db",
		CacheDir:    filepath.Join(os.TempDir(), "oshinavi-cache"),
		GeminiModel: "gemini-2.5-flash",
		CacheTTL:    7 * 24 * time.Hour,
		LookupDelay: time.Second,
	}
}

// Load reads path (if it exists), then .env, then the environment.
func Load(path string) (*Config, error) {
	c := defaults()

	if path != "" {
		bs, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file '%s': %w", path, err)
		} else if err == nil {
			if err := yaml.Unmarshal(bs, c); err != nil {
				return nil, fmt.Errorf("error parsing config file '%s': %w", path, err)
			}
		}
	}

	// a missing .env is fine
	_ = godotenv.Load()

	c.DBPath = getEnv("OSHINAVI_DB", c.DBPath)
	c.CacheDir = getEnv("OSHINAVI_CACHE_DIR", c.CacheDir)
	c.GeminiAPIKey = getEnv("GEMINI_API_KEY", getEnv("API_KEY", c.GeminiAPIKey))
	c.GeminiModel = getEnv("OSHINAVI_MODEL", c.GeminiModel)
	c.LogFile = getEnv("OSHINAVI_LOG_FILE", c.LogFile)
	c.AuthUser = getEnv("OSHINAVI_AUTH_USER", c.AuthUser)
	c.AuthHash = getEnv("OSHINAVI_AUTH_HASH", c.AuthHash)

	if v := os.Getenv("OSHINAVI_VERBOSE"); v != "" {
		verbose, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("error parsing OSHINAVI_VERBOSE '%s': %w", v, err)
		}
		c.Verbose = verbose
	}

	if v := os.Getenv("OSHINAVI_CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("error parsing OSHINAVI_CACHE_TTL '%s': %w", v, err)
		}
		c.CacheTTL = ttl
	}

	return c, nil
}

// AuthEnabled reports whether mutating routes require basic auth.
func (c *Config) AuthEnabled() bool {
	return c.AuthUser != "" && c.AuthHash != ""
}

func getEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}
