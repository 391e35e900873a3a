package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix namespaces environment overrides, e.g. MATCHMINDED_REDIS_ADDR.
const EnvPrefix = "MATCHMINDED"

type Config struct {
	Server struct {
		Port           string   `yaml:"port" envconfig:"PORT"`
		AllowedOrigins []string `yaml:"allowedOrigins" split_words:"true"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	SQLite struct {
		File string `yaml:"file"`
	} `yaml:"sqlite"`
	Quiz struct {
		Catalog      string `yaml:"catalog"`
		AnalyzeDelay string `yaml:"analyzeDelay" split_words:"true"`
		CatalogTTL   string `yaml:"catalogTTL" split_words:"true"`
	} `yaml:"quiz"`
}

// Load reads YAML config from path and applies environment overrides.
// A missing file is not an error; defaults and the environment still apply.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, err
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Quiz.Catalog == "" {
		cfg.Quiz.Catalog = "default"
	}
	return cfg, nil
}

// DurationOr parses a duration string or returns the fallback if empty or invalid.
func DurationOr(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
