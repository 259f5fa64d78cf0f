// Package config loads runtime settings from an optional YAML file, with
// environment variables taking precedence over both the file and defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr         string `yaml:"addr"`
	DBPath       string `yaml:"db_path"`
	TemplateDir  string `yaml:"template_dir"`
	StaticDir    string `yaml:"static_dir"`
	SessionHours int    `yaml:"session_hours"`
}

func defaults() Config {
	return Config{
		Addr:         ":8080",
		DBPath:       "./data/blog.db",
		TemplateDir:  "./web/templates",
		StaticDir:    "./web/static",
		SessionHours: 24,
	}
}

// Load reads path if it is non-empty and exists, then applies BLOG_*
// environment overrides.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("config: read %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.Addr = getEnv("BLOG_ADDR", cfg.Addr)
	cfg.DBPath = getEnv("BLOG_DB", cfg.DBPath)
	cfg.TemplateDir = getEnv("BLOG_TEMPLATE_DIR", cfg.TemplateDir)
	cfg.StaticDir = getEnv("BLOG_STATIC_DIR", cfg.StaticDir)
	if v := os.Getenv("BLOG_SESSION_HOURS"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil || hours <= 0 {
			return cfg, fmt.Errorf("config: invalid BLOG_SESSION_HOURS %q", v)
		}
		cfg.SessionHours = hours
	}

	if cfg.SessionHours <= 0 {
		cfg.SessionHours = 24
	}
	return cfg, nil
}

func (c Config) SessionMaxAge() time.Duration {
	return time.Duration(c.SessionHours) * time.Hour
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
