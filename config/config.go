// Package config holds the server settings, read from an optional YAML file
// and overridden by environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	ProjectIDEnvVar        = "PROJECT_ID"
	PortEnvVar             = "PORT"
	EmulatorHostEnvVar     = "FIRESTORE_EMULATOR_HOST"
	AllowedOriginsEnvVar   = "ALLOWED_ORIGINS"
	DefaultCategoryEnvVar  = "DEFAULT_CATEGORY"
	defaultPort            = "8080"
	defaultShutdownTimeout = 5 * time.Second
	defaultRequestTimeout  = 60 * time.Second
)

// Config is the server configuration.
type Config struct {
	ProjectID       string   `yaml:"project_id"`
	Port            string   `yaml:"port"`
	EmulatorHost    string   `yaml:"emulator_host"`
	AllowedOrigins  []string `yaml:"allowed_origins"`
	Categories      []string `yaml:"categories"`       // accepted step categories, first match wins
	DefaultCategory string   `yaml:"default_category"` // used for unknown or missing categories
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
	RequestTimeout  Duration `yaml:"request_timeout"`
}

// Duration is a time.Duration written as "5s" in YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Port:            defaultPort,
		AllowedOrigins:  []string{"*"},
		Categories:      []string{"Bodyweight", "Cardio", "Dumbbell", "Kettlebell", "Barbell", "Other"},
		DefaultCategory: "Bodyweight",
		ShutdownTimeout: Duration(defaultShutdownTimeout),
		RequestTimeout:  Duration(defaultRequestTimeout),
	}
}

// Load reads path on top of the defaults, then applies environment overrides.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(ProjectIDEnvVar); v != "" {
		c.ProjectID = v
	}
	if v := os.Getenv(PortEnvVar); v != "" {
		c.Port = v
	}
	if v := os.Getenv(EmulatorHostEnvVar); v != "" {
		c.EmulatorHost = v
	}
	if v := os.Getenv(AllowedOriginsEnvVar); v != "" {
		origins := make([]string, 0)
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.AllowedOrigins = origins
	}
	if v := os.Getenv(DefaultCategoryEnvVar); v != "" {
		c.DefaultCategory = v
	}
}

// Validate checks the settings that would otherwise fail later at startup.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port must be set")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}
	return nil
}
