package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Storage struct {
		// Backend is one of file, memory, redis, postgres. Empty means file.
		Backend string `yaml:"backend"`
		Dir     string `yaml:"dir"`
	} `yaml:"storage"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Classroom struct {
		Sender string `yaml:"sender"`
		Seed   *bool  `yaml:"seed"`
	} `yaml:"classroom"`
}

// Load reads YAML config from path. A missing file yields the zero config so
// the server can run on defaults.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Seed reports whether startup seeding is enabled; it defaults to on.
func (c Config) Seed() bool {
	if c.Classroom.Seed == nil {
		return true
	}
	return *c.Classroom.Seed
}

// TTLDuration parses a duration string or returns the fallback if empty or
// invalid.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
