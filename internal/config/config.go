// Package config loads daemon configuration from an optional YAML file
// with BREWD_* environment overrides. The result is an explicit struct
// handed to the storage factory and service constructor; there is no
// process-wide settings singleton.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"brewd/internal/storage"
)

// StorageConfig selects a persistence backend and its location.
type StorageConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// Config is the full daemon configuration.
type Config struct {
	WaterCapacityML int           `yaml:"water_capacity_ml"`
	CoffeeCapacityG int           `yaml:"coffee_capacity_g"`
	ListenAddr      string        `yaml:"listen_addr"`
	MetricsAddr     string        `yaml:"metrics_addr"`
	NATSURL         string        `yaml:"nats_url"`
	Trace           bool          `yaml:"trace"`
	Storage         StorageConfig `yaml:"storage"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		WaterCapacityML: 2000,
		CoffeeCapacityG: 500,
		ListenAddr:      ":8080",
		MetricsAddr:     ":9090",
		Storage: StorageConfig{
			Backend: storage.BackendFile,
			Path:    "./data/machine_state.json",
		},
	}
}

// Load reads the config file at path, falling back to defaults when the
// file does not exist, then applies environment overrides. The caller is
// expected to run Validate on the result after any flag overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	if err := envInt("BREWD_WATER_CAPACITY_ML", &c.WaterCapacityML); err != nil {
		return err
	}
	if err := envInt("BREWD_COFFEE_CAPACITY_G", &c.CoffeeCapacityG); err != nil {
		return err
	}
	envString("BREWD_LISTEN_ADDR", &c.ListenAddr)
	envString("BREWD_METRICS_ADDR", &c.MetricsAddr)
	envString("BREWD_NATS_URL", &c.NATSURL)
	envString("BREWD_STORAGE_BACKEND", &c.Storage.Backend)
	envString("BREWD_STORAGE_PATH", &c.Storage.Path)
	if raw := os.Getenv("BREWD_TRACE"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("BREWD_TRACE must be a boolean: %w", err)
		}
		c.Trace = v
	}
	return nil
}

// Validate checks the fields the rest of the system trusts.
func (c *Config) Validate() error {
	if c.WaterCapacityML <= 0 {
		return fmt.Errorf("water capacity must be positive, got %d", c.WaterCapacityML)
	}
	if c.CoffeeCapacityG <= 0 {
		return fmt.Errorf("coffee capacity must be positive, got %d", c.CoffeeCapacityG)
	}
	switch c.Storage.Backend {
	case storage.BackendMemory:
	case storage.BackendFile, storage.BackendSQLite, storage.BackendBadger:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage backend %q requires a path", c.Storage.Backend)
		}
	default:
		return fmt.Errorf("unsupported storage backend %q", c.Storage.Backend)
	}
	return nil
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%s must be an integer: %w", key, err)
	}
	*dst = v
	return nil
}
