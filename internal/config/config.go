package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig  `yaml:"server"`
	Storage  StorageConfig `yaml:"storage"`
	Language string        `yaml:"language"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type StorageConfig struct {
	Dir string `yaml:"dir"`
}

// supportedLanguages are the recognized UI language codes. Selection is
// configuration only; clients own the translation tables.
var supportedLanguages = map[string]bool{
	"en": true, "es": true, "de": true, "fr": true,
	"pt": true, "ar": true, "he": true,
}

// rtlLanguages are the supported codes written right-to-left.
var rtlLanguages = map[string]bool{"ar": true, "he": true}

// RTL reports whether the configured language is right-to-left.
func (c *Config) RTL() bool {
	return rtlLanguages[c.Language]
}

// Load reads config from a YAML file, then applies environment variable
// overrides. Env vars use the prefix GYMLOG_ and underscore-separated
// paths:
//
//	GYMLOG_SERVER_HOST, GYMLOG_SERVER_PORT,
//	GYMLOG_STORAGE_DIR, GYMLOG_LANGUAGE
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if cfg.Language == "" {
		cfg.Language = "en"
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GYMLOG_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("GYMLOG_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("GYMLOG_STORAGE_DIR"); v != "" {
		cfg.Storage.Dir = v
	}
	if v := os.Getenv("GYMLOG_LANGUAGE"); v != "" {
		cfg.Language = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Storage.Dir == "" {
		return fmt.Errorf("storage.dir is required")
	}
	if !supportedLanguages[c.Language] {
		return fmt.Errorf("language %q is not supported", c.Language)
	}
	return nil
}
