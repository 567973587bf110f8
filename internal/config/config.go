package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the RoomieLink configuration.
type Config struct {
	App     AppConfig     `yaml:"app"`
	Storage StorageConfig `yaml:"storage"`
	Paths   PathsConfig   `yaml:"paths"`
	Auth    AuthConfig    `yaml:"auth"`
	Chat    ChatConfig    `yaml:"chat"`
}

// AppConfig holds process-wide switches.
type AppConfig struct {
	Debug bool `yaml:"debug"`
}

// StorageConfig controls how documents are laid out in the key-value store.
type StorageConfig struct {
	Prefix      string `yaml:"prefix"`
	Codec       string `yaml:"codec"`       // "cbor" or "json"
	Compression string `yaml:"compression"` // "none" or "zstd"
}

// PathsConfig holds filesystem paths for data and scripts.
type PathsConfig struct {
	Data        string `yaml:"data"`
	Database    string `yaml:"database"`
	ReplyScript string `yaml:"reply_script"`
}

// AuthConfig holds credential settings.
type AuthConfig struct {
	BcryptCost  int `yaml:"bcrypt_cost"`
	MinPassword int `yaml:"min_password"`
}

// ChatConfig holds conversation settings.
type ChatConfig struct {
	ReplyDelay time.Duration `yaml:"reply_delay"`
}

// Default returns the built-in configuration used when no file is given.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Debug: true,
		},
		Storage: StorageConfig{
			Prefix:      "roomielink_",
			Codec:       "cbor",
			Compression: "none",
		},
		Paths: PathsConfig{
			Data:     "./data",
			Database: "./data/roomielink.db",
		},
		Auth: AuthConfig{
			BcryptCost:  10,
			MinPassword: 6,
		},
		Chat: ChatConfig{
			ReplyDelay: 1500 * time.Millisecond,
		},
	}
}

// Load reads and parses a YAML config file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// LoadOrDefault loads path, falling back to Default when the file does not
// exist and the caller did not ask for it explicitly.
func LoadOrDefault(path string, explicit bool) (*Config, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if !explicit && errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return nil, err
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Storage.Prefix == "" {
		return fmt.Errorf("storage.prefix cannot be empty")
	}
	switch c.Storage.Codec {
	case "cbor", "json":
	default:
		return fmt.Errorf("storage.codec %q: must be cbor or json", c.Storage.Codec)
	}
	switch c.Storage.Compression {
	case "none", "zstd":
	default:
		return fmt.Errorf("storage.compression %q: must be none or zstd", c.Storage.Compression)
	}
	if c.Paths.Database == "" {
		return fmt.Errorf("paths.database cannot be empty")
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("auth.bcrypt_cost %d out of range", c.Auth.BcryptCost)
	}
	if c.Auth.MinPassword < 1 {
		return fmt.Errorf("auth.min_password must be positive")
	}
	if c.Chat.ReplyDelay <= 0 {
		return fmt.Errorf("chat.reply_delay must be positive")
	}
	return nil
}
